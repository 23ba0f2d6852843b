package triage

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrKnowledgeBaseUnavailable is fatal: the process must not serve traffic
// without a loaded knowledge base.
var ErrKnowledgeBaseUnavailable = errors.New("knowledge base unavailable")

// Entry describes one canonical symptom. Read-only after load.
type Entry struct {
	CanonicalKey         string   `yaml:"key"`
	Synonyms             []string `yaml:"synonyms"`
	SeverityWeight       float64  `yaml:"severity_weight"`
	AssociatedConditions []string `yaml:"associated_conditions"`
	EmergencyIndicator   bool     `yaml:"emergency_indicator"`
}

// CombinationRule escalates to an emergency when every member key is
// present in the normalized symptom set.
type CombinationRule struct {
	Keys []string `yaml:"keys"`
}

// Thresholds are the risk bracket boundaries. Calibration values live in
// the knowledge base file, never in code.
type Thresholds struct {
	LowMax      float64 `yaml:"low_max"`
	ModerateMax float64 `yaml:"moderate_max"`
}

type knowledgeFile struct {
	Symptoms     []Entry           `yaml:"symptoms"`
	Combinations []CombinationRule `yaml:"emergency_combinations"`
	Thresholds   Thresholds        `yaml:"thresholds"`
}

// KnowledgeBase is the immutable lookup table behind the triage pipeline.
// It is built once at startup and shared read-only across requests.
type KnowledgeBase struct {
	entries      map[string]*Entry
	synonyms     map[string]string
	combinations []CombinationRule
	thresholds   Thresholds
}

// LoadKnowledgeBase reads and validates the knowledge base file.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeBaseUnavailable, err)
	}

	var kf knowledgeFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeBaseUnavailable, err)
	}

	kb, err := NewKnowledgeBase(kf.Symptoms, kf.Combinations, kf.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeBaseUnavailable, err)
	}
	return kb, nil
}

// NewKnowledgeBase validates the raw content and builds the lookup indexes.
func NewKnowledgeBase(symptoms []Entry, combinations []CombinationRule, thresholds Thresholds) (*KnowledgeBase, error) {
	if len(symptoms) == 0 {
		return nil, errors.New("no symptom entries")
	}
	if thresholds.LowMax <= 0 || thresholds.ModerateMax <= thresholds.LowMax {
		return nil, fmt.Errorf("invalid thresholds: low_max=%v moderate_max=%v",
			thresholds.LowMax, thresholds.ModerateMax)
	}

	entries := make(map[string]*Entry, len(symptoms))
	synonyms := make(map[string]string)
	for i := range symptoms {
		e := symptoms[i]
		key := normalizeText(e.CanonicalKey)
		if key == "" {
			return nil, errors.New("symptom entry with empty key")
		}
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("duplicate symptom key %q", key)
		}
		if e.SeverityWeight <= 0 {
			return nil, fmt.Errorf("symptom %q has non-positive severity weight", key)
		}
		e.CanonicalKey = key
		entries[key] = &e

		// Every key is a synonym of itself.
		synonyms[key] = key
		for _, s := range e.Synonyms {
			syn := normalizeText(s)
			if syn == "" {
				return nil, fmt.Errorf("symptom %q has an empty synonym", key)
			}
			if existing, dup := synonyms[syn]; dup && existing != key {
				return nil, fmt.Errorf("synonym %q maps to both %q and %q", syn, existing, key)
			}
			synonyms[syn] = key
		}
	}

	for i, rule := range combinations {
		if len(rule.Keys) < 2 {
			return nil, fmt.Errorf("combination rule %d needs at least two keys", i)
		}
		for j, member := range rule.Keys {
			member = normalizeText(member)
			if _, ok := entries[member]; !ok {
				return nil, fmt.Errorf("combination rule %d references unknown key %q", i, member)
			}
			combinations[i].Keys[j] = member
		}
	}

	return &KnowledgeBase{
		entries:      entries,
		synonyms:     synonyms,
		combinations: combinations,
		thresholds:   thresholds,
	}, nil
}

// Entry returns the entry for a canonical key. Synthetic unknown keys have
// no entry.
func (kb *KnowledgeBase) Entry(key string) (*Entry, bool) {
	e, ok := kb.entries[key]
	return e, ok
}

func (kb *KnowledgeBase) Thresholds() Thresholds {
	return kb.thresholds
}
