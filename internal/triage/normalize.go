package triage

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptySymptomSet rejects requests where nothing survives normalization.
var ErrEmptySymptomSet = errors.New("at least one symptom is required")

// UnknownKeyPrefix marks symptoms that resolved to no knowledge base entry.
// They carry zero weight and never trigger an emergency.
const UnknownKeyPrefix = "unknown:"

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Normalize resolves raw symptom strings into a deduplicated, sorted set of
// canonical keys. Unresolved strings become synthetic unknown keys so they
// still show up in downstream text without influencing classification.
func (kb *KnowledgeBase) Normalize(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	keys := make([]string, 0, len(raw))

	for _, s := range raw {
		text := normalizeText(s)
		if text == "" {
			continue
		}
		key, ok := kb.synonyms[text]
		if !ok {
			key = UnknownKeyPrefix + text
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, ErrEmptySymptomSet
	}
	sort.Strings(keys)
	return keys, nil
}
