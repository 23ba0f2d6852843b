package triage

import (
	"fmt"
	"sort"
)

// Disclaimer is constant across all non-emergency responses.
const Disclaimer = "This information is educational only and does not replace professional medical advice."

const maxAssociations = 5

var nextStepsByLevel = map[RiskLevel][]string{
	RiskLow: {
		"Self-care measures are usually sufficient",
		"Monitor your symptoms and rest",
		"Consult a pharmacist if symptoms persist",
	},
	RiskModerate: {
		"Consider a visit to a healthcare provider within the next few days",
		"Monitor your symptoms for any worsening",
		"Avoid self-medicating beyond over-the-counter guidance",
	},
	RiskHigh: {
		"Seek prompt medical care",
		"Contact a healthcare provider today",
		"If symptoms escalate rapidly, go to urgent care",
	},
}

// explain builds the deterministic, templated result for a classified
// (non-emergency) check. Associations come only from matched entries,
// ordered by descending entry weight with the canonical key as tie-break.
func (kb *KnowledgeBase) explain(keys []string, level RiskLevel) *Result {
	matched := make([]*Entry, 0, len(keys))
	for _, k := range keys {
		if e, ok := kb.entries[k]; ok {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SeverityWeight != matched[j].SeverityWeight {
			return matched[i].SeverityWeight > matched[j].SeverityWeight
		}
		return matched[i].CanonicalKey < matched[j].CanonicalKey
	})

	associations := make([]string, 0, maxAssociations)
	seen := make(map[string]struct{})
	for _, e := range matched {
		for _, c := range e.AssociatedConditions {
			if _, dup := seen[c]; dup {
				continue
			}
			if len(associations) == maxAssociations {
				break
			}
			seen[c] = struct{}{}
			associations = append(associations, c)
		}
	}

	summary := fmt.Sprintf("The reported symptoms are not in our reference set; overall risk level is %s.", level)
	if len(matched) > 0 && len(matched[0].AssociatedConditions) > 0 {
		summary = fmt.Sprintf("The reported symptoms may be associated with %s; overall risk level is %s.",
			matched[0].AssociatedConditions[0], level)
	}

	steps := nextStepsByLevel[level]
	nextSteps := make([]string, len(steps))
	copy(nextSteps, steps)

	return &Result{
		Emergency:            false,
		RiskLevel:            level,
		Summary:              summary,
		PossibleAssociations: associations,
		NextSteps:            nextSteps,
		Disclaimer:           Disclaimer,
	}
}
