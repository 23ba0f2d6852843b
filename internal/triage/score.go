package triage

// Score sums the severity weights of the distinct matched canonical keys.
// Each key contributes at most once no matter how many raw synonyms mapped
// to it; unknown keys contribute nothing.
func (kb *KnowledgeBase) Score(keys []string) float64 {
	var score float64
	for _, k := range keys {
		if e, ok := kb.entries[k]; ok {
			score += e.SeverityWeight
		}
	}
	return score
}

// riskLevel maps a score onto the three-tier bracket. The mapping is total
// and monotonic; a score of zero (every input unknown) lands in Low.
func (kb *KnowledgeBase) riskLevel(score float64) RiskLevel {
	switch {
	case score <= kb.thresholds.LowMax:
		return RiskLow
	case score <= kb.thresholds.ModerateMax:
		return RiskModerate
	default:
		return RiskHigh
	}
}
