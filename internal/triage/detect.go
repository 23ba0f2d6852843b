package triage

// DetectEmergency reports whether the normalized key set forces the
// emergency branch: any single indicator key, or a full match of any
// combination rule. All rules are evaluated; detection is cheap enough
// that no early exit is needed.
func (kb *KnowledgeBase) DetectEmergency(keys []string) bool {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	emergency := false
	for _, k := range keys {
		if e, ok := kb.entries[k]; ok && e.EmergencyIndicator {
			emergency = true
		}
	}
	for _, rule := range kb.combinations {
		all := true
		for _, member := range rule.Keys {
			if _, ok := set[member]; !ok {
				all = false
				break
			}
		}
		if all {
			emergency = true
		}
	}
	return emergency
}
