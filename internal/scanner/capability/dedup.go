package capability

// strategyRanking is the total order consulted when several detectors
// produce the same name: most framework-specific and structurally
// certain first, generic heuristics last. New detectors slot in by table
// edit; the merge logic never special-cases a strategy.
var strategyRanking = []string{
	StrategyTSCreateAction,
	StrategyASTToolCtor,
	StrategyASTPromptCtor,
	StrategyASTResourceCtor,
	StrategyTSToolConstant,
	StrategyFastMCPDecorator,
	StrategyASTDecorator,
	StrategyASTRegistration,
	StrategyASTToolList,
	StrategyASTPromptList,
	StrategyASTResourceList,
	StrategyTSRequestHandler,
	StrategyTSToolsArray,
	StrategyTSToolObject,
	StrategyTSSchemaReference,
	StrategyTSSimpleReturn,
	StrategyTSToolCall,
	StrategyPythonToolCall,
	StrategyTSSwitchCase,
	StrategyTSFunction,
	StrategyDocstringToolsList,
	StrategyRegexToolsList,
}

// rankOf returns the index of a strategy in the ranking, or -1 when the
// strategy is unranked (e.g. the per-shape regex fallback tags).
func rankOf(strategy string) int {
	for i, s := range strategyRanking {
		if s == strategy {
			return i
		}
	}
	return -1
}

// SelectBest picks the most trustworthy candidate for one name: the one
// whose strategy ranks highest, or, when none is ranked, the one with the
// longest description.
func SelectBest(candidates []Entry) Entry {
	best := candidates[0]
	bestRank := rankOf(best.DetectedBy)

	for _, candidate := range candidates[1:] {
		rank := rankOf(candidate.DetectedBy)
		switch {
		case rank >= 0 && (bestRank < 0 || rank < bestRank):
			best = candidate
			bestRank = rank
		case rank < 0 && bestRank < 0 && len(candidate.Description) > len(best.Description):
			best = candidate
		}
	}
	return best
}

// DeduplicateByName groups candidates by name and keeps one entry per
// name via SelectBest. First-appearance order of names is preserved so
// output is deterministic.
func DeduplicateByName(entries []Entry) []Entry {
	if len(entries) <= 1 {
		return entries
	}

	byName := make(map[string][]Entry, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, ok := byName[entry.Name]; !ok {
			order = append(order, entry.Name)
		}
		byName[entry.Name] = append(byName[entry.Name], entry)
	}

	unique := make([]Entry, 0, len(order))
	for _, name := range order {
		unique = append(unique, SelectBest(byName[name]))
	}
	return unique
}
