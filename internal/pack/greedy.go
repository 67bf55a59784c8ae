package pack

import "github.com/srctally/srctally/internal/model"

// packGreedy selects from recs until budget is exhausted: sort by (value
// desc, path asc), then walk the whole sequence, including a file iff its
// estimated tokens still fit. The walk does not stop at the first miss —
// a smaller later file may still fit. This is a deliberate bounded-knapsack
// approximation: optimal packing is unstable near ties, which would break
// determinism.
//
// recs is sorted in place; callers pass their own copy. Returned exclusions
// all carry ReasonOverBudget.
func packGreedy(recs []model.FileRecord, budget int, m Metric) ([]model.IncludedFile, []model.ExcludedFile) {
	sortByValue(recs, m)

	var included []model.IncludedFile
	var excluded []model.ExcludedFile
	used := 0
	for i := range recs {
		cost := recs[i].EstimatedTokens
		if used+cost <= budget {
			used += cost
			included = append(included, model.IncludedFile{Record: recs[i], AccountedTokens: cost})
			continue
		}
		excluded = append(excluded, model.ExcludedFile{
			Path:   recs[i].Path,
			Reason: model.ReasonOverBudget,
		})
	}
	return included, excluded
}
