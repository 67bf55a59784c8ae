package pack

import (
	"sort"

	"github.com/srctally/srctally/internal/model"
)

// SplitBudget divides a total budget across modules in proportion to their
// value sums, flooring each share. Floor (rather than round) is the chosen
// rule for the non-integer boundary: the shares can then never sum above
// the total, so budget safety holds without a corrective pass. When every
// module values to zero the budget is split evenly instead.
//
// Pure function over (value-per-module, total); unit-testable without any
// file-selection machinery.
func SplitBudget(moduleValues map[string]int, budget int) map[string]int {
	if len(moduleValues) == 0 {
		return map[string]int{}
	}

	total := 0
	for _, v := range moduleValues {
		total += v
	}

	shares := make(map[string]int, len(moduleValues))
	if total == 0 {
		even := budget / len(moduleValues)
		for name := range moduleValues {
			shares[name] = even
		}
		return shares
	}
	for name, v := range moduleValues {
		shares[name] = int(int64(budget) * int64(v) / int64(total))
	}
	return shares
}

// packSpread partitions recs by module, gives each module a proportional
// sub-budget, runs the greedy walk inside each, and concatenates module
// results in descending module-value order (ties broken by module name).
// Pure greedy can starve small modules when one dominates by size; the
// proportional split guarantees representation across the architecture.
//
// A module whose sub-budget is smaller than its smallest eligible file
// contributes zero files; its files surface as over-budget exclusions, not
// as an error.
func packSpread(recs []model.FileRecord, budget int, m Metric) ([]model.IncludedFile, []model.ExcludedFile) {
	groups := make(map[string][]model.FileRecord)
	values := make(map[string]int)
	for i := range recs {
		mod := recs[i].Module
		groups[mod] = append(groups[mod], recs[i])
		values[mod] += valueOf(&recs[i], m)
	}

	if budget == Unlimited {
		// Proportions are meaningless without a ceiling; a single greedy
		// walk yields the same inclusion set.
		return packGreedy(recs, budget, m)
	}

	shares := SplitBudget(values, budget)

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if values[names[i]] != values[names[j]] {
			return values[names[i]] > values[names[j]]
		}
		return names[i] < names[j]
	})

	var included []model.IncludedFile
	var excluded []model.ExcludedFile
	for _, name := range names {
		inc, exc := packGreedy(groups[name], shares[name], m)
		included = append(included, inc...)
		excluded = append(excluded, exc...)
	}
	return included, excluded
}
