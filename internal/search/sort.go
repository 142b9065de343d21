package search

import "sort"

// sortResults orders results by score, best (lowest) first. Equal scores
// keep their incoming order.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
}
