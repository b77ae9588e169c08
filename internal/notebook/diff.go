package notebook

// NoChange is returned by FirstDivergence when both line arrays are
// element-wise equal. No evaluation is scheduled in that case.
const NoChange = -1

// FirstDivergence returns the smallest index at which prev and cur differ.
// An index present in one array but not the other counts as divergent, so a
// pure append or truncation diverges at the old/new length boundary.
func FirstDivergence(prev, cur []string) int {
	n := len(prev)
	if len(cur) > n {
		n = len(cur)
	}
	for i := 0; i < n; i++ {
		if i >= len(prev) || i >= len(cur) || prev[i] != cur[i] {
			return i
		}
	}
	return NoChange
}
