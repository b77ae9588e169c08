package notebook

// ProjectResults merges an evaluation response into the previous result
// column. The response's logical index 0 corresponds to document line start;
// cells before start keep their prior value, cells at or after start are
// replaced. Rows past the end of the response are dropped, since the
// evaluator answers for every line from start to the end of the document.
func ProjectResults(prev []string, start int, updates []string) []string {
	if start < 0 {
		start = 0
	}
	out := make([]string, start+len(updates))
	for i := 0; i < start && i < len(prev); i++ {
		out[i] = prev[i]
	}
	copy(out[start:], updates)
	return out
}
