package notebook

import (
	"reflect"
	"testing"
)

func TestProjectResultsLeavesPrefixUntouched(t *testing.T) {
	prev := []string{"sentinel0", "sentinel1", "old2", "old3"}
	got := ProjectResults(prev, 2, []string{"new2", "new3", "new4"})

	want := []string{"sentinel0", "sentinel1", "new2", "new3", "new4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectResults() = %v, want %v", got, want)
	}
}

func TestProjectResultsFromZeroReplacesEverything(t *testing.T) {
	got := ProjectResults([]string{"a", "b", "c"}, 0, []string{"x"})
	want := []string{"x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectResults() = %v, want %v", got, want)
	}
}

func TestProjectResultsPadsMissingPrefix(t *testing.T) {
	// Results can lag behind the line count after a growing edit; missing
	// prefix cells come back empty.
	got := ProjectResults([]string{"a"}, 3, []string{"d"})
	want := []string{"a", "", "", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectResults() = %v, want %v", got, want)
	}
}

func TestProjectResultsTruncatesTail(t *testing.T) {
	prev := []string{"a", "b", "c", "d", "e"}
	got := ProjectResults(prev, 1, []string{"B", "C"})
	want := []string{"a", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectResults() = %v, want %v", got, want)
	}
}
