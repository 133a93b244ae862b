package sharedpath

import (
	"reflect"
	"testing"
)

func TestSplitPathParts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "empty path", path: "", want: []string{}},
		{name: "single segment", path: "budget", want: []string{"budget"}},
		{name: "repeated slashes and spaces", path: " /budget// q / ", want: []string{"budget", "q"}},
		{name: "trailing slash", path: "budget/", want: []string{"budget"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SplitPathParts(tc.path); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitPathParts(%q) = %#v, want %#v", tc.path, got, tc.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	if got := Segments("/trips/create/options/groupType", "/trips/create/options/"); !reflect.DeepEqual(got, []string{"groupType"}) {
		t.Fatalf("Segments = %#v", got)
	}
	if got := Segments("/users", "/trips/"); got != nil {
		t.Fatalf("Segments without prefix = %#v", got)
	}
}
