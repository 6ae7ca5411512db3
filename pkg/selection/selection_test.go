package selection

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		max  int
		want []int
	}{
		{"singles", "1,3", 5, []int{0, 2}},
		{"range plus single", "1-3,5", 6, []int{0, 1, 2, 4}},
		{"out of range dropped", "0,10,2", 3, []int{1}},
		{"duplicates removed", "2,2,1-2", 5, []int{0, 1}},
		{"range clipped to max", "4-9", 5, []int{3, 4}},
		{"reversed range dropped", "5-3", 6, nil},
		{"garbage dropped", "a,1,b-2", 5, []int{0}},
		{"whitespace tolerated", " 1 , 3 - 4 ", 5, []int{0, 2, 3}},
		{"empty expression", "", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.expr, tt.max)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, expected %v", tt.expr, tt.max, got, tt.want)
			}
		})
	}
}
