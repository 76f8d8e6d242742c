package usecase

import (
	"reflect"
	"testing"
)

func TestParseListItems(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want []string
	}{
		{
			name: "bullets",
			in:   "• first point\n- second point\n* third point",
			max:  5,
			want: []string{"first point", "second point", "third point"},
		},
		{
			name: "numbered",
			in:   "1. take the pill\n2) rest well\n10. return next week",
			max:  5,
			want: []string{"take the pill", "rest well", "return next week"},
		},
		{
			name: "prose lines skipped",
			in:   "Here are the steps:\n- step one\nsome explanation\n- step two",
			max:  5,
			want: []string{"step one", "step two"},
		},
		{
			name: "numeric content after marker survives",
			in:   "- 500mg twice daily",
			max:  5,
			want: []string{"500mg twice daily"},
		},
		{
			name: "cap applies",
			in:   "- a1\n- b2\n- c3\n- d4",
			max:  2,
			want: []string{"a1", "b2"},
		},
		{
			name: "marker only lines dropped",
			in:   "-\n1.\n- real item",
			max:  5,
			want: []string{"real item"},
		},
		{
			name: "empty input",
			in:   "",
			max:  5,
			want: nil,
		},
		{
			name: "indented bullets",
			in:   "   - indented one\n\t* indented two",
			max:  5,
			want: []string{"indented one", "indented two"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseListItems(tc.in, tc.max)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseListItems(%q, %d) = %v, want %v", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestParseSections(t *testing.T) {
	headers := []string{"KEY TERMS", "MEDICAL CONCEPTS", "INSTRUCTIONS"}
	in := `Some preamble that is ignored.
- orphan item before any header

KEY TERMS:
- diabetes
- insulin

medical concepts:
- blood sugar control

Important INSTRUCTIONS for the patient:
- check levels daily
- inject before meals`

	got := parseSections(in, headers)

	want := map[string][]string{
		"KEY TERMS":        {"diabetes", "insulin"},
		"MEDICAL CONCEPTS": {"blood sugar control"},
		"INSTRUCTIONS":     {"check levels daily", "inject before meals"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSections = %v, want %v", got, want)
	}
}

func TestParseSectionsMissingHeader(t *testing.T) {
	got := parseSections("KEY TERMS:\n- one", []string{"KEY TERMS", "INSTRUCTIONS"})
	if _, ok := got["INSTRUCTIONS"]; ok {
		t.Error("absent header should not appear in result")
	}
	if len(got["KEY TERMS"]) != 1 {
		t.Errorf("KEY TERMS = %v", got["KEY TERMS"])
	}
}
