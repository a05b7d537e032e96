package metrics_test

import (
	"testing"

	"github.com/petasbytes/todo-agent/internal/metrics"
)

func TestCountFeatures_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.Features
	}{
		{"Empty", "", metrics.Features{}},
		{"ASCII", "hello world", metrics.Features{Bytes: 11, Runes: 11, Words: 2, Lines: 1}},
		{"Multiline_NoTrailing", "a\nb\ncd", metrics.Features{Bytes: 6, Runes: 6, Words: 3, Lines: 3}},
		{"Multiline_Trailing", "a\nb\n", metrics.Features{Bytes: 4, Runes: 4, Words: 2, Lines: 3}},
		{"Whitespace_Tabs_Spaces", "  foo\tbar   baz  ", metrics.Features{Bytes: 17, Runes: 17, Words: 3, Lines: 1}},
		{"NBSP", "foo\u00A0bar", metrics.Features{Bytes: 8, Runes: 7, Words: 2, Lines: 1}},
		{"OnlyWhitespace", " \t\n", metrics.Features{Bytes: 3, Runes: 3, Words: 0, Lines: 2}},
		{"ZeroWidthSpace_NoSplit", "foo\u200Bbar", metrics.Features{Bytes: 9, Runes: 7, Words: 1, Lines: 1}},
		{"Combining_Marks", "e\u0301", metrics.Features{Bytes: 3, Runes: 2, Words: 1, Lines: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := metrics.CountFeatures(tc.in); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCountTasks_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.Tasks
	}{
		{"Empty", "", metrics.Tasks{}},
		{"HeaderOnly", "# groceries\n", metrics.Tasks{}},
		{"Mixed", "# list\n\n- [ ] Milk\n- [x] Eggs\n- [X] Bread\n- [ ] Jam", metrics.Tasks{Open: 2, Done: 2}},
		{"Indented", "  - [ ] nested\n\t* [x] star\n+ [ ] plus", metrics.Tasks{Open: 2, Done: 1}},
		{"NotCheckbox", "- plain bullet\n-[ ] no space\n[ ] bare\n- [-] other", metrics.Tasks{}},
		{"CRLF", "- [ ] a\r\n- [x] b\r\n", metrics.Tasks{Open: 1, Done: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := metrics.CountTasks(tc.in)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if got.Total() != tc.want.Open+tc.want.Done {
				t.Fatalf("total mismatch: %d", got.Total())
			}
		})
	}
}
