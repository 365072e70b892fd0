package note

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind LineKind
		task string
	}{
		{"dash open task", "- [ ] water the plants", LineTaskOpen, "water the plants"},
		{"star open task", "* [ ] water the plants", LineTaskOpen, "water the plants"},
		{"indented open task", "  - [ ] water the plants", LineTaskOpen, "water the plants"},
		{"done task lowercase", "- [x] pay rent", LineTaskDone, "pay rent"},
		{"done task uppercase", "- [X] pay rent", LineTaskDone, "pay rent"},
		{"ephemeral line", "remember the milk (delete_if_not_entered)", LineEphemeral, ""},
		{"ephemeral wins over task", "- [ ] scratch note (delete_if_not_entered)", LineEphemeral, ""},
		{"heading is plain", "# 2026-08-31", LinePlain, ""},
		{"prose is plain", "slept badly, skipped the gym", LinePlain, ""},
		{"empty is plain", "", LinePlain, ""},
		{"checkbox without bullet is plain", "[ ] floating checkbox", LinePlain, ""},
		{"bullet without checkbox is plain", "- groceries", LinePlain, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := Classify(tc.raw)
			if line.Kind != tc.kind {
				t.Fatalf("Classify(%q).Kind = %d, want %d", tc.raw, line.Kind, tc.kind)
			}
			if line.Task != tc.task {
				t.Fatalf("Classify(%q).Task = %q, want %q", tc.raw, line.Task, tc.task)
			}
			if line.Raw != tc.raw {
				t.Fatalf("Classify(%q).Raw = %q, want original", tc.raw, line.Raw)
			}
		})
	}
}

func TestFormatTaskRoundTrips(t *testing.T) {
	open := Classify(FormatOpenTask("water the plants"))
	if open.Kind != LineTaskOpen || open.Task != "water the plants" {
		t.Fatalf("open task did not round trip: %+v", open)
	}
	done := Classify(FormatDoneTask("water the plants"))
	if done.Kind != LineTaskDone || done.Task != "water the plants" {
		t.Fatalf("done task did not round trip: %+v", done)
	}
}
