package note

import (
	"regexp"
	"strings"
)

// EphemeralMarker flags a line for removal during archiving. Lines ending
// with the marker never survive into an archived copy.
const EphemeralMarker = "(delete_if_not_entered)"

// LineKind classifies a single note line.
type LineKind int

const (
	LinePlain LineKind = iota
	LineTaskOpen
	LineTaskDone
	LineEphemeral
)

// Line is the classified form of one raw note line.
type Line struct {
	Kind LineKind
	// Raw is the original line text, without trailing newline.
	Raw string
	// Task holds the task text (marker stripped) for task lines.
	Task string
}

var (
	taskOpenRe = regexp.MustCompile(`^(\*|-)\s\[\s\]\s+(.+)$`)
	taskDoneRe = regexp.MustCompile(`^(\*|-)\s\[[xX]\]\s+(.+)$`)
)

// Classify tags a raw line as ephemeral, open task, done task, or plain.
// It is a pure function; the archiver and generator both depend on it.
func Classify(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(trimmed, EphemeralMarker) {
		return Line{Kind: LineEphemeral, Raw: raw}
	}
	if m := taskOpenRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineTaskOpen, Raw: raw, Task: strings.TrimSpace(m[2])}
	}
	if m := taskDoneRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineTaskDone, Raw: raw, Task: strings.TrimSpace(m[2])}
	}
	return Line{Kind: LinePlain, Raw: raw}
}

// FormatOpenTask renders a task template as an unchecked task line.
func FormatOpenTask(text string) string {
	return "- [ ] " + text
}

// FormatDoneTask renders a task as a checked task line.
func FormatDoneTask(text string) string {
	return "- [x] " + text
}
