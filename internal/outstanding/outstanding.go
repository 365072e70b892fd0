// Package outstanding manages the outstanding-tasks file: the single flat
// list that accumulates incomplete tasks extracted while archiving. Order is
// preserved across runs (oldest first) and duplicate task texts collapse to
// their first occurrence. Saving only flips task checkboxes in place and
// appends new entries at the end; prose and blank lines a user added around
// the tasks survive a rewrite.
package outstanding

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/yourusername/daybook/internal/note"
)

// Header is written at the top of a freshly created outstanding file.
const Header = "# Outstanding tasks"

// Task is one entry in the outstanding file.
type Task struct {
	Text string
	Done bool
	// line indexes the backing line in the loaded file; -1 for entries
	// appended since the load.
	line int
}

// File is the in-memory form of the outstanding-tasks file. Load it, mutate
// it, then Save it; nothing touches disk in between.
type File struct {
	path  string
	lines []string
	tasks []Task
}

// Load reads the outstanding file at path. A missing file yields an empty
// list; that is the normal first-run state.
func Load(path string) (*File, error) {
	f := &File{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("outstanding: read %s: %w", path, err)
	}
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	// Drop the empty element a trailing newline produces; Save restores it.
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	for i, rawLine := range raw {
		f.lines = append(f.lines, rawLine)
		line := note.Classify(rawLine)
		switch line.Kind {
		case note.LineTaskOpen:
			f.tasks = append(f.tasks, Task{Text: line.Task, line: i})
		case note.LineTaskDone:
			f.tasks = append(f.tasks, Task{Text: line.Task, Done: true, line: i})
		}
	}
	return f, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Tasks returns a copy of the current entries.
func (f *File) Tasks() []Task {
	out := make([]Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Count returns the number of unresolved (open) entries.
func (f *File) Count() int {
	n := 0
	for _, task := range f.tasks {
		if !task.Done {
			n++
		}
	}
	return n
}

// Has reports whether a task text is already present, open or done.
func (f *File) Has(text string) bool {
	for _, task := range f.tasks {
		if task.Text == text {
			return true
		}
	}
	return false
}

// Append adds the given task texts as open entries, skipping any already
// present. It returns how many were actually added.
func (f *File) Append(texts []string) int {
	added := 0
	for _, text := range texts {
		if text == "" || f.Has(text) {
			continue
		}
		f.tasks = append(f.tasks, Task{Text: text, line: -1})
		added++
	}
	return added
}

// Toggle flips the completion state of the entry at index i.
func (f *File) Toggle(i int) {
	if i < 0 || i >= len(f.tasks) {
		return
	}
	f.tasks[i].Done = !f.tasks[i].Done
}

// Save writes the list back to disk. Existing task lines keep their bullet
// style and position with only the checkbox rewritten; new entries are
// appended after the last line.
func (f *File) Save() error {
	if len(f.lines) == 0 {
		f.lines = []string{Header, ""}
	}
	for i := range f.tasks {
		task := &f.tasks[i]
		if task.line >= 0 {
			f.lines[task.line] = setCheckbox(f.lines[task.line], task.Done)
			continue
		}
		if task.Done {
			f.lines = append(f.lines, note.FormatDoneTask(task.Text))
		} else {
			f.lines = append(f.lines, note.FormatOpenTask(task.Text))
		}
		task.line = len(f.lines) - 1
	}
	content := strings.Join(f.lines, "\n") + "\n"
	if err := os.WriteFile(f.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("outstanding: write %s: %w", f.path, err)
	}
	return nil
}

// setCheckbox rewrites only the checkbox marker of a task line.
func setCheckbox(raw string, done bool) string {
	if done {
		return strings.Replace(raw, "[ ]", "[x]", 1)
	}
	if strings.Contains(raw, "[x]") {
		return strings.Replace(raw, "[x]", "[ ]", 1)
	}
	return strings.Replace(raw, "[X]", "[ ]", 1)
}

// Count is a convenience that loads the file and returns its open-entry
// count. Used by the generator for its snapshot line.
func Count(path string) (int, error) {
	f, err := Load(path)
	if err != nil {
		return 0, err
	}
	return f.Count(), nil
}
