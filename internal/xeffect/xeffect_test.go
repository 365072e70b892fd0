package xeffect

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var today = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

const table = `# X Effect

| Date       | Gym | Reading |
|------------|-----|---------|
| 2026-08-30 |  <input type="checkbox"/> |  <input type="checkbox"/> |
| 2026-08-29 |  <input type="checkbox"/> |  <input type="checkbox"/> |
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habits.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtendInsertsWeekNewestFirst(t *testing.T) {
	path := writeTable(t, table)
	if err := Extend(path, today); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")

	var dates []string
	for _, line := range lines {
		if m := dateRowRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			dates = append(dates, m[1])
		}
	}
	want := []string{
		"2026-09-05", "2026-09-04", "2026-09-03", "2026-09-02",
		"2026-09-01", "2026-08-31", "2026-08-30", "2026-08-29",
	}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
	// Inserted rows keep the column count: date plus two habit cells.
	for _, line := range lines {
		if strings.HasPrefix(line, "| 2026-09-05") {
			if strings.Count(line, `<input type="checkbox"/>`) != 2 {
				t.Fatalf("inserted row has wrong cells: %q", line)
			}
		}
	}
}

func TestExtendIsIdempotent(t *testing.T) {
	path := writeTable(t, table)
	if err := Extend(path, today); err != nil {
		t.Fatalf("first Extend: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Extend(path, today); err != nil {
		t.Fatalf("second Extend: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("second Extend changed the file")
	}
}

func TestExtendRejectsRowWithoutClosingPipe(t *testing.T) {
	path := writeTable(t, "# X Effect\n\n| 2026-08-20\n")
	err := Extend(path, today)
	if !errors.Is(err, ErrMalformedTable) {
		t.Fatalf("want ErrMalformedTable, got %v", err)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(data) != "# X Effect\n\n| 2026-08-20\n" {
		t.Fatalf("malformed table was modified:\n%s", data)
	}
}

func TestExtendWithoutTableFails(t *testing.T) {
	path := writeTable(t, "# X Effect\n\nno table here\n")
	if err := Extend(path, today); !errors.Is(err, ErrNoTable) {
		t.Fatalf("want ErrNoTable, got %v", err)
	}
}

func TestExtendMissingFileFails(t *testing.T) {
	if err := Extend(filepath.Join(t.TempDir(), "habits.md"), today); err == nil {
		t.Fatal("missing file should fail")
	}
}
