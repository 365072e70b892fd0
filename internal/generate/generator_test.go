package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/note"
)

// 2026-08-30 is a Sunday, so the generated window covers Monday 08-31
// through Sunday 09-06.
var today = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

func loadConfig(t *testing.T, home, content string) *config.Config {
	t.Helper()
	path := filepath.Join(home, config.ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestRunCreatesHorizonFiles(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\nMonday: B\n")
	settings := config.DefaultSettings()

	result, err := New(home, cfg, settings, nil).Run(today)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Created) != 7 {
		t.Fatalf("Created = %v", result.Created)
	}
	if result.Created[0] != "2026-08-31.md" || result.Created[6] != "2026-09-06.md" {
		t.Fatalf("window bounds wrong: %v", result.Created)
	}
	if _, err := os.Stat(filepath.Join(home, note.Name(today))); !os.IsNotExist(err) {
		t.Fatal("today's note must not be generated")
	}

	// Monday gets A before B; other days only A.
	monday, err := os.ReadFile(filepath.Join(home, "2026-08-31.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(monday)
	iA := strings.Index(content, "- [ ] A")
	iB := strings.Index(content, "- [ ] B")
	if iA < 0 || iB < 0 || iA > iB {
		t.Fatalf("Monday note ordering wrong:\n%s", content)
	}
	if !strings.Contains(content, "# 2026-08-31 (Monday)") {
		t.Fatalf("missing heading:\n%s", content)
	}
	if !strings.Contains(content, SummaryPrefix+"0") {
		t.Fatalf("missing snapshot line:\n%s", content)
	}
	tuesday, err := os.ReadFile(filepath.Join(home, "2026-09-01.md"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(tuesday), "- [ ] B") {
		t.Fatalf("weekday entry leaked into Tuesday:\n%s", tuesday)
	}
}

func TestRunReportsOutstandingSnapshot(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\n")
	settings := config.DefaultSettings()
	tasks := "# Outstanding tasks\n\n- [ ] one\n- [ ] two\n- [ ] three\n- [x] done\n"
	if err := os.WriteFile(settings.OutstandingPath(home), []byte(tasks), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := New(home, cfg, settings, nil).Run(today)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outstanding != 3 {
		t.Fatalf("Outstanding = %d, want 3", result.Outstanding)
	}
	for _, name := range result.Created {
		data, err := os.ReadFile(filepath.Join(home, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), SummaryPrefix+"3") {
			t.Fatalf("%s missing snapshot 3:\n%s", name, data)
		}
	}
}

func TestRunTwiceAddsNoDuplicates(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\nMonday: B\n")
	settings := config.DefaultSettings()
	gen := New(home, cfg, settings, nil)

	if _, err := gen.Run(today); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(home, "2026-08-31.md"))
	if err != nil {
		t.Fatal(err)
	}
	result, err := gen.Run(today)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(result.Created) != 0 || len(result.Updated) != 0 {
		t.Fatalf("second run should change nothing: %+v", result)
	}
	second, err := os.ReadFile(filepath.Join(home, "2026-08-31.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("file changed on idempotent re-run:\n%s\nvs\n%s", first, second)
	}
}

func TestRunRefreshesSnapshotLine(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\n")
	settings := config.DefaultSettings()
	gen := New(home, cfg, settings, nil)
	if _, err := gen.Run(today); err != nil {
		t.Fatalf("first run: %v", err)
	}

	tasks := "# Outstanding tasks\n\n- [ ] one\n- [ ] two\n"
	if err := os.WriteFile(settings.OutstandingPath(home), []byte(tasks), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := gen.Run(today)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(result.Updated) != 7 {
		t.Fatalf("Updated = %v", result.Updated)
	}
	data, err := os.ReadFile(filepath.Join(home, "2026-08-31.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, SummaryPrefix+"2") {
		t.Fatalf("snapshot not refreshed:\n%s", content)
	}
	if strings.Count(content, SummaryPrefix) != 1 {
		t.Fatalf("duplicate snapshot lines:\n%s", content)
	}
}

func TestRunkeepsCheckedOffEntries(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\n")
	settings := config.DefaultSettings()
	name := "2026-08-31.md"
	existing := "# 2026-08-31 (Monday)\n\n- [x] A\n\n" + SummaryPrefix + "0\n"
	if err := os.WriteFile(filepath.Join(home, name), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(home, cfg, settings, nil).Run(today); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, name))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "- [ ] A") {
		t.Fatalf("checked-off entry was re-added:\n%s", data)
	}
}

func TestRunHonorsHorizonSetting(t *testing.T) {
	home := t.TempDir()
	cfg := loadConfig(t, home, "# Tasks\nevery day: A\n")
	settings := config.DefaultSettings()
	settings.Horizon = 2

	result, err := New(home, cfg, settings, nil).Run(today)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("Created = %v, want 2 files", result.Created)
	}
}
