package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const catalogYAML = `scenarios:
  - id: scn_gym
    name: Gym Membership
    type: bill
    tags: [health, recurring]
    amount:
      dist: fixed
      value: 45
    deterministic: true
    schedule:
      type: every_n_days
      n: 30
      offset: 3
  - id: scn_concert
    name: Concert Tickets
    type: expense
    tags: [entertainment, leisure]
    amount:
      dist: uniform
      low: 40
      high: 120
    base_daily_prob: 0.01
    cooldown_days: 20
`

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(catalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	gym, ok := cat.ByID("scn_gym")
	if !ok {
		t.Fatal("scn_gym not loaded")
	}
	if gym.Category != CategoryBill || !gym.Deterministic || gym.Schedule.Offset != 3 {
		t.Fatalf("scn_gym parsed wrong: %+v", gym)
	}
	concert, _ := cat.ByID("scn_concert")
	if concert.Amount.Dist != "uniform" || concert.Amount.High != 120 || concert.CooldownDays != 20 {
		t.Fatalf("scn_concert parsed wrong: %+v", concert)
	}

	// Synthetics are appended even for file-based catalogs.
	if _, ok := cat.ByID(IDLotteryResult); !ok {
		t.Fatal("synthetic lottery result missing")
	}
}

func TestLoadMissingDirFallsBack(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cat.ByID("scn_paycheck"); !ok {
		t.Fatal("fallback catalog must be the built-in one")
	}

	cat, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() < 50 {
		t.Fatal("empty dir must fall back to the built-in catalog")
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	bad := strings.Replace(catalogYAML, "value: 45", "value: [45", 1)
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("broken yaml must fail loading")
	}
}

func TestLoadInvalidScenarioFails(t *testing.T) {
	dir := t.TempDir()
	noName := strings.Replace(catalogYAML, "name: Gym Membership", "name: \"\"", 1)
	if err := os.WriteFile(filepath.Join(dir, "invalid.yaml"), []byte(noName), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("invalid scenario must fail validation")
	}
}

func TestDirWatcherFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w := NewDirWatcher(dir, 10*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// Let the primer pass, then touch the file with a future mtime.
	time.Sleep(30 * time.Millisecond)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired after file change")
	}
}
