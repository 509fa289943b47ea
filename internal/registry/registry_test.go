package registry

import (
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string                           { return g.id }
func (g fakeGame) Title() string                        { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig)             {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen)                  {}
func (g fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-test-a", func() Game { return fakeGame{id: "zz-test-a"} })

	if !Exists("zz-test-a") {
		t.Fatal("Registered game should exist")
	}

	g, err := Create("zz-test-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-test-a" {
		t.Errorf("Expected id zz-test-a, got %s", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown ids")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("zz-test-c", func() Game { return fakeGame{id: "zz-test-c"} })
	Register("zz-test-b", func() Game { return fakeGame{id: "zz-test-b"} })

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz-test-b" && info.Title != "Fake zz-test-b" {
			t.Errorf("Unexpected title %q", info.Title)
		}
	}

	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("List not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-test-dup", func() Game { return fakeGame{id: "zz-test-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Duplicate registration should panic")
		}
	}()
	Register("zz-test-dup", func() Game { return fakeGame{id: "zz-test-dup"} })
}

func TestRunSummaryFinal(t *testing.T) {
	tests := map[string]bool{
		OutcomeDeath:    true,
		OutcomeCleared:  false,
		OutcomeQuit:     true,
		OutcomeComplete: true,
	}
	for outcome, want := range tests {
		if got := (RunSummary{Outcome: outcome}).Final(); got != want {
			t.Errorf("Final() for %q = %v, want %v", outcome, got, want)
		}
	}
}
