package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct {
	resets int
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub Game" }
func (g *stubGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func() Game { return &stubGame{} })
	defer unregister("stub")

	if !Exists("stub") {
		t.Fatal("Exists(stub) = false after Register")
	}

	a, err := Create("stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	b, _ := Create("stub")
	if a == b {
		t.Error("Create() returned the same instance twice")
	}
	if a.Title() != "Stub Game" {
		t.Errorf("Title() = %q, expected %q", a.Title(), "Stub Game")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub" && info.Title == "Stub Game" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, expected a stub entry", List())
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("Create() for an unknown id should fail")
	}
	if Exists("no-such-game") {
		t.Error("Exists() = true for an unknown id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func() Game { return &stubGame{} })
	defer unregister("dup")

	defer func() {
		if recover() == nil {
			t.Error("second Register() with the same id should panic")
		}
	}()
	Register("dup", func() Game { return &stubGame{} })
}
