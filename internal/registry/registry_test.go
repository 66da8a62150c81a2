package registry

import (
	"testing"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	t.Cleanup(func() {
		unregister("zz-stub")
		unregister("aa-stub")
	})

	Register(GameInfo{ID: "zz-stub", Title: "Z"}, func() Game { return &stubGame{id: "zz-stub"} })
	Register(GameInfo{ID: "aa-stub"}, func() Game { return &stubGame{id: "aa-stub"} })

	if !Exists("zz-stub") || Exists("missing") {
		t.Error("Exists reported the wrong result")
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	list := List()
	var aa, zz = -1, -1
	for i, info := range list {
		switch info.ID {
		case "aa-stub":
			aa = i
			if info.Title != "aa-stub" {
				t.Errorf("empty title should default to the id, got %q", info.Title)
			}
		case "zz-stub":
			zz = i
		}
	}
	if aa < 0 || zz < 0 || aa > zz {
		t.Errorf("List() not sorted or incomplete: %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	t.Cleanup(func() { unregister("dup-stub") })
	Register(GameInfo{ID: "dup-stub"}, func() Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "dup-stub"}, func() Game { return &stubGame{} })
}
