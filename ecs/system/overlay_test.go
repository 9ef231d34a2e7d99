package system

import (
	"math"
	"testing"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/entity"
	"github.com/milk9111/unicycle/gamestate"
	"github.com/milk9111/unicycle/levels"
)

func TestNextLevel(t *testing.T) {
	tests := []struct {
		name    string
		current component.CurrentLevel
		want    levels.Level
	}{
		{"cyclic_advances", component.CurrentLevel{Level: levels.Tutorial}, levels.First},
		{"cyclic_wraps", component.CurrentLevel{Level: levels.Third}, levels.Tutorial},
		{"bounded_advances", component.CurrentLevel{Level: levels.Second, Initial: levels.First, Bounded: true}, levels.Third},
		{"bounded_back_to_initial", component.CurrentLevel{Level: levels.Third, Initial: levels.First, Bounded: true}, levels.First},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			current := tc.current
			if got := NextLevel(&current); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestShowFinishedButtonKind(t *testing.T) {
	tests := []struct {
		level levels.Level
		want  component.ButtonKind
	}{
		{levels.Tutorial, component.ButtonNext},
		{levels.Second, component.ButtonNext},
		{levels.Third, component.ButtonRestart},
	}
	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			singleton(w, component.CurrentLevelComponent.Kind()).Level = tc.level
			NewShowFinishedSystem().Update(w)

			if n := ecs.Count(w, component.ButtonComponent.Kind()); n != 1 {
				t.Fatalf("expected one button, got %d", n)
			}
			e, _ := ecs.First(w, component.ButtonComponent.Kind())
			b, _ := ecs.Get(w, e, component.ButtonComponent.Kind())
			if b.Kind != tc.want || b.Label != tc.want.Label() {
				t.Fatalf("expected %v, got %+v", tc.want, b)
			}
		})
	}
}

// overlayMachine returns a machine sitting in [InLevel, st].
func overlayMachine(t *testing.T, rw *rigWorld, st gamestate.State) *gamestate.Machine {
	t.Helper()
	m := gamestate.NewMachine(gamestate.InLevel)
	stack := m.Stack()
	switch st {
	case gamestate.Lost:
		m.OnEnter(gamestate.Lost, NewShowLostSystem())
		m.OnUpdate(gamestate.Lost, NewLostButtonSystem(stack))
		m.OnExit(gamestate.Lost, ecs.SystemFunc(entity.DespawnOverlay))
	case gamestate.Finished:
		m.OnEnter(gamestate.Finished, NewShowFinishedSystem())
		m.OnUpdate(gamestate.Finished, NewFinishedButtonSystem(stack))
		m.OnExit(gamestate.Finished, ecs.SystemFunc(entity.DespawnOverlay))
	}
	if err := stack.Push(st); err != nil {
		t.Fatalf("push: %v", err)
	}
	m.Update(rw.w)
	if got := stack.States(); len(got) != 2 || got[1] != st {
		t.Fatalf("expected [InLevel %s], got %v", st, got)
	}
	return m
}

func clickButton(w *ecs.World, interaction component.Interaction) {
	ecs.ForEach(w, component.ButtonComponent.Kind(), func(_ ecs.Entity, b *component.Button) {
		b.Interaction = interaction
	})
}

func TestOverlayButton(t *testing.T) {
	tests := []struct {
		name      string
		state     gamestate.State
		restart   bool
		wantLevel levels.Level
	}{
		{"lost_click_retries", gamestate.Lost, false, levels.First},
		{"lost_restart_retries", gamestate.Lost, true, levels.First},
		{"finished_click_advances", gamestate.Finished, false, levels.Second},
		{"finished_restart_stays", gamestate.Finished, true, levels.First},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rw := newRigWorld(t, levels.First)
			m := overlayMachine(t, rw, tc.state)

			if tc.restart {
				singleton(rw.w, component.ActionsComponent.Kind()).Restart = true
			} else {
				clickButton(rw.w, component.InteractionClicked)
			}
			m.Update(rw.w)

			if got := m.Stack().States(); len(got) != 1 || got[0] != gamestate.PrepareLevel {
				t.Fatalf("expected [PrepareLevel], got %v", got)
			}
			if got := singleton(rw.w, component.CurrentLevelComponent.Kind()).Level; got != tc.wantLevel {
				t.Fatalf("expected level %s, got %s", tc.wantLevel, got)
			}
			if n := ecs.Count(rw.w, component.ButtonComponent.Kind()); n != 0 {
				t.Fatalf("overlay button left behind: %d", n)
			}
		})
	}
}

func TestOverlayButtonHover(t *testing.T) {
	rw := newRigWorld(t, levels.Tutorial)
	m := overlayMachine(t, rw, gamestate.Lost)

	steps := []struct {
		interaction component.Interaction
		want        component.ButtonMaterial
	}{
		{component.InteractionHovered, component.ButtonHovered},
		{component.InteractionNone, component.ButtonNormal},
	}
	for _, s := range steps {
		clickButton(rw.w, s.interaction)
		m.Update(rw.w)
		e, _ := ecs.First(rw.w, component.ButtonComponent.Kind())
		b, _ := ecs.Get(rw.w, e, component.ButtonComponent.Kind())
		if b.Material != s.want {
			t.Fatalf("interaction %d: expected material %+v, got %+v", s.interaction, s.want, b.Material)
		}
	}
	if m.Current() != gamestate.Lost {
		t.Fatalf("hovering should not leave Lost, got %s", m.Current())
	}
}

func TestOverlayFade(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.SpawnOverlay(w, component.ButtonAgain); err != nil {
		t.Fatal(err)
	}
	e, _ := ecs.First(w, component.OverlayComponent.Kind())
	o, _ := ecs.Get(w, e, component.OverlayComponent.Kind())

	fade := NewOverlayFadeSystem()
	fade.Update(w)
	if o.Alpha <= 0 || o.Alpha >= 0.6 {
		t.Fatalf("expected partial alpha after one frame, got %v", o.Alpha)
	}
	for i := 0; i < 60; i++ {
		fade.Update(w)
	}
	if math.Abs(o.Alpha-0.6) > 1e-3 || o.Fade != nil {
		t.Fatalf("expected settled alpha 0.6, got %v fade=%v", o.Alpha, o.Fade)
	}
}
