package system

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
	"github.com/quasilyte/gdata"
)

const progressKey = "progress"

// ProgressStore keeps the level to resume at.
type ProgressStore interface {
	LoadProgress() (levels.Level, bool)
	SaveProgress(levels.Level) error
}

// SavedProgress is the on-disk progress payload.
type SavedProgress struct {
	Level string `json:"level"`
}

// GdataStore stores progress in the per-user game data directory.
type GdataStore struct {
	manager *gdata.Manager
}

func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("persistence: open: %w", err)
	}
	return &GdataStore{manager: m}, nil
}

func (s *GdataStore) LoadProgress() (levels.Level, bool) {
	if s == nil || s.manager == nil {
		return levels.Tutorial, false
	}
	data, err := s.manager.LoadItem(progressKey)
	if err != nil {
		log.Printf("persistence: load progress: %v", err)
		return levels.Tutorial, false
	}
	if len(data) == 0 {
		return levels.Tutorial, false
	}
	var saved SavedProgress
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("persistence: parse progress: %v", err)
		return levels.Tutorial, false
	}
	level, err := levels.ParseLevel(saved.Level)
	if err != nil {
		log.Printf("persistence: %v", err)
		return levels.Tutorial, false
	}
	return level, true
}

func (s *GdataStore) SaveProgress(level levels.Level) error {
	if s == nil || s.manager == nil {
		return nil
	}
	data, err := json.Marshal(SavedProgress{Level: level.String()})
	if err != nil {
		return fmt.Errorf("persistence: encode progress: %w", err)
	}
	if err := s.manager.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("persistence: save progress: %w", err)
	}
	return nil
}

// ProgressSystem saves the level the player would continue with. It runs on
// entering Finished.
type ProgressSystem struct {
	store ProgressStore
}

func NewProgressSystem(store ProgressStore) *ProgressSystem {
	return &ProgressSystem{store: store}
}

func (p *ProgressSystem) Update(w *ecs.World) {
	if p == nil || p.store == nil {
		return
	}
	current := *singleton(w, component.CurrentLevelComponent.Kind())
	if err := p.store.SaveProgress(nextLevelQuiet(current)); err != nil {
		log.Printf("persistence: %v", err)
	}
}

func nextLevelQuiet(current component.CurrentLevel) levels.Level {
	if !current.Bounded {
		return current.Level.Next()
	}
	if next, ok := current.Level.NextBounded(); ok {
		return next
	}
	return current.Initial
}
