package service

import (
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/engine"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/progression"
)

// DragState mirrors the in-progress drag for clients.
type DragState struct {
	Path    []game.Position     `json:"path"`
	Preview *engine.PathPreview `json:"preview,omitempty"`
}

// Snapshot is a read-only copy of the session handed to clients.
type Snapshot struct {
	Screen        Screen               `json:"screen"`
	HasSavedRun   bool                 `json:"has_saved_run"`
	Difficulty    string               `json:"difficulty,omitempty"`
	Depth         int                  `json:"depth"`
	Board         game.Board           `json:"board,omitempty"`
	Removing      []game.Position      `json:"removing,omitempty"`
	Stats         *game.PlayerStats    `json:"stats,omitempty"`
	Effective     *game.EffectiveStats `json:"effective,omitempty"`
	XPToNextLevel int                  `json:"xp_to_next_level,omitempty"`
	Log           []string             `json:"log"`
	Drag          *DragState           `json:"drag,omitempty"`
	LastTurn      *TurnSummary         `json:"last_turn,omitempty"`
	Offers        []progression.Offer  `json:"offers,omitempty"`
	RunSummary    *RunSummary          `json:"run_summary,omitempty"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Screen:      s.screen,
		HasSavedRun: s.hasSaved,
		Difficulty:  s.difficulty,
		Depth:       s.depth,
		Log:         append([]string{}, s.log...),
		RunSummary:  s.summary,
	}
	if s.board != nil {
		snap.Board = s.board.Clone()
		snap.Removing = append([]game.Position(nil), s.removing...)
		stats := s.stats.Clone()
		eff := engine.ComputeEffectiveStats(stats, s.cfg)
		snap.Stats = &stats
		snap.Effective = &eff
		snap.XPToNextLevel = engine.XPForLevel(stats.Level, s.cfg)
	}
	if s.builder.State() == engine.DragDragging {
		snap.Drag = &DragState{Path: s.builder.Path(), Preview: s.builder.Preview()}
	}
	if s.lastTurn != nil {
		lt := *s.lastTurn
		snap.LastTurn = &lt
	}
	if len(s.offers) > 0 {
		snap.Offers = append([]progression.Offer(nil), s.offers...)
	}
	return snap
}

// ClassProgressView is one class row of the progression screen.
type ClassProgressView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	XP   int    `json:"xp"`
	progression.ClassLevelInfo
}

// ProgressionView is the account progression with per-class levels.
type ProgressionView struct {
	Classes            []ClassProgressView `json:"classes"`
	UnlockedAbilityIDs []string            `json:"unlocked_ability_ids"`
	UnlockedItemIDs    []string            `json:"unlocked_item_ids"`
}

// Progression returns the account progression as loaded by the session.
func (s *Session) Progression() ProgressionView {
	s.mu.Lock()
	prog := s.progression.Clone()
	s.mu.Unlock()

	view := ProgressionView{
		Classes:            make([]ClassProgressView, 0, len(s.cfg.Classes)),
		UnlockedAbilityIDs: prog.UnlockedAbilityIDs,
		UnlockedItemIDs:    prog.UnlockedItemIDs,
	}
	for _, cls := range s.cfg.Classes {
		xp := prog.ClassData[cls.ID].XP
		view.Classes = append(view.Classes, ClassProgressView{
			ID:             cls.ID,
			Name:           cls.Name,
			XP:             xp,
			ClassLevelInfo: progression.ClassLevel(xp),
		})
	}
	return view
}
