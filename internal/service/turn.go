package service

import (
	"context"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/engine"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/progression"
)

// TurnSummary describes the last committed turn.
type TurnSummary struct {
	PathType     game.TileType   `json:"path_type"`
	PathValue    int             `json:"path_value"`
	Defeated     []engine.Defeat `json:"defeated,omitempty"`
	LevelsGained int             `json:"levels_gained"`
}

// RunSummary is shown on the game over screen.
type RunSummary struct {
	Score      int      `json:"score"`
	ClassName  string   `json:"class_name"`
	FinalLevel int      `json:"final_level"`
	FinalDepth int      `json:"final_depth"`
	XPGained   int      `json:"xp_gained"`
	NewUnlocks []string `json:"new_unlocks"`
}

// replay rebuilds path through a fresh PathBuilder so only drag-reachable
// paths are accepted.
func replay(b game.Board, path []game.Position, eff game.EffectiveStats, cfg *game.GameConfig) (*engine.PathBuilder, bool) {
	pb := engine.NewPathBuilder()
	if len(path) == 0 || !pb.Press(b, path[0]) {
		return nil, false
	}
	for _, p := range path[1:] {
		if !pb.Enter(b, p, eff, cfg) {
			return nil, false
		}
	}
	got := pb.Path()
	if len(got) != len(path) {
		return nil, false
	}
	for i := range got {
		if got[i] != path[i] {
			return nil, false
		}
	}
	return pb, true
}

// Preview projects path on the current board without changing anything.
// Paths below the minimum length yield a nil preview.
func (s *Session) Preview(path []game.Position) (*engine.PathPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenPlaying {
		return nil, ErrNotReady
	}
	eff := engine.ComputeEffectiveStats(s.stats, s.cfg)
	if _, ok := replay(s.board, path, eff, s.cfg); !ok {
		return nil, ErrInvalidPath
	}
	return engine.CalculatePathPreview(s.board, path, eff, s.cfg), nil
}

// Press starts a drag at pos.
func (s *Session) Press(pos game.Position) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenPlaying {
			return ErrNotReady
		}
		if !s.builder.Press(s.board, pos) {
			return ErrInvalidPath
		}
		return nil
	})
}

// Enter extends or backtracks the current drag.
func (s *Session) Enter(pos game.Position) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenPlaying {
			return ErrNotReady
		}
		eff := engine.ComputeEffectiveStats(s.stats, s.cfg)
		s.builder.Enter(s.board, pos, eff, s.cfg)
		return nil
	})
}

// Release ends the drag and commits the path when it is long enough.
func (s *Session) Release(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	path, ok := s.builder.Release(s.cfg)
	s.mu.Unlock()
	if !ok {
		return s.mutate(func() error { return nil })
	}
	return s.CommitPath(ctx, path)
}

// CommitPath resolves one turn. The resolved state is published with the
// removal set, then after the presentation delay the removed cells are
// refilled and the run either continues, offers rewards or ends. Cancelling
// ctx cuts the delay short; the turn still completes.
func (s *Session) CommitPath(ctx context.Context, path []game.Position) (Snapshot, error) {
	var res engine.TurnResult
	snap, err := s.mutate(func() error {
		if s.screen != ScreenPlaying {
			return ErrNotReady
		}
		eff := engine.ComputeEffectiveStats(s.stats, s.cfg)
		if _, ok := replay(s.board, path, eff, s.cfg); !ok || len(path) < s.cfg.MinPathLength {
			return ErrInvalidPath
		}
		res = engine.ResolveTurn(s.board, s.stats, eff, path, s.cfg)
		if !res.Applied {
			return ErrInvalidPath
		}
		s.builder = engine.NewPathBuilder()
		s.board = res.Board
		s.stats = res.Stats
		s.removing = res.Removals
		s.lastTurn = &TurnSummary{
			PathType:     res.PathType,
			PathValue:    res.PathValue,
			Defeated:     res.Defeated,
			LevelsGained: res.LevelsGained,
		}
		s.addLog(res.Log...)
		s.screen = ScreenResolving
		logging.Info("turn resolved", logging.Fields{constants.LogFieldPathLength: len(path), constants.LogFieldDepth: s.depth})
		return nil
	})
	if err != nil {
		return snap, err
	}

	s.wait(ctx)

	done := context.WithoutCancel(ctx)
	return s.mutate(func() error {
		s.completeTurnLocked(done, res)
		return nil
	})
}

func (s *Session) wait(ctx context.Context) {
	if s.opts.PresentationDelay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.PresentationDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *Session) completeTurnLocked(ctx context.Context, res engine.TurnResult) {
	finalDepth := s.depth
	nextDepth := s.depth + 1
	s.board = engine.CompleteTurn(res, nextDepth, s.gen)
	s.removing = nil
	s.depth = nextDepth

	if res.Dead() {
		s.endRunLocked(ctx, finalDepth)
		return
	}

	s.screen = ScreenPlaying
	if res.LeveledUp() {
		s.offers = progression.GenerateOffers(s.rng, s.stats, s.progression, s.cfg)
		if len(s.offers) > 0 {
			s.screen = ScreenItemOffer
		}
	}
	s.saveRunLocked(ctx)
}

// endRunLocked records the finished run exactly once.
func (s *Session) endRunLocked(ctx context.Context, finalDepth int) {
	if s.screen == ScreenGameOver {
		return
	}
	score := progression.Score(finalDepth, s.stats)
	className := s.stats.ClassID
	if cls, ok := s.cfg.Class(s.stats.ClassID); ok {
		className = cls.Name
	}
	s.store.AddRunToHistory(ctx, game.RunHistoryEntry{
		Score:      score,
		ClassName:  className,
		FinalLevel: s.stats.Level,
		FinalDepth: finalDepth,
	})

	eor := progression.ProcessEndOfRun(s.progression, s.stats, s.cfg)
	s.progression = eor.Progression
	s.store.SaveProgression(ctx, s.progression)

	unlocks := make([]string, 0, len(eor.NewUnlocks))
	for _, id := range eor.NewUnlocks {
		name := id
		if def, ok := s.cfg.Ability(id); ok {
			name = def.Name
		}
		unlocks = append(unlocks, name)
	}
	s.summary = &RunSummary{
		Score:      score,
		ClassName:  className,
		FinalLevel: s.stats.Level,
		FinalDepth: finalDepth,
		XPGained:   eor.XPGained,
		NewUnlocks: unlocks,
	}

	s.store.ClearActiveRun(ctx)
	s.hasSaved = false
	s.offers = nil
	s.screen = ScreenGameOver
	logging.Info("run ended", logging.Fields{constants.LogFieldClass: s.stats.ClassID, constants.LogFieldDepth: finalDepth, constants.LogFieldScore: score})
}
