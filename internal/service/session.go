package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/engine"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/progression"
)

var (
	ErrNotReady           = errors.New("session is not accepting this input now")
	ErrInvalidPath        = errors.New("path is not valid on the current board")
	ErrNoSavedRun         = errors.New("no saved run to continue")
	ErrUnknownClass       = progression.ErrUnknownClass
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrInsufficientGold   = progression.ErrInsufficientGold
	ErrAbilityUnavailable = errors.New("ability is not ready")
)

// Screen is the session state. Gameplay input is accepted only while
// ScreenPlaying.
type Screen string

const (
	ScreenAttract        Screen = "attract"
	ScreenClassSelection Screen = "class_selection"
	ScreenPlaying        Screen = "playing"
	ScreenResolving      Screen = "resolving"
	ScreenItemOffer      Screen = "item_offer"
	ScreenGameOver       Screen = "game_over"
)

// logTail is how many earlier log lines survive each append.
const logTail = 10

// RunStore is the persistence the session needs.
type RunStore interface {
	LoadActiveRun(ctx context.Context) (game.SavedRun, bool)
	SaveActiveRun(ctx context.Context, run game.SavedRun)
	ClearActiveRun(ctx context.Context)
	HasActiveRun(ctx context.Context) bool
	LoadProgression(ctx context.Context) game.AccountProgression
	SaveProgression(ctx context.Context, prog game.AccountProgression)
	LoadRunHistory(ctx context.Context) []game.RunHistoryEntry
	AddRunToHistory(ctx context.Context, entry game.RunHistoryEntry) game.RunHistoryEntry
}

// Options tune a Session.
type Options struct {
	// Difficulty is used when class selection names none.
	Difficulty        string
	PresentationDelay time.Duration
	Rand              *rand.Rand
	// TileIDs replaces the UUID tile id source.
	TileIDs func() string
}

// Session is the single-player host: it owns the run state, drives the
// engine and persists through a RunStore. All methods are safe for
// concurrent use.
type Session struct {
	mu    sync.Mutex
	cfg   *game.GameConfig
	store RunStore
	opts  Options
	rng   *rand.Rand

	screen      Screen
	board       game.Board
	stats       game.PlayerStats
	depth       int
	log         []string
	difficulty  string
	gen         *engine.Generator
	builder     *engine.PathBuilder
	removing    []game.Position
	lastTurn    *TurnSummary
	offers      []progression.Offer
	progression game.AccountProgression
	hasSaved    bool
	summary     *RunSummary

	listenersMu sync.Mutex
	listeners   []func(Snapshot)
}

// NewSession loads progression and the saved-run flag and starts on the
// attract screen.
func NewSession(ctx context.Context, cfg *game.GameConfig, store RunStore, opts Options) *Session {
	if opts.Difficulty == "" {
		opts.Difficulty = game.DifficultyNormal
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		cfg:         cfg,
		store:       store,
		opts:        opts,
		rng:         rng,
		screen:      ScreenAttract,
		builder:     engine.NewPathBuilder(),
		progression: store.LoadProgression(ctx),
		hasSaved:    store.HasActiveRun(ctx),
		log:         []string{},
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) publish(snap Snapshot) {
	s.listenersMu.Lock()
	listeners := append([]func(Snapshot){}, s.listeners...)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// mutate runs fn under the lock and publishes the resulting snapshot when fn
// succeeds.
func (s *Session) mutate(fn func() error) (Snapshot, error) {
	s.mu.Lock()
	err := fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return snap, err
	}
	s.publish(snap)
	return snap, nil
}

// addLog appends lines, keeping the last logTail earlier lines.
func (s *Session) addLog(lines ...string) {
	if len(lines) == 0 {
		return
	}
	prev := s.log
	if len(prev) > logTail {
		prev = prev[len(prev)-logTail:]
	}
	s.log = append(append([]string{}, prev...), lines...)
}

func (s *Session) newGenerator(difficulty game.Difficulty) *engine.Generator {
	gen := engine.NewGenerator(s.cfg, difficulty, s.rng)
	if s.opts.TileIDs != nil {
		gen.WithIDSource(s.opts.TileIDs)
	}
	return gen
}

func (s *Session) saveRunLocked(ctx context.Context) {
	s.store.SaveActiveRun(ctx, game.SavedRun{
		Board:      s.board.Clone(),
		Stats:      s.stats.Clone(),
		Depth:      s.depth,
		Log:        append([]string{}, s.log...),
		Difficulty: s.difficulty,
	})
	s.hasSaved = true
}

func (s *Session) resetRunLocked() {
	s.board = nil
	s.stats = game.PlayerStats{}
	s.depth = 0
	s.log = []string{}
	s.gen = nil
	s.builder = engine.NewPathBuilder()
	s.removing = nil
	s.lastTurn = nil
	s.offers = nil
	s.summary = nil
}

// NewGame discards any saved run and opens class selection.
func (s *Session) NewGame(ctx context.Context) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen == ScreenResolving {
			return ErrNotReady
		}
		s.store.ClearActiveRun(ctx)
		s.hasSaved = false
		s.resetRunLocked()
		s.screen = ScreenClassSelection
		return nil
	})
}

// Continue restores the saved run.
func (s *Session) Continue(ctx context.Context) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen == ScreenResolving {
			return ErrNotReady
		}
		run, ok := s.store.LoadActiveRun(ctx)
		if !ok {
			s.hasSaved = false
			return ErrNoSavedRun
		}
		name := run.Difficulty
		if name == "" {
			name = s.opts.Difficulty
		}
		diff, ok := s.cfg.Difficulty(name)
		if !ok {
			name = game.DifficultyNormal
			diff, _ = s.cfg.Difficulty(name)
		}
		s.resetRunLocked()
		s.board = run.Board
		s.stats = run.Stats
		s.depth = run.Depth
		if run.Log != nil {
			s.log = run.Log
		}
		s.difficulty = name
		s.gen = s.newGenerator(diff)
		s.screen = ScreenPlaying
		logging.Info("run continued", logging.Fields{constants.LogFieldClass: s.stats.ClassID, constants.LogFieldDepth: s.depth})
		return nil
	})
}

// SelectClass starts a new run at depth 1 with classID. An empty difficulty
// uses the session default.
func (s *Session) SelectClass(ctx context.Context, classID, difficulty string) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenClassSelection {
			return ErrNotReady
		}
		if difficulty == "" {
			difficulty = s.opts.Difficulty
		}
		diff, ok := s.cfg.Difficulty(difficulty)
		if !ok {
			return ErrUnknownDifficulty
		}
		stats, err := progression.InitializePlayerForClass(classID, s.cfg)
		if err != nil {
			return err
		}
		cls, _ := s.cfg.Class(classID)

		s.resetRunLocked()
		s.difficulty = difficulty
		s.gen = s.newGenerator(diff)
		s.stats = stats
		s.depth = 1
		s.board = s.gen.InitializeBoard(s.depth)
		s.addLog("A " + cls.Name + " enters the dungeon.")
		s.screen = ScreenPlaying
		s.saveRunLocked(ctx)
		logging.Info("run started", logging.Fields{constants.LogFieldClass: classID, constants.LogFieldDifficulty: difficulty})
		return nil
	})
}

// ActivateAbility uses an owned, ready ability.
func (s *Session) ActivateAbility(ctx context.Context, abilityID string) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenPlaying {
			return ErrNotReady
		}
		res := engine.ActivateAbility(abilityID, s.board, s.stats, s.cfg)
		if !res.Applied {
			return ErrAbilityUnavailable
		}
		s.board = res.Board
		s.stats = res.Stats
		s.addLog(res.Log...)
		s.saveRunLocked(ctx)
		logging.Info("ability activated", logging.Fields{constants.LogFieldAbility: abilityID, constants.LogFieldDepth: s.depth})
		return nil
	})
}

// History returns finished runs, newest first.
func (s *Session) History(ctx context.Context) []game.RunHistoryEntry {
	return s.store.LoadRunHistory(ctx)
}
