package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/dedupe"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/keys"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
)

// Persistence exposes the three typed save slots on top of a Store. Load
// failures are logged and degrade to defaults; save failures are logged and
// swallowed, so a broken store never interrupts play.
type Persistence struct {
	store     Store
	namespace string
	cfg       *game.GameConfig
	now       func() time.Time
	loads     dedupe.Group
}

// NewPersistence wraps store. Slot keys are scoped to namespace.
func NewPersistence(store Store, namespace string, cfg *game.GameConfig) *Persistence {
	return &Persistence{store: store, namespace: namespace, cfg: cfg, now: time.Now}
}

// WithClock replaces the clock used to stamp history entries.
func (p *Persistence) WithClock(now func() time.Time) *Persistence {
	p.now = now
	return p
}

func (p *Persistence) key(slot string) string { return keys.SlotKey(p.namespace, slot) }

// load reads a slot; concurrent loads of the same key share one store read.
func (p *Persistence) load(ctx context.Context, slot string) ([]byte, bool) {
	key := p.key(slot)
	b, err := p.loads.Load(key, func() ([]byte, error) {
		return p.store.Load(ctx, key)
	})
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		logging.Error("failed to load slot", err, logging.Fields{constants.LogFieldSlot: slot, constants.LogFieldKey: key})
		return nil, false
	}
	return b, len(b) > 0
}

func (p *Persistence) save(ctx context.Context, slot string, v interface{}) {
	key := p.key(slot)
	b, err := json.Marshal(v)
	if err != nil {
		logging.Error("failed to encode slot", err, logging.Fields{constants.LogFieldSlot: slot})
		return
	}
	if err := p.store.Save(ctx, key, b); err != nil {
		logging.Error("failed to save slot", err, logging.Fields{constants.LogFieldSlot: slot, constants.LogFieldKey: key})
	}
}

// SaveActiveRun overwrites the active-run slot.
func (p *Persistence) SaveActiveRun(ctx context.Context, run game.SavedRun) {
	p.save(ctx, constants.SlotActiveRun, run)
}

// LoadActiveRun returns the saved run. Undecodable runs, and runs whose board
// does not match the loaded content, are reported as absent.
func (p *Persistence) LoadActiveRun(ctx context.Context) (game.SavedRun, bool) {
	b, ok := p.load(ctx, constants.SlotActiveRun)
	if !ok {
		return game.SavedRun{}, false
	}
	var run game.SavedRun
	if err := json.Unmarshal(b, &run); err != nil {
		logging.Error("failed to decode active run", err, logging.Fields{constants.LogFieldSlot: constants.SlotActiveRun})
		return game.SavedRun{}, false
	}
	if !p.validBoard(run.Board) {
		logging.Warn("discarding active run with invalid board", logging.Fields{constants.LogFieldSlot: constants.SlotActiveRun})
		return game.SavedRun{}, false
	}
	if run.Depth < 1 {
		run.Depth = 1
	}
	return run, true
}

func (p *Persistence) validBoard(b game.Board) bool {
	if p.cfg != nil && b.Size() != p.cfg.BoardSize {
		return false
	}
	for r := range b {
		if len(b[r]) != b.Size() {
			return false
		}
		for _, t := range b[r] {
			if t == nil || !t.Type.Valid() {
				return false
			}
			if (t.Type == game.TileSkull) != (t.Enemy != nil) {
				return false
			}
		}
	}
	return b.Size() > 0
}

// HasActiveRun reports whether a usable saved run exists.
func (p *Persistence) HasActiveRun(ctx context.Context) bool {
	_, ok := p.LoadActiveRun(ctx)
	return ok
}

// ClearActiveRun removes the active-run slot.
func (p *Persistence) ClearActiveRun(ctx context.Context) {
	key := p.key(constants.SlotActiveRun)
	if err := p.store.Clear(ctx, key); err != nil {
		logging.Error("failed to clear slot", err, logging.Fields{constants.LogFieldSlot: constants.SlotActiveRun, constants.LogFieldKey: key})
	}
}

// LoadProgression returns the account progression, or the content defaults
// when none is stored or the stored value cannot be decoded.
func (p *Persistence) LoadProgression(ctx context.Context) game.AccountProgression {
	def := p.defaultProgression()
	b, ok := p.load(ctx, constants.SlotProgression)
	if !ok {
		return def
	}
	var prog game.AccountProgression
	if err := json.Unmarshal(b, &prog); err != nil {
		logging.Error("failed to decode progression", err, logging.Fields{constants.LogFieldSlot: constants.SlotProgression})
		return def
	}
	if prog.ClassData == nil {
		prog.ClassData = map[string]game.ClassProgress{}
	}
	if prog.UnlockedAbilityIDs == nil {
		prog.UnlockedAbilityIDs = def.UnlockedAbilityIDs
	}
	if prog.UnlockedItemIDs == nil {
		prog.UnlockedItemIDs = def.UnlockedItemIDs
	}
	return prog
}

func (p *Persistence) defaultProgression() game.AccountProgression {
	if p.cfg == nil {
		return game.AccountProgression{ClassData: map[string]game.ClassProgress{}}
	}
	return p.cfg.DefaultProgression()
}

// SaveProgression overwrites the progression slot.
func (p *Persistence) SaveProgression(ctx context.Context, prog game.AccountProgression) {
	p.save(ctx, constants.SlotProgression, prog)
}

// LoadRunHistory returns finished runs, newest first.
func (p *Persistence) LoadRunHistory(ctx context.Context) []game.RunHistoryEntry {
	b, ok := p.load(ctx, constants.SlotRunHistory)
	if !ok {
		return []game.RunHistoryEntry{}
	}
	var history []game.RunHistoryEntry
	if err := json.Unmarshal(b, &history); err != nil {
		logging.Error("failed to decode run history", err, logging.Fields{constants.LogFieldSlot: constants.SlotRunHistory})
		return []game.RunHistoryEntry{}
	}
	if history == nil {
		history = []game.RunHistoryEntry{}
	}
	return history
}

// AddRunToHistory stamps entry with an id and date, prepends it and keeps
// the newest game.MaxRunHistory entries. The stored entry is returned.
func (p *Persistence) AddRunToHistory(ctx context.Context, entry game.RunHistoryEntry) game.RunHistoryEntry {
	now := p.now()
	entry.ID = now.UnixMilli()
	entry.Date = now.UTC()

	history := append([]game.RunHistoryEntry{entry}, p.LoadRunHistory(ctx)...)
	if len(history) > game.MaxRunHistory {
		history = history[:game.MaxRunHistory]
	}
	p.save(ctx, constants.SlotRunHistory, history)
	return entry
}
