package progression

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

var (
	ErrInsufficientGold = errors.New("not enough gold")
	ErrUnknownItem      = errors.New("unknown item")
	ErrStaleOffer       = errors.New("offer no longer matches equipment")
)

// MaxOffers caps one reward screen.
const MaxOffers = 3

// OfferKind distinguishes upgrades of equipped items from new items.
type OfferKind string

const (
	OfferUpgrade OfferKind = "upgrade"
	OfferNewItem OfferKind = "new_item"
)

// Offer is one reward presented after a level-up.
type Offer struct {
	ID        string             `json:"id"`
	Kind      OfferKind          `json:"kind"`
	ItemID    string             `json:"item_id"`
	Name      string             `json:"name"`
	Slot      game.EquipmentSlot `json:"slot"`
	NextLevel int                `json:"next_level"`
	Cost      int                `json:"cost"`
	Modifiers game.ItemModifiers `json:"modifiers"`
}

func newOffer(kind OfferKind, def game.ItemDefinition, slot game.EquipmentSlot, level int) Offer {
	o := Offer{
		ID:        fmt.Sprintf("%s:%s", kind, def.ID),
		Kind:      kind,
		ItemID:    def.ID,
		Name:      def.Name,
		Slot:      slot,
		NextLevel: level,
	}
	if tier, ok := def.Upgrade(level); ok {
		o.Modifiers = tier.Modifiers
		if kind == OfferUpgrade {
			o.Cost = tier.Cost
		}
	}
	return o
}

// GenerateOffers draws up to MaxOffers rewards: an upgrade for a random
// equipped item that still has tiers left, a new item for a random empty
// slot, then random unlocked items the player does not own. Item ids never
// repeat within one set.
func GenerateOffers(rng *rand.Rand, stats game.PlayerStats, prog game.AccountProgression, cfg *game.GameConfig) []Offer {
	offers := make([]Offer, 0, MaxOffers)

	type upgradeable struct {
		slot game.EquipmentSlot
		item game.PlayerItem
		def  game.ItemDefinition
	}
	var candidates []upgradeable
	var emptySlots []game.EquipmentSlot
	for _, slot := range game.EquipmentSlots {
		it := stats.Equipment.Get(slot)
		if it == nil {
			emptySlots = append(emptySlots, slot)
			continue
		}
		if def, ok := cfg.Item(it.ItemID); ok && it.UpgradeLevel < len(def.UpgradePath) {
			candidates = append(candidates, upgradeable{slot: slot, item: *it, def: def})
		}
	}
	if len(candidates) > 0 {
		c := candidates[rng.Intn(len(candidates))]
		offers = append(offers, newOffer(OfferUpgrade, c.def, c.slot, c.item.UpgradeLevel+1))
	}

	var pool []game.ItemDefinition
	for _, def := range cfg.Items {
		if prog.HasItem(def.ID) && !stats.Equipment.Owns(def.ID) {
			pool = append(pool, def)
		}
	}
	offered := map[string]bool{}

	if len(emptySlots) > 0 && len(pool) > 0 {
		target := emptySlots[rng.Intn(len(emptySlots))]
		var forSlot []game.ItemDefinition
		for _, def := range pool {
			if def.Slot == target {
				forSlot = append(forSlot, def)
			}
		}
		if len(forSlot) > 0 {
			def := forSlot[rng.Intn(len(forSlot))]
			offers = append(offers, newOffer(OfferNewItem, def, def.Slot, 1))
			offered[def.ID] = true
		}
	}

	for len(offers) < MaxOffers && len(pool) > 0 {
		i := rng.Intn(len(pool))
		def := pool[i]
		if !offered[def.ID] {
			offers = append(offers, newOffer(OfferNewItem, def, def.Slot, 1))
			offered[def.ID] = true
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return offers
}

// Purchase is the state after buying an offer.
type Purchase struct {
	Stats       game.PlayerStats
	Progression game.AccountProgression
	Discovered  bool
	Log         string
}

// PurchaseOffer applies o. Upgrades cost gold and raise the equipped item by
// exactly one tier; new items are free, replace whatever holds their slot and
// are unlocked account-wide the first time they are seen.
func PurchaseOffer(stats game.PlayerStats, prog game.AccountProgression, o Offer, cfg *game.GameConfig) (Purchase, error) {
	def, ok := cfg.Item(o.ItemID)
	if !ok {
		return Purchase{}, ErrUnknownItem
	}
	out := Purchase{Stats: stats.Clone(), Progression: prog.Clone()}

	switch o.Kind {
	case OfferUpgrade:
		it := out.Stats.Equipment.Get(o.Slot)
		if it == nil || it.ItemID != o.ItemID || it.UpgradeLevel+1 != o.NextLevel {
			return Purchase{}, ErrStaleOffer
		}
		tier, ok := def.Upgrade(o.NextLevel)
		if !ok {
			return Purchase{}, ErrStaleOffer
		}
		if out.Stats.Gold < tier.Cost {
			return Purchase{}, ErrInsufficientGold
		}
		out.Stats.Gold -= tier.Cost
		it.UpgradeLevel = o.NextLevel
		out.Log = fmt.Sprintf("You upgraded %s to Level %d!", def.Name, o.NextLevel)
	case OfferNewItem:
		if !def.Slot.Valid() {
			return Purchase{}, ErrUnknownItem
		}
		out.Stats.Equipment.Set(def.Slot, &game.PlayerItem{ItemID: def.ID, UpgradeLevel: 1})
		out.Log = fmt.Sprintf("You equipped the %s.", def.Name)
		if !out.Progression.HasItem(def.ID) {
			out.Progression.UnlockedItemIDs = append(out.Progression.UnlockedItemIDs, def.ID)
			out.Discovered = true
		}
	default:
		return Purchase{}, ErrStaleOffer
	}
	return out, nil
}
