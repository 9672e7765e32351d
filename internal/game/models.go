package game

import (
	"time"

	"gorm.io/gorm"
)

// EquipmentSlot names one of the four fixed equipment slots.
type EquipmentSlot string

const (
	SlotWeapon     EquipmentSlot = "weapon"
	SlotArmor      EquipmentSlot = "armor"
	SlotAccessory1 EquipmentSlot = "accessory1"
	SlotAccessory2 EquipmentSlot = "accessory2"
)

// EquipmentSlots lists the slots in a stable order.
var EquipmentSlots = []EquipmentSlot{SlotWeapon, SlotArmor, SlotAccessory1, SlotAccessory2}

// Valid reports whether s is one of the four equipment slots.
func (s EquipmentSlot) Valid() bool {
	switch s {
	case SlotWeapon, SlotArmor, SlotAccessory1, SlotAccessory2:
		return true
	}
	return false
}

// PlayerItem is an owned item and its current upgrade tier (1-based).
type PlayerItem struct {
	ItemID       string `json:"item_id"`
	UpgradeLevel int    `json:"upgrade_level"`
}

// Equipment holds at most one item per slot.
type Equipment struct {
	Weapon     *PlayerItem `json:"weapon"`
	Armor      *PlayerItem `json:"armor"`
	Accessory1 *PlayerItem `json:"accessory1"`
	Accessory2 *PlayerItem `json:"accessory2"`
}

// Get returns the item in slot s, or nil.
func (e Equipment) Get(s EquipmentSlot) *PlayerItem {
	switch s {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	case SlotAccessory1:
		return e.Accessory1
	case SlotAccessory2:
		return e.Accessory2
	}
	return nil
}

// Set places item in slot s. Unknown slots are ignored.
func (e *Equipment) Set(s EquipmentSlot, item *PlayerItem) {
	switch s {
	case SlotWeapon:
		e.Weapon = item
	case SlotArmor:
		e.Armor = item
	case SlotAccessory1:
		e.Accessory1 = item
	case SlotAccessory2:
		e.Accessory2 = item
	}
}

// Owns reports whether any slot holds itemID.
func (e Equipment) Owns(itemID string) bool {
	for _, s := range EquipmentSlots {
		if it := e.Get(s); it != nil && it.ItemID == itemID {
			return true
		}
	}
	return false
}

// Clone deep-copies the equipment.
func (e Equipment) Clone() Equipment {
	var out Equipment
	for _, s := range EquipmentSlots {
		if it := e.Get(s); it != nil {
			cp := *it
			out.Set(s, &cp)
		}
	}
	return out
}

// PlayerAbility is the mutable, player-owned state of an ability.
type PlayerAbility struct {
	ID       string `json:"id"`
	Level    int    `json:"level"`
	Cooldown int    `json:"cooldown"`
}

// Buff is a timed player status flag.
type Buff struct {
	ID             string `json:"id"`
	TurnsRemaining int    `json:"turns_remaining"`
}

// Buff ids consumed by the path effect phase.
const (
	BuffDoubleAttack = "double_attack"
	BuffDoubleGold   = "double_gold"
)

// PlayerStats is the base (unequipped) state of the player during a run.
type PlayerStats struct {
	HP           int             `json:"hp"`
	MaxHP        int             `json:"max_hp"`
	Armor        int             `json:"armor"`
	MaxArmor     int             `json:"max_armor"`
	Attack       int             `json:"attack"`
	Gold         int             `json:"gold"`
	XP           int             `json:"xp"`
	Level        int             `json:"level"`
	ClassID      string          `json:"class_id"`
	Abilities    []PlayerAbility `json:"abilities"`
	PoisonStacks int             `json:"poison_stacks"`
	Buffs        []Buff          `json:"buffs"`
	Equipment    Equipment       `json:"equipment"`
}

// HasBuff reports whether a buff with the given id is active.
func (p PlayerStats) HasBuff(id string) bool {
	for _, b := range p.Buffs {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Ability returns the owned ability with the given id.
func (p PlayerStats) Ability(id string) (PlayerAbility, bool) {
	for _, a := range p.Abilities {
		if a.ID == id {
			return a, true
		}
	}
	return PlayerAbility{}, false
}

// Clone deep-copies the stats so phases never share slices.
func (p PlayerStats) Clone() PlayerStats {
	out := p
	out.Abilities = append([]PlayerAbility(nil), p.Abilities...)
	out.Buffs = append([]Buff(nil), p.Buffs...)
	out.Equipment = p.Equipment.Clone()
	return out
}

// EffectiveStats is PlayerStats with equipment modifiers applied. It is
// derived on demand and never persisted.
type EffectiveStats struct {
	PlayerStats
	GoldMultiplier float64 `json:"gold_multiplier"`
	XPMultiplier   float64 `json:"xp_multiplier"`
}

// ClassProgress is the persisted XP ledger of one class.
type ClassProgress struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// AccountProgression is the cross-run, install-wide progression. It only grows.
type AccountProgression struct {
	ClassData          map[string]ClassProgress `json:"class_data"`
	UnlockedAbilityIDs []string                 `json:"unlocked_ability_ids"`
	UnlockedItemIDs    []string                 `json:"unlocked_item_ids"`
}

// Clone deep-copies the progression.
func (a AccountProgression) Clone() AccountProgression {
	out := AccountProgression{
		ClassData:          make(map[string]ClassProgress, len(a.ClassData)),
		UnlockedAbilityIDs: append([]string(nil), a.UnlockedAbilityIDs...),
		UnlockedItemIDs:    append([]string(nil), a.UnlockedItemIDs...),
	}
	for k, v := range a.ClassData {
		out.ClassData[k] = v
	}
	return out
}

// HasAbility reports whether ability id is unlocked account-wide.
func (a AccountProgression) HasAbility(id string) bool { return containsString(a.UnlockedAbilityIDs, id) }

// HasItem reports whether item id is unlocked account-wide.
func (a AccountProgression) HasItem(id string) bool { return containsString(a.UnlockedItemIDs, id) }

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// RunHistoryEntry records a finished run. Entries are immutable once written.
type RunHistoryEntry struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	Score      int       `json:"score"`
	ClassName  string    `json:"class_name"`
	FinalLevel int       `json:"final_level"`
	FinalDepth int       `json:"final_depth"`
}

// MaxRunHistory caps the persisted history, newest first.
const MaxRunHistory = 50

// SavedRun is the payload of the active-run slot.
type SavedRun struct {
	Board      Board       `json:"board"`
	Stats      PlayerStats `json:"player_stats"`
	Depth      int         `json:"depth"`
	Log        []string    `json:"game_log"`
	Difficulty string      `json:"difficulty,omitempty"`
}

// SaveSlot stores one opaque persisted blob keyed by slot name.
type SaveSlot struct {
	gorm.Model
	Key     string `gorm:"column:slot_key;uniqueIndex;size:128"`
	Payload []byte `gorm:"column:payload;type:blob"`
}

// Keep the table name stable across renames of the Go type.
func (SaveSlot) TableName() string { return "save_slots" }
