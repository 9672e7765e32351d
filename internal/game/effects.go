package game

import (
	"encoding/json"
	"fmt"
)

// EffectKind tags an ability effect in content files.
type EffectKind string

const (
	EffectHeal            EffectKind = "HEAL"
	EffectDamageAllSkulls EffectKind = "DAMAGE_ALL_SKULLS"
	EffectApplyBuff       EffectKind = "APPLY_BUFF"
	EffectConvertTiles    EffectKind = "CONVERT_TILES"
)

// AbilityEffect is the closed set of ability effects. Dispatch goes through
// EffectVisitor, so a new effect kind does not compile until every visitor
// handles it.
type AbilityEffect interface {
	Kind() EffectKind
	Accept(v EffectVisitor)
}

// EffectVisitor handles each effect kind.
type EffectVisitor interface {
	VisitHeal(HealEffect)
	VisitDamageAllSkulls(DamageAllSkullsEffect)
	VisitApplyBuff(ApplyBuffEffect)
	VisitConvertTiles(ConvertTilesEffect)
}

// HealEffect restores a flat amount of HP.
type HealEffect struct{ Amount int }

// DamageAllSkullsEffect deals flat damage to every live Skull.
type DamageAllSkullsEffect struct{ Amount int }

// ApplyBuffEffect pushes a timed buff.
type ApplyBuffEffect struct {
	BuffID   string
	Duration int
}

// ConvertTilesEffect retypes every tile of From into To.
type ConvertTilesEffect struct{ From, To TileType }

func (HealEffect) Kind() EffectKind            { return EffectHeal }
func (DamageAllSkullsEffect) Kind() EffectKind { return EffectDamageAllSkulls }
func (ApplyBuffEffect) Kind() EffectKind       { return EffectApplyBuff }
func (ConvertTilesEffect) Kind() EffectKind    { return EffectConvertTiles }

func (e HealEffect) Accept(v EffectVisitor)            { v.VisitHeal(e) }
func (e DamageAllSkullsEffect) Accept(v EffectVisitor) { v.VisitDamageAllSkulls(e) }
func (e ApplyBuffEffect) Accept(v EffectVisitor)       { v.VisitApplyBuff(e) }
func (e ConvertTilesEffect) Accept(v EffectVisitor)    { v.VisitConvertTiles(e) }

// EffectSpec is the flat JSON shape of an effect in abilities.json.
type EffectSpec struct {
	Type     EffectKind `json:"type"`
	Amount   int        `json:"amount,omitempty"`
	BuffID   string     `json:"buff_id,omitempty"`
	Duration int        `json:"duration,omitempty"`
	From     TileType   `json:"from,omitempty"`
	To       TileType   `json:"to,omitempty"`
}

// Decode turns a spec into its effect variant.
func (s EffectSpec) Decode() (AbilityEffect, error) {
	switch s.Type {
	case EffectHeal:
		return HealEffect{Amount: s.Amount}, nil
	case EffectDamageAllSkulls:
		return DamageAllSkullsEffect{Amount: s.Amount}, nil
	case EffectApplyBuff:
		if s.BuffID == "" {
			return nil, fmt.Errorf("effect %s requires 'buff_id'", s.Type)
		}
		return ApplyBuffEffect{BuffID: s.BuffID, Duration: s.Duration}, nil
	case EffectConvertTiles:
		if !s.From.Valid() || !s.To.Valid() {
			return nil, fmt.Errorf("effect %s has invalid tile types '%s' -> '%s'", s.Type, s.From, s.To)
		}
		if s.To == TileSkull {
			return nil, fmt.Errorf("effect %s cannot convert tiles into %s", s.Type, TileSkull)
		}
		return ConvertTilesEffect{From: s.From, To: s.To}, nil
	}
	return nil, fmt.Errorf("unknown effect type '%s'", s.Type)
}

type specBuilder struct{ spec EffectSpec }

func (b *specBuilder) VisitHeal(e HealEffect) {
	b.spec = EffectSpec{Type: EffectHeal, Amount: e.Amount}
}
func (b *specBuilder) VisitDamageAllSkulls(e DamageAllSkullsEffect) {
	b.spec = EffectSpec{Type: EffectDamageAllSkulls, Amount: e.Amount}
}
func (b *specBuilder) VisitApplyBuff(e ApplyBuffEffect) {
	b.spec = EffectSpec{Type: EffectApplyBuff, BuffID: e.BuffID, Duration: e.Duration}
}
func (b *specBuilder) VisitConvertTiles(e ConvertTilesEffect) {
	b.spec = EffectSpec{Type: EffectConvertTiles, From: e.From, To: e.To}
}

// SpecOf returns the JSON shape of e.
func SpecOf(e AbilityEffect) EffectSpec {
	if e == nil {
		return EffectSpec{}
	}
	var b specBuilder
	e.Accept(&b)
	return b.spec
}

// AbilityDefinition is the static description of an ability.
type AbilityDefinition struct {
	ID                        string        `json:"id"`
	Name                      string        `json:"name"`
	Description               string        `json:"description"`
	Icon                      string        `json:"icon"`
	BaseCooldown              int           `json:"base_cooldown"`
	CooldownReductionPerLevel int           `json:"cooldown_reduction_per_level"`
	MaxLevel                  int           `json:"max_level"`
	Effect                    AbilityEffect `json:"-"`
}

type abilityDefinitionJSON struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	Description               string     `json:"description"`
	Icon                      string     `json:"icon"`
	BaseCooldown              int        `json:"base_cooldown"`
	CooldownReductionPerLevel int        `json:"cooldown_reduction_per_level"`
	MaxLevel                  int        `json:"max_level"`
	Effect                    EffectSpec `json:"effect"`
}

// MarshalJSON writes the effect in its flat spec shape.
func (d AbilityDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(abilityDefinitionJSON{
		ID:                        d.ID,
		Name:                      d.Name,
		Description:               d.Description,
		Icon:                      d.Icon,
		BaseCooldown:              d.BaseCooldown,
		CooldownReductionPerLevel: d.CooldownReductionPerLevel,
		MaxLevel:                  d.MaxLevel,
		Effect:                    SpecOf(d.Effect),
	})
}

// UnmarshalJSON decodes the flat effect spec into its variant.
func (d *AbilityDefinition) UnmarshalJSON(b []byte) error {
	var raw abilityDefinitionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	eff, err := raw.Effect.Decode()
	if err != nil {
		return fmt.Errorf("ability '%s': %w", raw.ID, err)
	}
	*d = AbilityDefinition{
		ID:                        raw.ID,
		Name:                      raw.Name,
		Description:               raw.Description,
		Icon:                      raw.Icon,
		BaseCooldown:              raw.BaseCooldown,
		CooldownReductionPerLevel: raw.CooldownReductionPerLevel,
		MaxLevel:                  raw.MaxLevel,
		Effect:                    eff,
	}
	return nil
}
