package game

import (
	"encoding/json"
	"testing"
)

func TestBoardCloneDoesNotAlias(t *testing.T) {
	b := Board{
		{{ID: "a", Type: TileSkull, Enemy: &EnemyState{HP: 5, Traits: []EnemyTrait{TraitPoison}}}, nil},
		{{ID: "b", Type: TileSword}, {ID: "c", Type: TileCoin}},
	}
	c := b.Clone()
	c[0][0].Enemy.HP = 1
	c[0][0].Enemy.Traits[0] = TraitHealAllies
	c[1][0] = nil

	if b[0][0].Enemy.HP != 5 || b[0][0].Enemy.Traits[0] != TraitPoison || b[1][0] == nil {
		t.Fatalf("clone shares state with the original")
	}
	if b.Full() || !c[0][0].IsLiveSkull() {
		t.Fatalf("unexpected Full/IsLiveSkull results")
	}
	if b.At(Position{Row: 5, Col: 0}) != nil || b.InBounds(Position{Row: -1, Col: 0}) {
		t.Fatalf("out of bounds positions must be rejected")
	}
}

func TestCompatibleWith(t *testing.T) {
	if !TileSkull.CompatibleWith(TileSword) || !TileSword.CompatibleWith(TileSkull) {
		t.Fatalf("sword and skull must chain together")
	}
	if TileCoin.CompatibleWith(TileSword) || TileShield.CompatibleWith(TilePotion) {
		t.Fatalf("non-attack tiles only chain with their own type")
	}
}

func TestAbilityDefinitionDecodesEffect(t *testing.T) {
	var def AbilityDefinition
	raw := `{"id":"exorcism","name":"Exorcism","base_cooldown":9,"effect":{"type":"CONVERT_TILES","from":"SKULL","to":"SWORD"}}`
	if err := json.Unmarshal([]byte(raw), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	conv, ok := def.Effect.(ConvertTilesEffect)
	if !ok || conv.From != TileSkull || conv.To != TileSword {
		t.Fatalf("unexpected effect %#v", def.Effect)
	}

	bad := `{"id":"summon","effect":{"type":"CONVERT_TILES","from":"COIN","to":"SKULL"}}`
	if err := json.Unmarshal([]byte(bad), &def); err == nil {
		t.Fatalf("expected conversion into skulls to be rejected")
	}
	unknown := `{"id":"mystery","effect":{"type":"TELEPORT"}}`
	if err := json.Unmarshal([]byte(unknown), &def); err == nil {
		t.Fatalf("expected unknown effect type to be rejected")
	}
}

func TestEquipmentSlots(t *testing.T) {
	var e Equipment
	e.Set(SlotAccessory2, &PlayerItem{ItemID: "ring", UpgradeLevel: 1})
	if !e.Owns("ring") || e.Get(SlotAccessory2) == nil || e.Get(SlotWeapon) != nil {
		t.Fatalf("unexpected equipment state %+v", e)
	}
	c := e.Clone()
	c.Accessory2.UpgradeLevel = 3
	if e.Accessory2.UpgradeLevel != 1 {
		t.Fatalf("clone shares items with the original")
	}
	if EquipmentSlot("belt").Valid() {
		t.Fatalf("unknown slot reported valid")
	}
}
