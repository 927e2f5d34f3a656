package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// Creature is the UTC blueprint: a spawnable NPC/PC template.
type Creature struct {
	TemplateResRef resref.ResRef
	Tag            string
	FirstName      gff.LocalizedString
	LastName       gff.LocalizedString
	Conversation   resref.ResRef
	Hitpoints      int32
	CurrentHP      int32
	MaxHP          int32
	FortSave       uint8
	RefSave        uint8
	WillSave       uint8
	Disarmable     bool
	Plot           bool
	NoPermDeath    bool
	Min1HP         bool

	ID int32
}

// ConstructUTC projects a decoded UTC GFF tree into a Creature.
func ConstructUTC(t *gff.Tree) *Creature {
	root := t.Root
	c := &Creature{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		FirstName:      getLocString(root, "FirstName"),
		LastName:       getLocString(root, "LastName"),
		Conversation:   getResRef(root, "Conversation", resref.ResRef{}),
		Hitpoints:      getI32(root, "HitPoints", 1),
		CurrentHP:      getI32(root, "CurrentHitPoints", 1),
		MaxHP:          getI32(root, "MaxHitPoints", 1),
		FortSave:       getU8(root, "fortbonus", 0),
		RefSave:        getU8(root, "refbonus", 0),
		WillSave:       getU8(root, "willbonus", 0),
		Disarmable:     getU8(root, "Disarmable", 0) != 0,
		Plot:           getU8(root, "Plot", 0) != 0,
		NoPermDeath:    getU8(root, "NoPermDeath", 0) != 0,
		Min1HP:         getU8(root, "Min1HP", 0) != 0,
		ID:             getI32(root, "ID", -1),
	}
	return c
}

// DismantleUTC converts a Creature back into a UTC GFF tree.
func DismantleUTC(c *Creature, opts DismantleOptions) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(c.TemplateResRef))
	root.Set("Tag", gff.FieldString(c.Tag))
	root.Set("FirstName", gff.FieldLocString(c.FirstName))
	root.Set("LastName", gff.FieldLocString(c.LastName))
	root.Set("Conversation", gff.FieldResRef(c.Conversation))
	root.Set("HitPoints", gff.FieldI32(c.Hitpoints))
	root.Set("CurrentHitPoints", gff.FieldI32(c.CurrentHP))
	root.Set("MaxHitPoints", gff.FieldI32(c.MaxHP))
	root.Set("fortbonus", gff.FieldU8(c.FortSave))
	root.Set("refbonus", gff.FieldU8(c.RefSave))
	root.Set("willbonus", gff.FieldU8(c.WillSave))
	root.Set("Disarmable", gff.FieldU8(boolToU8(c.Disarmable)))
	root.Set("Plot", gff.FieldU8(boolToU8(c.Plot)))
	root.Set("NoPermDeath", gff.FieldU8(boolToU8(c.NoPermDeath)))
	root.Set("Min1HP", gff.FieldU8(boolToU8(c.Min1HP)))
	if opts.UseDeprecated {
		root.Set("ID", gff.FieldI32(c.ID))
	}
	return &gff.Tree{FileType: "UTC ", Version: "V3.2", Root: root}
}
