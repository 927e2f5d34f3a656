package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// Item is the UTI blueprint.
type Item struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocalizedName  gff.LocalizedString
	Description    gff.LocalizedString
	Cost           int32
	StackSize      uint16
	Plot           bool
	Identified     bool
	Stolen         bool

	ID int32
}

func ConstructUTI(t *gff.Tree) *Item {
	root := t.Root
	return &Item{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocalizedName:  getLocString(root, "LocalizedName"),
		Description:    getLocString(root, "Description"),
		Cost:           getI32(root, "Cost", 0),
		StackSize:      getU16(root, "StackSize", 1),
		Plot:           getU8(root, "Plot", 0) != 0,
		Identified:     getU8(root, "Identified", 1) != 0,
		Stolen:         getU8(root, "Stolen", 0) != 0,
		ID:             getI32(root, "ID", -1),
	}
}

func DismantleUTI(it *Item, opts DismantleOptions) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(it.TemplateResRef))
	root.Set("Tag", gff.FieldString(it.Tag))
	root.Set("LocalizedName", gff.FieldLocString(it.LocalizedName))
	root.Set("Description", gff.FieldLocString(it.Description))
	root.Set("Cost", gff.FieldI32(it.Cost))
	root.Set("StackSize", gff.FieldU16(it.StackSize))
	root.Set("Plot", gff.FieldU8(boolToU8(it.Plot)))
	root.Set("Identified", gff.FieldU8(boolToU8(it.Identified)))
	root.Set("Stolen", gff.FieldU8(boolToU8(it.Stolen)))
	if opts.UseDeprecated {
		root.Set("ID", gff.FieldI32(it.ID))
	}
	return &gff.Tree{FileType: "UTI ", Version: "V3.2", Root: root}
}

// Door is the UTD blueprint.
type Door struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocName        gff.LocalizedString
	HP             int32
	Hardness       int32
	Locked         bool
	KeyRequired    bool
	KeyName        string
	OpenLockDC     uint8
}

func ConstructUTD(t *gff.Tree) *Door {
	root := t.Root
	openFlag := getU8(root, "OpenLockDC", 0)
	return &Door{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocName:        getLocString(root, "LocName"),
		HP:             getI32(root, "HP", 0),
		Hardness:       getI32(root, "Hardness", 0),
		Locked:         getU8(root, "Locked", 0) != 0,
		KeyRequired:    getU8(root, "KeyRequired", 0) != 0,
		KeyName:        getStr(root, "KeyName", ""),
		OpenLockDC:     openFlag,
	}
}

func DismantleUTD(d *Door) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(d.TemplateResRef))
	root.Set("Tag", gff.FieldString(d.Tag))
	root.Set("LocName", gff.FieldLocString(d.LocName))
	root.Set("HP", gff.FieldI32(d.HP))
	root.Set("Hardness", gff.FieldI32(d.Hardness))
	root.Set("Locked", gff.FieldU8(boolToU8(d.Locked)))
	root.Set("KeyRequired", gff.FieldU8(boolToU8(d.KeyRequired)))
	root.Set("KeyName", gff.FieldString(d.KeyName))
	root.Set("OpenLockDC", gff.FieldU8(d.OpenLockDC))
	return &gff.Tree{FileType: "UTD ", Version: "V3.2", Root: root}
}

// Placeable is the UTP blueprint.
type Placeable struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocName        gff.LocalizedString
	HP             int32
	Hardness       int32
	Locked         bool
	Useable        bool
	Static         bool
}

func ConstructUTP(t *gff.Tree) *Placeable {
	root := t.Root
	return &Placeable{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocName:        getLocString(root, "LocName"),
		HP:             getI32(root, "HP", 0),
		Hardness:       getI32(root, "Hardness", 0),
		Locked:         getU8(root, "Locked", 0) != 0,
		Useable:        getU8(root, "Useable", 1) != 0,
		Static:         getU8(root, "Static", 0) != 0,
	}
}

func DismantleUTP(p *Placeable) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(p.TemplateResRef))
	root.Set("Tag", gff.FieldString(p.Tag))
	root.Set("LocName", gff.FieldLocString(p.LocName))
	root.Set("HP", gff.FieldI32(p.HP))
	root.Set("Hardness", gff.FieldI32(p.Hardness))
	root.Set("Locked", gff.FieldU8(boolToU8(p.Locked)))
	root.Set("Useable", gff.FieldU8(boolToU8(p.Useable)))
	root.Set("Static", gff.FieldU8(boolToU8(p.Static)))
	return &gff.Tree{FileType: "UTP ", Version: "V3.2", Root: root}
}
