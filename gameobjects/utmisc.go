package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// Trigger is the UTT blueprint.
type Trigger struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocName        gff.LocalizedString
	ScriptOnEnter  string
	ScriptOnExit   string
	TrapDetectDC   uint8
	TrapDisarmDC   uint8
	Trap           bool
}

func ConstructUTT(t *gff.Tree) *Trigger {
	root := t.Root
	return &Trigger{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocName:        getLocString(root, "LocalizedName"),
		ScriptOnEnter:  getStr(root, "ScriptOnEnter", ""),
		ScriptOnExit:   getStr(root, "ScriptOnExit", ""),
		TrapDetectDC:   getU8(root, "TrapDetectDC", 0),
		TrapDisarmDC:   getU8(root, "TrapDisarmDC", 0),
		Trap:           getU8(root, "TrapFlag", 0) != 0,
	}
}

func DismantleUTT(tr *Trigger) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(tr.TemplateResRef))
	root.Set("Tag", gff.FieldString(tr.Tag))
	root.Set("LocalizedName", gff.FieldLocString(tr.LocName))
	root.Set("ScriptOnEnter", gff.FieldString(tr.ScriptOnEnter))
	root.Set("ScriptOnExit", gff.FieldString(tr.ScriptOnExit))
	root.Set("TrapDetectDC", gff.FieldU8(tr.TrapDetectDC))
	root.Set("TrapDisarmDC", gff.FieldU8(tr.TrapDisarmDC))
	root.Set("TrapFlag", gff.FieldU8(boolToU8(tr.Trap)))
	return &gff.Tree{FileType: "UTT ", Version: "V3.2", Root: root}
}

// Sound is the UTS blueprint.
type Sound struct {
	Tag       string
	Active    bool
	Looping   bool
	Positional bool
	Volume    uint8
	Sounds    []resref.ResRef
}

func ConstructUTS(t *gff.Tree) *Sound {
	root := t.Root
	s := &Sound{
		Tag:        getStr(root, "Tag", ""),
		Active:     getU8(root, "Active", 1) != 0,
		Looping:    getU8(root, "Looping", 0) != 0,
		Positional: getU8(root, "Positional", 1) != 0,
		Volume:     getU8(root, "Volume", 127),
	}
	for _, snd := range getList(root, "Sounds") {
		s.Sounds = append(s.Sounds, getResRef(snd, "Sound", resref.ResRef{}))
	}
	return s
}

func DismantleUTS(s *Sound) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("Tag", gff.FieldString(s.Tag))
	root.Set("Active", gff.FieldU8(boolToU8(s.Active)))
	root.Set("Looping", gff.FieldU8(boolToU8(s.Looping)))
	root.Set("Positional", gff.FieldU8(boolToU8(s.Positional)))
	root.Set("Volume", gff.FieldU8(s.Volume))

	list := make(gff.List, 0, len(s.Sounds))
	for i, ref := range s.Sounds {
		st := gff.NewStruct(int32(i))
		st.Set("Sound", gff.FieldResRef(ref))
		list = append(list, st)
	}
	root.Set("Sounds", gff.FieldList(list))
	return &gff.Tree{FileType: "UTS ", Version: "V3.2", Root: root}
}

// Waypoint is the UTW blueprint.
type Waypoint struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocName        gff.LocalizedString
	HasMapNote     bool
	MapNote        gff.LocalizedString
	MapNoteEnabled bool
}

func ConstructUTW(t *gff.Tree) *Waypoint {
	root := t.Root
	return &Waypoint{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocName:        getLocString(root, "LocalizedName"),
		HasMapNote:     getU8(root, "HasMapNote", 0) != 0,
		MapNote:        getLocString(root, "MapNote"),
		MapNoteEnabled: getU8(root, "MapNoteEnabled", 0) != 0,
	}
}

func DismantleUTW(w *Waypoint) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(w.TemplateResRef))
	root.Set("Tag", gff.FieldString(w.Tag))
	root.Set("LocalizedName", gff.FieldLocString(w.LocName))
	root.Set("HasMapNote", gff.FieldU8(boolToU8(w.HasMapNote)))
	root.Set("MapNote", gff.FieldLocString(w.MapNote))
	root.Set("MapNoteEnabled", gff.FieldU8(boolToU8(w.MapNoteEnabled)))
	return &gff.Tree{FileType: "UTW ", Version: "V3.2", Root: root}
}

// Encounter is the UTE blueprint.
type Encounter struct {
	TemplateResRef resref.ResRef
	Tag            string
	LocName        gff.LocalizedString
	Active         bool
	Difficulty     int32
	MaxCreatures   int32
	RecCreatures   int32
	PlayerOnly     bool
	Reset          bool
	ResetTime      int32
}

func ConstructUTE(t *gff.Tree) *Encounter {
	root := t.Root
	return &Encounter{
		TemplateResRef: getResRef(root, "TemplateResRef", resref.ResRef{}),
		Tag:            getStr(root, "Tag", ""),
		LocName:        getLocString(root, "LocalizedName"),
		Active:         getU8(root, "Active", 1) != 0,
		Difficulty:     getI32(root, "Difficulty", 0),
		MaxCreatures:   getI32(root, "MaxCreatures", 0),
		RecCreatures:   getI32(root, "RecCreatures", 0),
		PlayerOnly:     getU8(root, "PlayerOnly", 0) != 0,
		Reset:          getU8(root, "Reset", 1) != 0,
		ResetTime:      getI32(root, "ResetTime", 0),
	}
}

func DismantleUTE(e *Encounter) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("TemplateResRef", gff.FieldResRef(e.TemplateResRef))
	root.Set("Tag", gff.FieldString(e.Tag))
	root.Set("LocalizedName", gff.FieldLocString(e.LocName))
	root.Set("Active", gff.FieldU8(boolToU8(e.Active)))
	root.Set("Difficulty", gff.FieldI32(e.Difficulty))
	root.Set("MaxCreatures", gff.FieldI32(e.MaxCreatures))
	root.Set("RecCreatures", gff.FieldI32(e.RecCreatures))
	root.Set("PlayerOnly", gff.FieldU8(boolToU8(e.PlayerOnly)))
	root.Set("Reset", gff.FieldU8(boolToU8(e.Reset)))
	root.Set("ResetTime", gff.FieldI32(e.ResetTime))
	return &gff.Tree{FileType: "UTE ", Version: "V3.2", Root: root}
}
