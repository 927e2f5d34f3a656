package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// DialogEntry is one node of a DLG's EntryList/ReplyList.
type DialogEntry struct {
	Speaker string
	Text    gff.LocalizedString
	Script  string
	Sound   resref.ResRef
}

// Dialog is the DLG blueprint: a conversation tree.
type Dialog struct {
	Entries []DialogEntry
	Replies []DialogEntry
	EndConverAbort string
	EndConversation string
}

func ConstructDLG(t *gff.Tree) *Dialog {
	root := t.Root
	d := &Dialog{
		EndConverAbort:  getStr(root, "EndConverAbort", ""),
		EndConversation: getStr(root, "EndConversation", ""),
	}
	for _, e := range getList(root, "EntryList") {
		d.Entries = append(d.Entries, DialogEntry{
			Speaker: getStr(e, "Speaker", ""),
			Text:    getLocString(e, "Text"),
			Script:  getStr(e, "Script", ""),
			Sound:   getResRef(e, "Sound", resref.ResRef{}),
		})
	}
	for _, r := range getList(root, "ReplyList") {
		d.Replies = append(d.Replies, DialogEntry{
			Text:   getLocString(r, "Text"),
			Script: getStr(r, "Script", ""),
			Sound:  getResRef(r, "Sound", resref.ResRef{}),
		})
	}
	return d
}

func DismantleDLG(d *Dialog) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("EndConverAbort", gff.FieldString(d.EndConverAbort))
	root.Set("EndConversation", gff.FieldString(d.EndConversation))

	entries := make(gff.List, 0, len(d.Entries))
	for i, e := range d.Entries {
		s := gff.NewStruct(int32(i))
		s.Set("Speaker", gff.FieldString(e.Speaker))
		s.Set("Text", gff.FieldLocString(e.Text))
		s.Set("Script", gff.FieldString(e.Script))
		s.Set("Sound", gff.FieldResRef(e.Sound))
		entries = append(entries, s)
	}
	root.Set("EntryList", gff.FieldList(entries))

	replies := make(gff.List, 0, len(d.Replies))
	for i, r := range d.Replies {
		s := gff.NewStruct(int32(i))
		s.Set("Text", gff.FieldLocString(r.Text))
		s.Set("Script", gff.FieldString(r.Script))
		s.Set("Sound", gff.FieldResRef(r.Sound))
		replies = append(replies, s)
	}
	root.Set("ReplyList", gff.FieldList(replies))

	return &gff.Tree{FileType: "DLG ", Version: "V3.2", Root: root}
}

// JournalEntry is one quest-state entry of a JRL category.
type JournalEntry struct {
	ID   int32
	Text gff.LocalizedString
	End  bool
}

// JournalCategory groups a quest's entries under one plot.
type JournalCategory struct {
	Tag     string
	Name    gff.LocalizedString
	Entries []JournalEntry
}

// Journal is the JRL blueprint.
type Journal struct {
	Categories []JournalCategory
}

func ConstructJRL(t *gff.Tree) *Journal {
	root := t.Root
	j := &Journal{}
	for _, cat := range getList(root, "Categories") {
		jc := JournalCategory{
			Tag:  getStr(cat, "Tag", ""),
			Name: getLocString(cat, "Name"),
		}
		for _, e := range getList(cat, "EntryList") {
			jc.Entries = append(jc.Entries, JournalEntry{
				ID:   getI32(e, "ID", 0),
				Text: getLocString(e, "Text"),
				End:  getU8(e, "End", 0) != 0,
			})
		}
		j.Categories = append(j.Categories, jc)
	}
	return j
}

func DismantleJRL(j *Journal) *gff.Tree {
	root := gff.NewStruct(-1)
	cats := make(gff.List, 0, len(j.Categories))
	for i, jc := range j.Categories {
		cs := gff.NewStruct(int32(i))
		cs.Set("Tag", gff.FieldString(jc.Tag))
		cs.Set("Name", gff.FieldLocString(jc.Name))
		entries := make(gff.List, 0, len(jc.Entries))
		for k, e := range jc.Entries {
			es := gff.NewStruct(int32(k))
			es.Set("ID", gff.FieldI32(e.ID))
			es.Set("Text", gff.FieldLocString(e.Text))
			es.Set("End", gff.FieldU8(boolToU8(e.End)))
			entries = append(entries, es)
		}
		cs.Set("EntryList", gff.FieldList(entries))
		cats = append(cats, cs)
	}
	root.Set("Categories", gff.FieldList(cats))
	return &gff.Tree{FileType: "JRL ", Version: "V3.2", Root: root}
}

// PathNode is one point of a PTH blueprint's walk-mesh waypoint graph.
type PathNode struct {
	X, Y  float32
	Conns []int32
}

type Path struct {
	Nodes []PathNode
}

func ConstructPTH(t *gff.Tree) *Path {
	root := t.Root
	p := &Path{}
	pointList := getList(root, "Path_Points")
	for _, pt := range pointList {
		n := PathNode{
			X: getF32(pt, "X", 0),
			Y: getF32(pt, "Y", 0),
		}
		for _, c := range getList(pt, "Conections") {
			n.Conns = append(n.Conns, getI32(c, "Index", -1))
		}
		p.Nodes = append(p.Nodes, n)
	}
	return p
}

func DismantlePTH(p *Path) *gff.Tree {
	root := gff.NewStruct(-1)
	points := make(gff.List, 0, len(p.Nodes))
	for i, n := range p.Nodes {
		s := gff.NewStruct(int32(i))
		s.Set("X", gff.FieldF32(n.X))
		s.Set("Y", gff.FieldF32(n.Y))
		conns := make(gff.List, 0, len(n.Conns))
		for k, c := range n.Conns {
			cs := gff.NewStruct(int32(k))
			cs.Set("Index", gff.FieldI32(c))
			conns = append(conns, cs)
		}
		s.Set("Conections", gff.FieldList(conns))
		points = append(points, s)
	}
	root.Set("Path_Points", gff.FieldList(points))
	return &gff.Tree{FileType: "PTH ", Version: "V3.2", Root: root}
}

// Area is the ARE blueprint: static area properties (as distinct from
// GIT's dynamic instance placement).
type Area struct {
	Tag          string
	Name         gff.LocalizedString
	NoRest       bool
	CameraStyle  int32
	Unescapable  bool
	DisableTransit bool
}

func ConstructARE(t *gff.Tree) *Area {
	root := t.Root
	return &Area{
		Tag:            getStr(root, "Tag", ""),
		Name:           getLocString(root, "Name"),
		NoRest:         getU8(root, "NoRest", 0) != 0,
		CameraStyle:    getI32(root, "CameraStyle", 0),
		Unescapable:    getU8(root, "Unescapable", 0) != 0,
		DisableTransit: getU8(root, "DisableTransit", 0) != 0,
	}
}

func DismantleARE(a *Area) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("Tag", gff.FieldString(a.Tag))
	root.Set("Name", gff.FieldLocString(a.Name))
	root.Set("NoRest", gff.FieldU8(boolToU8(a.NoRest)))
	root.Set("CameraStyle", gff.FieldI32(a.CameraStyle))
	root.Set("Unescapable", gff.FieldU8(boolToU8(a.Unescapable)))
	root.Set("DisableTransit", gff.FieldU8(boolToU8(a.DisableTransit)))
	return &gff.Tree{FileType: "ARE ", Version: "V3.2", Root: root}
}

// GITInstance is one placed object reference in a GIT's per-category list.
type GITInstance struct {
	TemplateResRef resref.ResRef
	X, Y, Z        float32
}

// Git is the GIT blueprint: an area's dynamic instance layout.
type Git struct {
	Creatures  []GITInstance
	Placeables []GITInstance
	Doors      []GITInstance
	Triggers   []GITInstance
	Waypoints  []GITInstance
	Sounds     []GITInstance
	Encounters []GITInstance
}

func constructGITList(root *gff.Struct, label string) []GITInstance {
	var out []GITInstance
	for _, s := range getList(root, label) {
		out = append(out, GITInstance{
			TemplateResRef: getResRef(s, "TemplateResRef", resref.ResRef{}),
			X:              getF32(s, "XPosition", 0),
			Y:              getF32(s, "YPosition", 0),
			Z:              getF32(s, "ZPosition", 0),
		})
	}
	return out
}

func dismantleGITList(items []GITInstance) gff.List {
	list := make(gff.List, 0, len(items))
	for i, it := range items {
		s := gff.NewStruct(int32(i))
		s.Set("TemplateResRef", gff.FieldResRef(it.TemplateResRef))
		s.Set("XPosition", gff.FieldF32(it.X))
		s.Set("YPosition", gff.FieldF32(it.Y))
		s.Set("ZPosition", gff.FieldF32(it.Z))
		list = append(list, s)
	}
	return list
}

func ConstructGIT(t *gff.Tree) *Git {
	root := t.Root
	return &Git{
		Creatures:  constructGITList(root, "Creature List"),
		Placeables: constructGITList(root, "Placeable List"),
		Doors:      constructGITList(root, "Door List"),
		Triggers:   constructGITList(root, "TriggerList"),
		Waypoints:  constructGITList(root, "WaypointList"),
		Sounds:     constructGITList(root, "SoundList"),
		Encounters: constructGITList(root, "Encounter List"),
	}
}

func DismantleGIT(g *Git) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("Creature List", gff.FieldList(dismantleGITList(g.Creatures)))
	root.Set("Placeable List", gff.FieldList(dismantleGITList(g.Placeables)))
	root.Set("Door List", gff.FieldList(dismantleGITList(g.Doors)))
	root.Set("TriggerList", gff.FieldList(dismantleGITList(g.Triggers)))
	root.Set("WaypointList", gff.FieldList(dismantleGITList(g.Waypoints)))
	root.Set("SoundList", gff.FieldList(dismantleGITList(g.Sounds)))
	root.Set("Encounter List", gff.FieldList(dismantleGITList(g.Encounters)))
	return &gff.Tree{FileType: "GIT ", Version: "V3.2", Root: root}
}

// ModuleInfo is the IFO blueprint: a module's top-level metadata.
type ModuleInfo struct {
	Tag          string
	Name         gff.LocalizedString
	EntryArea    resref.ResRef
	OnModLoad    string
	OnModStart   string
	OnHeartbeat  string
	DawnHour     uint8
	DuskHour     uint8
}

func ConstructIFO(t *gff.Tree) *ModuleInfo {
	root := t.Root
	return &ModuleInfo{
		Tag:         getStr(root, "Mod_Tag", ""),
		Name:        getLocString(root, "Mod_Name"),
		EntryArea:   getResRef(root, "Mod_Entry_Area", resref.ResRef{}),
		OnModLoad:   getStr(root, "Mod_OnModLoad", ""),
		OnModStart:  getStr(root, "Mod_OnModStart", ""),
		OnHeartbeat: getStr(root, "Mod_OnHeartbeat", ""),
		DawnHour:    getU8(root, "Mod_DawnHour", 6),
		DuskHour:    getU8(root, "Mod_DuskHour", 18),
	}
}

func DismantleIFO(m *ModuleInfo) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("Mod_Tag", gff.FieldString(m.Tag))
	root.Set("Mod_Name", gff.FieldLocString(m.Name))
	root.Set("Mod_Entry_Area", gff.FieldResRef(m.EntryArea))
	root.Set("Mod_OnModLoad", gff.FieldString(m.OnModLoad))
	root.Set("Mod_OnModStart", gff.FieldString(m.OnModStart))
	root.Set("Mod_OnHeartbeat", gff.FieldString(m.OnHeartbeat))
	root.Set("Mod_DawnHour", gff.FieldU8(m.DawnHour))
	root.Set("Mod_DuskHour", gff.FieldU8(m.DuskHour))
	return &gff.Tree{FileType: "IFO ", Version: "V3.2", Root: root}
}

// FactionRep is one entry of a FAC's RepList reputation table.
type FactionRep struct {
	FactionID1 int32
	FactionID2 int32
	Rep        uint8
}

// Faction is the FAC blueprint: faction names and pairwise reputation.
type Faction struct {
	Names []string
	Reps  []FactionRep
}

func ConstructFAC(t *gff.Tree) *Faction {
	root := t.Root
	f := &Faction{}
	for _, s := range getList(root, "FactionList") {
		f.Names = append(f.Names, getStr(s, "FactionName", ""))
	}
	for _, s := range getList(root, "RepList") {
		f.Reps = append(f.Reps, FactionRep{
			FactionID1: getI32(s, "FactionID1", 0),
			FactionID2: getI32(s, "FactionID2", 0),
			Rep:        getU8(s, "FactionRep", 0),
		})
	}
	return f
}

func DismantleFAC(f *Faction) *gff.Tree {
	root := gff.NewStruct(-1)
	names := make(gff.List, 0, len(f.Names))
	for i, n := range f.Names {
		s := gff.NewStruct(int32(i))
		s.Set("FactionName", gff.FieldString(n))
		names = append(names, s)
	}
	root.Set("FactionList", gff.FieldList(names))

	reps := make(gff.List, 0, len(f.Reps))
	for i, r := range f.Reps {
		s := gff.NewStruct(int32(i))
		s.Set("FactionID1", gff.FieldI32(r.FactionID1))
		s.Set("FactionID2", gff.FieldI32(r.FactionID2))
		s.Set("FactionRep", gff.FieldU8(r.Rep))
		reps = append(reps, s)
	}
	root.Set("RepList", gff.FieldList(reps))
	return &gff.Tree{FileType: "FAC ", Version: "V3.2", Root: root}
}
