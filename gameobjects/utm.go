package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// MerchantItem is one entry of a UTM's ItemList.
type MerchantItem struct {
	InventoryRes resref.ResRef
	Infinite     bool
	Dropable     bool
}

// Merchant is the UTM blueprint: a store's buy/sell policy and stock.
type Merchant struct {
	ResRef       resref.ResRef
	Tag          string
	Name         gff.LocalizedString
	MarkUp       int32
	MarkDown     int32
	StoreGold    int32
	IdentifyPrice int32
	MaxBuyPrice  int32
	OnOpenStore  string
	CanBuy       bool
	CanSell      bool
	Items        []MerchantItem

	ID      int32
	Comment string
}

// ConstructUTM projects a decoded UTM GFF tree into a Merchant. Missing
// fields take the spec.md §4.7 documented engine defaults.
func ConstructUTM(t *gff.Tree) *Merchant {
	root := t.Root
	m := &Merchant{
		ResRef:        getResRef(root, "ResRef", resref.ResRef{}),
		Tag:           getStr(root, "Tag", ""),
		Name:          getLocString(root, "LocName"),
		MarkUp:        getI32(root, "MarkUp", 0),
		MarkDown:      getI32(root, "MarkDown", 0),
		StoreGold:     getI32(root, "StoreGold", -1),
		IdentifyPrice: getI32(root, "IdentifyPrice", 100),
		MaxBuyPrice:   getI32(root, "MaxBuyPrice", -1),
		OnOpenStore:   getStr(root, "OnOpenStore", ""),
		ID:            getI32(root, "ID", -1),
		Comment:       getStr(root, "Comment", ""),
	}

	flags := uint32(getU8(root, "BuySellFlag", 0))
	m.CanBuy = bitGet(flags, 0)
	m.CanSell = bitGet(flags, 1)

	for _, item := range getList(root, "ItemList") {
		m.Items = append(m.Items, MerchantItem{
			InventoryRes: getResRef(item, "InventoryRes", resref.ResRef{}),
			Infinite:     getU8(item, "Infinite", 0) != 0,
			Dropable:     getU8(item, "Dropable", 0) != 0,
		})
	}
	return m
}

// DismantleOptions controls deprecated-field emission for Dismantle*
// calls across every blueprint in this package (spec.md §4.7: "ID" and
// "Comment" are written only when requested).
type DismantleOptions struct {
	UseDeprecated bool
}

// DismantleUTM converts a Merchant back into a UTM GFF tree.
func DismantleUTM(m *Merchant, opts DismantleOptions) *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("ResRef", gff.FieldResRef(m.ResRef))
	root.Set("Tag", gff.FieldString(m.Tag))
	root.Set("LocName", gff.FieldLocString(m.Name))
	root.Set("MarkUp", gff.FieldI32(m.MarkUp))
	root.Set("MarkDown", gff.FieldI32(m.MarkDown))
	root.Set("StoreGold", gff.FieldI32(m.StoreGold))
	root.Set("IdentifyPrice", gff.FieldI32(m.IdentifyPrice))
	root.Set("MaxBuyPrice", gff.FieldI32(m.MaxBuyPrice))
	root.Set("OnOpenStore", gff.FieldString(m.OnOpenStore))

	var flags uint32
	bitSet(&flags, 0, m.CanBuy)
	bitSet(&flags, 1, m.CanSell)
	root.Set("BuySellFlag", gff.FieldU8(uint8(flags)))

	items := make(gff.List, 0, len(m.Items))
	for i, it := range m.Items {
		s := gff.NewStruct(int32(i))
		s.Set("InventoryRes", gff.FieldResRef(it.InventoryRes))
		s.Set("Infinite", gff.FieldU8(boolToU8(it.Infinite)))
		s.Set("Dropable", gff.FieldU8(boolToU8(it.Dropable)))
		items = append(items, s)
	}
	root.Set("ItemList", gff.FieldList(items))

	if opts.UseDeprecated {
		root.Set("ID", gff.FieldI32(m.ID))
		root.Set("Comment", gff.FieldString(m.Comment))
	}

	return &gff.Tree{FileType: "UTM ", Version: "V3.2", Root: root}
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
