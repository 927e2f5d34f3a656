package patch

import (
	"strings"
)

// Action is the top-level disposition of a FilePatch (spec.md: "source
// name, destination, action (Compile/Modify/Install)").
type Action int

const (
	ActionModify Action = iota
	ActionCompile
	ActionInstall
)

// FilePatch is one section of a patch configuration, resolved into typed
// operations ready to apply (spec.md §4.8, "Patch change set" in §OVERVIEW).
type FilePatch struct {
	Name             string // section name / target file name
	SourceFile       string // !SourceFile override, defaults to Name
	Destination      string // !Destination override; empty means Override/ (the game root for .tlk)
	Action           Action
	Replace          bool
	SkipIfNotReplace bool

	TwoDAChangeRow  []ChangeRow
	TwoDAAddRow     []AddRow
	TwoDAAddColumn  []AddColumn
	TwoDACopyRow    []CopyRow

	GFFAddField    []AddField
	GFFModifyField []ModifyField
	GFFAddList     []AddList
	GFFAddStruct   []AddStruct
	GFFDelete      []Delete

	TLKAppend  []AppendTLK
	TLKReplace []ReplaceTLK
}

// ChangeSet is an ordered collection of FilePatch, the unit a patch run
// processes (spec.md's "Patch change set").
type ChangeSet struct {
	Files []FilePatch
}

// BuildChangeSet resolves a parsed Document into a ChangeSet, dispatching
// each section's keys by their well-known prefix into typed operations in
// declaration order.
func BuildChangeSet(doc *Document) (*ChangeSet, error) {
	cs := &ChangeSet{}
	for _, sec := range doc.Sections {
		fp := FilePatch{
			Name:        sec.Name,
			SourceFile:  sec.Name,
			Destination: "", // run.go picks a type-appropriate default when empty
			Action:      ActionModify,
		}
		if v, ok := sec.Get("!SourceFile"); ok {
			fp.SourceFile = v
		}
		if v, ok := sec.Get("!Destination"); ok {
			fp.Destination = v
		}
		if v, ok := sec.Get("Replace"); ok {
			fp.Replace = isTruthy(v)
		}
		if v, ok := sec.Get("SkipIfNotReplace"); ok {
			fp.SkipIfNotReplace = isTruthy(v)
		}
		if v, ok := sec.Get("Action"); ok {
			switch strings.ToLower(v) {
			case "compile":
				fp.Action = ActionCompile
			case "install":
				fp.Action = ActionInstall
			default:
				fp.Action = ActionModify
			}
		} else if strings.HasSuffix(strings.ToLower(sec.Name), ".nss") {
			fp.Action = ActionCompile
		}

		for _, kv := range sec.Keys {
			base, ok := stripIndex(kv.Key)
			if !ok {
				continue
			}
			var err error
			switch strings.ToLower(base) {
			case "changerow":
				var op ChangeRow
				if op, err = ParseChangeRow(kv.Value); err == nil {
					fp.TwoDAChangeRow = append(fp.TwoDAChangeRow, op)
				}
			case "addrow":
				var op AddRow
				if op, err = ParseAddRow(kv.Value); err == nil {
					fp.TwoDAAddRow = append(fp.TwoDAAddRow, op)
				}
			case "addcolumn":
				var op AddColumn
				if op, err = ParseAddColumn(kv.Value); err == nil {
					fp.TwoDAAddColumn = append(fp.TwoDAAddColumn, op)
				}
			case "copyrow":
				var op CopyRow
				if op, err = ParseCopyRow(kv.Value); err == nil {
					fp.TwoDACopyRow = append(fp.TwoDACopyRow, op)
				}
			case "addfield":
				var op AddField
				if op, err = ParseAddField(kv.Value); err == nil {
					fp.GFFAddField = append(fp.GFFAddField, op)
				}
			case "modifyfield":
				var op ModifyField
				if op, err = ParseModifyField(kv.Value); err == nil {
					fp.GFFModifyField = append(fp.GFFModifyField, op)
				}
			case "addlist":
				var op AddList
				if op, err = ParseAddList(kv.Value); err == nil {
					fp.GFFAddList = append(fp.GFFAddList, op)
				}
			case "addstruct":
				var op AddStruct
				if op, err = ParseAddStruct(kv.Value); err == nil {
					fp.GFFAddStruct = append(fp.GFFAddStruct, op)
				}
			case "delete":
				var op Delete
				if op, err = ParseDelete(kv.Value); err == nil {
					fp.GFFDelete = append(fp.GFFDelete, op)
				}
			case "appendtlk":
				var op AppendTLK
				if op, err = ParseAppendTLK(kv.Value); err == nil {
					fp.TLKAppend = append(fp.TLKAppend, op)
				}
			case "replacetlk":
				var op ReplaceTLK
				if op, err = ParseReplaceTLK(kv.Value); err == nil {
					fp.TLKReplace = append(fp.TLKReplace, op)
				}
			default:
				continue
			}
			if err != nil {
				return nil, err
			}
		}
		cs.Files = append(cs.Files, fp)
	}
	return cs, nil
}

// stripIndex splits a directive key like "ChangeRow3" into ("ChangeRow",
// true); keys with no trailing digits (well-known options) return false.
func stripIndex(key string) (string, bool) {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == len(key) {
		return "", false
	}
	base := key[:i]
	if base == "" {
		return "", false
	}
	return base, true
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
