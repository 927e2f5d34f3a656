package patch

import "testing"

func TestBuildChangeSetTwoDASection(t *testing.T) {
	ini := `
[appearance.2da]
ChangeRow0=RowLabel:sword|cost=150
AddRow0=NewLabel=bow|name=Bow
`
	doc, err := ParseConfig([]byte(ini))
	if err != nil {
		t.Fatal(err)
	}
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs.Files) != 1 {
		t.Fatalf("files = %d", len(cs.Files))
	}
	fp := cs.Files[0]
	if fp.Name != "appearance.2da" || fp.SourceFile != "appearance.2da" {
		t.Fatalf("fp = %+v", fp)
	}
	if len(fp.TwoDAChangeRow) != 1 || len(fp.TwoDAAddRow) != 1 {
		t.Fatalf("ops = %+v", fp)
	}
}

func TestBuildChangeSetOverridesAndFlags(t *testing.T) {
	ini := `
[p_bastila.utc]
!SourceFile=p_bastila_template.utc
!Destination=override
Replace=1
SkipIfNotReplace=1
AddField0=path=Plot|type=U8|value=1
`
	doc, err := ParseConfig([]byte(ini))
	if err != nil {
		t.Fatal(err)
	}
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}
	fp := cs.Files[0]
	if fp.SourceFile != "p_bastila_template.utc" {
		t.Fatalf("SourceFile = %q", fp.SourceFile)
	}
	if !fp.Replace || !fp.SkipIfNotReplace {
		t.Fatalf("Replace/SkipIfNotReplace = %v/%v", fp.Replace, fp.SkipIfNotReplace)
	}
	if len(fp.GFFAddField) != 1 {
		t.Fatalf("GFFAddField = %+v", fp.GFFAddField)
	}
}

func TestBuildChangeSetNSSActionInferredFromExtension(t *testing.T) {
	ini := `
[k_test.nss]
`
	doc, _ := ParseConfig([]byte(ini))
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cs.Files[0].Action != ActionCompile {
		t.Fatalf("Action = %v, want ActionCompile", cs.Files[0].Action)
	}
}

func TestBuildChangeSetExplicitAction(t *testing.T) {
	ini := `
[readme.txt]
Action=Install
`
	doc, _ := ParseConfig([]byte(ini))
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cs.Files[0].Action != ActionInstall {
		t.Fatalf("Action = %v, want ActionInstall", cs.Files[0].Action)
	}
}

func TestBuildChangeSetTLKAndMultipleSections(t *testing.T) {
	ini := `
[dialog.tlk]
AppendTLK0=text=New line|StrRef0=0

[p_test.utc]
ModifyField0=path=Cost|value=250
`
	doc, _ := ParseConfig([]byte(ini))
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs.Files) != 2 {
		t.Fatalf("files = %d", len(cs.Files))
	}
	if len(cs.Files[0].TLKAppend) != 1 {
		t.Fatalf("TLKAppend = %+v", cs.Files[0].TLKAppend)
	}
	if len(cs.Files[1].GFFModifyField) != 1 {
		t.Fatalf("GFFModifyField = %+v", cs.Files[1].GFFModifyField)
	}
}

func TestStripIndex(t *testing.T) {
	cases := []struct {
		key      string
		wantBase string
		wantOK   bool
	}{
		{"ChangeRow0", "ChangeRow", true},
		{"ChangeRow12", "ChangeRow", true},
		{"Replace", "", false},
		{"AddRow", "", false},
	}
	for _, c := range cases {
		base, ok := stripIndex(c.key)
		if base != c.wantBase || ok != c.wantOK {
			t.Fatalf("stripIndex(%q) = %q, %v; want %q, %v", c.key, base, ok, c.wantBase, c.wantOK)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	for _, s := range []string{"1", "true", "True", "yes", "YES"} {
		if !isTruthy(s) {
			t.Fatalf("isTruthy(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "false", "no", ""} {
		if isTruthy(s) {
			t.Fatalf("isTruthy(%q) = true, want false", s)
		}
	}
}
