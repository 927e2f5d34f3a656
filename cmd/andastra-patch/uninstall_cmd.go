package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andastra/andastra/installation"
	"github.com/andastra/andastra/tlk"
)

// aspyrButtonNames is the Aspyr mobile-port controller-button overlay
// allowlist: these Override files are shipped by the Android/iOS/Switch
// ports themselves, not by any mod, and uninstalling a patch must never
// strip them back out from under the platform (spec.md §8).
var aspyrButtonNames = func() map[string]bool {
	names := map[string]bool{}
	for _, btn := range []string{"a", "b", "x", "y"} {
		names["cus_button_"+btn] = true
		names["cus_button_"+btn+"ps"] = true
	}
	return names
}()

var aspyrButtonExtensions = map[string]bool{
	".tpc": true, ".txi": true, ".tga": true, ".dds": true,
}

// UninstallCmd reverses a patch run (spec.md §6: "uninstall
// <install_root>"). There is no persisted manifest of which files a
// prior patch run added, so the policy is: clear Override/ of everything
// except the Aspyr controller-button overlay, and truncate dialog.tlk
// back to the game's baseline entry count.
type UninstallCmd struct {
	InstallRoot string `arg:"" help:"Path to the game installation root." type:"path" predictor:"path"`
}

func (c *UninstallCmd) Run() error {
	inst, err := installation.Open(c.InstallRoot, installation.WithLogger(l))
	if err != nil {
		return malformed(fmt.Errorf("opening installation at %s: %w", c.InstallRoot, err))
	}
	defer inst.Close()

	removed, err := clearOverride(inst.Root())
	if err != nil {
		return failed(err)
	}

	if err := truncateTLK(inst); err != nil {
		return failed(err)
	}

	l.Notef("uninstall complete: removed %d override file(s), dialog.tlk truncated to baseline", removed)
	return nil
}

// clearOverride deletes every file under Override/, including files in
// its subdirectories, whose base name isn't on the Aspyr allowlist; the
// directories themselves are left in place
// (spec.md §8's "Override subfolders are plain namespaces").
func clearOverride(root string) (int, error) {
	dir := filepath.Join(root, "Override")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	removed := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if isAspyrButtonAsset(info.Name()) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

func isAspyrButtonAsset(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if !aspyrButtonExtensions[ext] {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return aspyrButtonNames[stem]
}

// truncateTLK drops every strref appended beyond the game's shipped
// baseline (tlk.BaselineK1/BaselineK2), reversing every #StrRef#-style
// append a patch run performed (spec.md §8).
func truncateTLK(inst *installation.Installation) error {
	path := filepath.Join(inst.Root(), "dialog.tlk")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	table, err := tlk.Decode(raw)
	if err != nil {
		return err
	}

	baseline := tlk.BaselineK1
	if inst.GameKind() == installation.GameKOTOR2 {
		baseline = tlk.BaselineK2
	}
	table.Truncate(baseline)

	out, err := tlk.Encode(table)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
