package patch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/events"
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/installation"
	"github.com/andastra/andastra/internal/osutil"
	"github.com/andastra/andastra/resref"
	"github.com/andastra/andastra/tlk"
	"github.com/andastra/andastra/twoda"
)

// Summary totals one run's log levels (spec.md §4.8.7/§7: "a run always
// produces a log of notes/warnings/errors and an exit status = 0 iff no
// errors").
type Summary struct {
	Notes    int
	Warnings int
	Errors   int
}

// ExitCode maps a Summary to the patch CLI's documented exit status
// (spec.md §6): 0 on success, 1 if the run recorded any error.
func (s Summary) ExitCode() int {
	if s.Errors > 0 {
		return 1
	}
	return 0
}

// Run drives one patch-configuration application against an Installation.
// Memory tables live exactly as long as one Run (spec.md §4.8.6).
type Run struct {
	Install  *installation.Installation
	Log      *events.Logger
	Compiler Compiler
	PatchDir string

	Memory *Memory
}

// NewRun returns a Run ready to Apply a ChangeSet against inst. log may
// be nil, in which case events.Default is used.
func NewRun(inst *installation.Installation, log *events.Logger, patchDir string) *Run {
	if log == nil {
		log = events.Default
	}
	return &Run{Install: inst, Log: log, PatchDir: patchDir, Memory: NewMemory()}
}

// Apply processes every FilePatch in cs in declaration order, honoring
// the cooperative cancellation token between files (spec.md §5) and the
// failure semantics of §4.8.7. It never returns early on a per-file
// failure; ctx.Err() is the only reason to stop before the last file.
func (r *Run) Apply(ctx context.Context, cs *ChangeSet) (Summary, error) {
	var sum Summary
	r.Log.Log(events.RunStarted, "", len(cs.Files))

	for _, fp := range cs.Files {
		if err := ctx.Err(); err != nil {
			r.Log.Log(events.Warning, fp.Name, "run cancelled")
			sum.Warnings++
			break
		}
		r.Log.Log(events.FileStarted, fp.Name, nil)
		status := r.applyFile(ctx, fp)
		sum.Notes += status.notes
		sum.Warnings += status.warnings
		sum.Errors += status.errors
	}

	r.Log.Log(events.RunComplete, "", sum)
	return sum, nil
}

type fileStatus struct {
	notes, warnings, errors int
}

func (r *Run) note(s *fileStatus, file, msg string) {
	s.notes++
	r.Log.Log(events.Note, file, msg)
}

func (r *Run) warn(s *fileStatus, file, msg string) {
	s.warnings++
	r.Log.Log(events.Warning, file, msg)
}

func (r *Run) fail(s *fileStatus, file string, err error) {
	s.errors++
	r.Log.Log(events.Error, file, err.Error())
}

func (r *Run) applyFile(ctx context.Context, fp FilePatch) fileStatus {
	var st fileStatus

	if err := ctx.Err(); err != nil {
		r.warn(&st, fp.Name, "run cancelled before file started")
		return st
	}

	destDir := destinationDir(r.Install.Root(), fp)
	destPath := filepath.Join(destDir, filepath.Base(fp.Name))

	if fp.SkipIfNotReplace && !fp.Replace {
		if _, err := os.Stat(destPath); err == nil {
			r.note(&st, fp.Name, "skipped: destination exists and Replace is not set")
			r.Log.Log(events.FileSkipped, fp.Name, nil)
			return st
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fp.Name), "."))
	var err error
	switch {
	case fp.Action == ActionCompile || ext == "nss":
		err = r.applyNSS(fp, destPath)
	case ext == "2da":
		err = r.applyTwoDA(fp, destPath)
	case ext == "tlk":
		err = r.applyTLK(fp, destPath)
	case resref.ByExtension(ext).Category == resref.CategoryGFF:
		err = r.applyGFF(fp, destPath)
	default:
		err = r.applyInstall(fp, destPath)
	}

	if err != nil {
		// Every error surfacing here is file-aborting per spec.md §4.8.7
		// (token resolution failure, prerequisite parse failure, or a
		// destination write failure); the one non-fatal failure mode, NSS
		// compile failure, is handled inline in applyNSS and never
		// reaches this point as an error.
		r.fail(&st, fp.Name, err)
	}
	return st
}

func destinationDir(root string, fp FilePatch) string {
	dest := strings.ToLower(strings.TrimSpace(fp.Destination))
	if dest == "" {
		if strings.EqualFold(filepath.Ext(fp.Name), ".tlk") {
			return root
		}
		return filepath.Join(root, "Override")
	}
	switch dest {
	case "override":
		return filepath.Join(root, "Override")
	case "modules":
		return filepath.Join(root, "Modules")
	case ".", "root":
		return root
	default:
		return filepath.Join(root, fp.Destination)
	}
}

// loadBaseline returns the bytes to start editing from: the existing
// resolved game resource if one exists, else the patch's own shipped
// template (spec.md §4.8.6's "locate existing file via resolver").
func (r *Run) loadBaseline(fp FilePatch) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fp.SourceFile), "."))
	rt := resref.ByExtension(ext)
	stem := strings.TrimSuffix(filepath.Base(fp.SourceFile), filepath.Ext(fp.SourceFile))
	if ref, err := resref.New(stem); err == nil && rt.IsValid() {
		if b, err := r.Install.Resolve(ref, rt); err == nil {
			return b, nil
		}
	}
	return os.ReadFile(filepath.Join(r.PatchDir, fp.SourceFile))
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return aerrors.NewIoError(path, aerrors.WriteFailed, err)
	}
	w, err := osutil.CreateAtomic(path, 0o644)
	if err != nil {
		return aerrors.NewIoError(path, aerrors.WriteFailed, err)
	}
	if _, err := w.Write(data); err != nil {
		return aerrors.NewIoError(path, aerrors.WriteFailed, err)
	}
	if err := w.Close(); err != nil {
		return aerrors.NewIoError(path, aerrors.WriteFailed, err)
	}
	return nil
}

func (r *Run) applyTwoDA(fp FilePatch, destPath string) error {
	raw, err := r.loadBaseline(fp)
	if err != nil {
		return err
	}
	table, err := twoda.Decode(raw)
	if err != nil {
		return err
	}
	for _, op := range fp.TwoDAChangeRow {
		if err := ApplyChangeRow(fp.Name, table, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.TwoDAAddRow {
		if err := ApplyAddRow(fp.Name, table, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.TwoDAAddColumn {
		if err := ApplyAddColumn(fp.Name, table, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.TwoDACopyRow {
		if err := ApplyCopyRow(fp.Name, table, op, r.Memory); err != nil {
			return err
		}
	}
	out, err := twoda.Encode(table)
	if err != nil {
		return err
	}
	return writeAtomic(destPath, out)
}

func (r *Run) applyGFF(fp FilePatch, destPath string) error {
	raw, err := r.loadBaseline(fp)
	if err != nil {
		return err
	}
	tree, err := gff.Decode(raw)
	if err != nil {
		return err
	}
	for _, op := range fp.GFFAddField {
		if err := ApplyAddField(fp.Name, tree.Root, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.GFFModifyField {
		if err := ApplyModifyField(fp.Name, tree.Root, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.GFFAddList {
		if err := ApplyAddList(tree.Root, op); err != nil {
			return err
		}
	}
	for _, op := range fp.GFFAddStruct {
		if err := ApplyAddStruct(fp.Name, tree.Root, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.GFFDelete {
		if err := ApplyDelete(tree.Root, op); err != nil {
			return err
		}
	}
	out, err := gff.Encode(tree)
	if err != nil {
		return err
	}
	return writeAtomic(destPath, out)
}

func (r *Run) applyTLK(fp FilePatch, destPath string) error {
	raw, err := os.ReadFile(destPath)
	if err != nil {
		raw, err = r.loadBaseline(fp)
		if err != nil {
			return err
		}
	}
	table, err := tlk.Decode(raw)
	if err != nil {
		return err
	}
	for _, op := range fp.TLKAppend {
		if err := ApplyAppendTLK(fp.Name, table, op, r.Memory); err != nil {
			return err
		}
	}
	for _, op := range fp.TLKReplace {
		if err := ApplyReplaceTLK(table, op); err != nil {
			return err
		}
	}
	out, err := tlk.Encode(table)
	if err != nil {
		return err
	}
	return writeAtomic(destPath, out)
}

// applyNSS implements the warn-and-keep-source policy inline: a compile
// failure never reaches the caller as an error (spec.md §4.8.7).
func (r *Run) applyNSS(fp FilePatch, destPath string) error {
	raw, err := os.ReadFile(filepath.Join(r.PatchDir, fp.SourceFile))
	if err != nil {
		return aerrors.NewIoError(fp.SourceFile, aerrors.FileNotFound, err)
	}
	source, compiled, compileErr := ApplyNSS(fp.Name, raw, r.Compiler, r.Memory)
	if compileErr != nil {
		r.Log.Log(events.Warning, fp.Name, compileErr.Error())
		return writeAtomic(strings.TrimSuffix(destPath, filepath.Ext(destPath))+".nss", source)
	}
	if compiled == nil {
		return writeAtomic(strings.TrimSuffix(destPath, filepath.Ext(destPath))+".nss", source)
	}
	return writeAtomic(strings.TrimSuffix(destPath, filepath.Ext(destPath))+".ncs", compiled)
}

func (r *Run) applyInstall(fp FilePatch, destPath string) error {
	data, err := os.ReadFile(filepath.Join(r.PatchDir, fp.SourceFile))
	if err != nil {
		return aerrors.NewIoError(fp.SourceFile, aerrors.FileNotFound, err)
	}
	return writeAtomic(destPath, data)
}
