package patch

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/andastra/andastra/aerrors"
)

// Compiler turns NSS source text into NCS bytecode. ExternalCompiler is
// the only production implementation — there is no in-process NWScript
// compiler in this pack, matching spec.md §4.8.5's "invoke an external
// compiler contract" wording.
type Compiler interface {
	Compile(ctx context.Context, source []byte, resRefName string) ([]byte, error)
}

// ExternalCompiler shells out to a configured compiler command. Command
// is a shell-quoted template (parsed with kballard/go-shellquote, the
// same library the teacher's CLI tooling uses for quoting command lines)
// containing the literal placeholders {source} and {output}, substituted
// with temp file paths before exec.
type ExternalCompiler struct {
	Command string
}

// Compile writes source to a temp .nss file, runs Command with {source}/
// {output} substituted, and returns the compiled bytes.
func (c ExternalCompiler) Compile(ctx context.Context, source []byte, resRefName string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "andastra-nss-")
	if err != nil {
		return nil, aerrors.NewIoError(dir, aerrors.FileNotFound, err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, resRefName+".nss")
	outPath := filepath.Join(dir, resRefName+".ncs")
	if err := os.WriteFile(srcPath, source, 0o644); err != nil {
		return nil, aerrors.NewIoError(srcPath, aerrors.WriteFailed, err)
	}

	cmdLine := strings.NewReplacer("{source}", srcPath, "{output}", outPath).Replace(c.Command)
	args, err := shellquote.Split(cmdLine)
	if err != nil || len(args) == 0 {
		return nil, aerrors.NewToolError(resRefName, aerrors.CompileError, "malformed compiler command", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, aerrors.NewToolError(resRefName, aerrors.CompileError, stderr.String(), err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, aerrors.NewToolError(resRefName, aerrors.CompileError, "compiler produced no output", err)
	}
	return out, nil
}

// ApplyNSS token-substitutes source, then compiles it with c. On compile
// failure the policy is warn-and-keep-source (spec.md §4.8.5, §4.8.7): it
// returns the original (substituted) source bytes and a non-nil
// *aerrors.ToolError the caller should log as a warning, not abort on.
func ApplyNSS(file string, source []byte, c Compiler, mem *Memory) ([]byte, []byte, error) {
	subst, err := mem.Substitute(file, string(source))
	if err != nil {
		return nil, nil, err
	}
	substBytes := []byte(subst)
	if c == nil {
		return substBytes, nil, nil
	}
	compiled, err := c.Compile(context.Background(), substBytes, resRefStem(file))
	if err != nil {
		return substBytes, nil, err
	}
	return substBytes, compiled, nil
}

func resRefStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
