// Package main implements the andastra-patch command (spec.md §6): a
// TSLPatcher-style CLI over the patch engine, the installation resolver,
// and the archive/GFF/TLK/2DA codecs.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	_ "go.uber.org/automaxprocs"

	"github.com/andastra/andastra/internal/logger"
)

// Version, BuildStamp and friends are stamped at link time via
// -ldflags, exactly as the teacher's cmd/syncthing/main.go does it.
var (
	Version     = "unknown-dev"
	BuildStamp  = "0"
	BuildDate   time.Time
	BuildHost   = "unknown"
	BuildUser   = "unknown"
	LongVersion string
)

// Exit codes (spec.md §6): 0 on a clean run, 1 if the run recorded any
// error (patch.Summary.ExitCode()), 2 for malformed input discovered
// before a Run could even complete (bad flags, unparsable configuration,
// an install root that isn't one).
const (
	exitSuccess        = 0
	exitError          = 1
	exitMalformedInput = 2
)

var l = logger.DefaultLogger

func init() {
	stamp, _ := strconv.Atoi(BuildStamp)
	BuildDate = time.Unix(int64(stamp), 0)
	date := BuildDate.UTC().Format("2006-01-02 15:04:05 MST")
	LongVersion = fmt.Sprintf("andastra-patch %s (%s %s-%s) %s@%s %s", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH, BuildUser, BuildHost, date)
}

// cmdError is the error type every subcommand's Run returns when it
// wants a specific process exit code; a plain error defaults to
// exitError.
type cmdError struct {
	code int
	err  error
}

func (e *cmdError) Error() string { return e.err.Error() }
func (e *cmdError) Unwrap() error { return e.err }

func malformed(err error) error {
	if err == nil {
		return nil
	}
	return &cmdError{code: exitMalformedInput, err: err}
}

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &cmdError{code: exitError, err: err}
}

// CLI is the top-level kong command tree.
type CLI struct {
	Patch     PatchCmd     `cmd:"" help:"Apply a patch configuration to an installation."`
	Uninstall UninstallCmd `cmd:"" help:"Reverse a patch run, restoring an installation to its baseline state."`
	Extract   ExtractCmd   `cmd:"" help:"Resolve a single resource and write its bytes to a file."`

	Version kong.VersionFlag `help:"Print version and exit."`

	InstallCompletions kongplete.InstallCompletions `cmd:"" hidden:"" help:"Install shell completions."`
}

func main() {
	cli := CLI{}
	parser := kong.Must(&cli,
		kong.Name("andastra-patch"),
		kong.Description("BioWare resource-file patch engine and archive tool."),
		kong.Vars{"version": LongVersion},
		kong.UsageOnError(),
	)

	kongplete.Complete(parser,
		kongplete.WithPredictor("path", complete.PredictFiles("*")),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		l.Warningf("%v", err)
		os.Exit(exitMalformedInput)
	}

	err = ctx.Run()
	code := exitSuccess
	if err != nil {
		code = exitError
		if ce, ok := err.(*cmdError); ok {
			code = ce.code
		}
		l.Errorln(err)
	}
	os.Exit(code)
}
