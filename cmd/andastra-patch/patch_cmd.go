package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andastra/andastra/config"
	"github.com/andastra/andastra/events"
	"github.com/andastra/andastra/installation"
	"github.com/andastra/andastra/patch"
)

// PatchCmd applies the patch configuration found in PatchDir to an
// Installation rooted at InstallRoot (spec.md §6: "patch <install_root>
// <patch_dir>").
type PatchCmd struct {
	InstallRoot string `arg:"" help:"Path to the game installation root." type:"path" predictor:"path"`
	PatchDir    string `arg:"" help:"Directory holding the patch configuration and its source files." type:"path" predictor:"path"`

	Config string `help:"Patch configuration file name, resolved inside patch-dir." default:"changes.ini"`

	ConfigFile string `help:"Process-wide andastra.toml configuration path." default:"andastra.toml" type:"path"`

	SummaryJSON string `help:"Write a JSON run summary to this path (SPEC_FULL.md §C.6)." type:"path"`

	MetricsAddr string `help:"Expose Prometheus run counters on this address while the run executes (e.g. 127.0.0.1:9090)."`
}

// jsonSummary is the shape written by --summary-json: the same counters
// as patch.Summary plus the exit code they produced, so external
// tooling doesn't need to re-derive it.
type jsonSummary struct {
	Notes    int `json:"notes"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
	ExitCode int `json:"exitCode"`
}

func (c *PatchCmd) Run() error {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return malformed(fmt.Errorf("loading %s: %w", c.ConfigFile, err))
	}

	inst, err := installation.Open(c.InstallRoot,
		installation.WithCacheSize(cfg.ResolverCacheSize),
		installation.WithLogger(l),
	)
	if err != nil {
		return malformed(fmt.Errorf("opening installation at %s: %w", c.InstallRoot, err))
	}
	defer inst.Close()

	raw, err := os.ReadFile(filepath.Join(c.PatchDir, c.Config))
	if err != nil {
		return malformed(fmt.Errorf("reading %s: %w", c.Config, err))
	}
	doc, err := patch.ParseConfig(raw)
	if err != nil {
		return malformed(fmt.Errorf("parsing %s: %w", c.Config, err))
	}
	cs, err := patch.BuildChangeSet(doc)
	if err != nil {
		return malformed(fmt.Errorf("building change set from %s: %w", c.Config, err))
	}

	run := patch.NewRun(inst, events.Default, c.PatchDir)
	if cfg.NSSCompilerCommand != "" {
		run.Compiler = patch.ExternalCompiler{Command: cfg.NSSCompilerCommand}
	}

	stopMetrics := c.serveMetrics()
	defer stopMetrics()

	sum, err := run.Apply(context.Background(), cs)
	if err != nil {
		return failed(err)
	}

	l.Notef("patch run complete: %d notes, %d warnings, %d errors", sum.Notes, sum.Warnings, sum.Errors)

	if c.SummaryJSON != "" {
		if err := writeSummaryJSON(c.SummaryJSON, sum); err != nil {
			return failed(err)
		}
	}

	if sum.ExitCode() != 0 {
		return failed(fmt.Errorf("run recorded %d error(s)", sum.Errors))
	}
	return nil
}

func writeSummaryJSON(path string, sum patch.Summary) error {
	js := jsonSummary{Notes: sum.Notes, Warnings: sum.Warnings, Errors: sum.Errors, ExitCode: sum.ExitCode()}
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// serveMetrics starts the optional debug HTTP endpoint named in
// SPEC_FULL.md's domain-stack table (httprouter + client_golang,
// mirroring the teacher's own debug/metrics surfaces, e.g.
// cmd/strelaypoolsrv/stats.go's makeGauge helpers). It runs only for the
// lifetime of one Apply call; the returned func stops it.
func (c *PatchCmd) serveMetrics() func() {
	if c.MetricsAddr == "" {
		return func() {}
	}

	notes := prometheus.NewGauge(prometheus.GaugeOpts{Name: "andastra_patch_notes", Help: "Notes recorded so far in the current run."})
	warnings := prometheus.NewGauge(prometheus.GaugeOpts{Name: "andastra_patch_warnings", Help: "Warnings recorded so far in the current run."})
	errs := prometheus.NewGauge(prometheus.GaugeOpts{Name: "andastra_patch_errors", Help: "Errors recorded so far in the current run."})
	filesProcessed := prometheus.NewGauge(prometheus.GaugeOpts{Name: "andastra_patch_files_processed", Help: "Files processed so far in the current run."})
	reg := prometheus.NewRegistry()
	reg.MustRegister(notes, warnings, errs, filesProcessed)

	sub := events.Default.Subscribe(events.Note | events.Warning | events.Error | events.FileStarted)

	router := httprouter.New()
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: c.MetricsAddr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Warningf("metrics server: %v", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			ev, err := sub.Poll(200 * time.Millisecond)
			if err == events.ErrClosed {
				return
			}
			if err != nil {
				continue
			}
			switch ev.Kind {
			case events.Note:
				notes.Inc()
			case events.Warning:
				warnings.Inc()
			case events.Error:
				errs.Inc()
			case events.FileStarted:
				filesProcessed.Inc()
			}
		}
	}()

	return func() {
		close(done)
		events.Default.Unsubscribe(sub)
		_ = srv.Close()
	}
}
