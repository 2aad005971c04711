package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	fsAdapter "github.com/sensorlab/shuntscope/internal/adapters/fs"
	pdfAdapter "github.com/sensorlab/shuntscope/internal/adapters/report"
	"github.com/sensorlab/shuntscope/internal/adapters/static"
	"github.com/sensorlab/shuntscope/internal/cliconfig"
	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/report"
	"github.com/sensorlab/shuntscope/pkg/log"
	"github.com/sensorlab/shuntscope/pkg/shuntscope"
	"github.com/sensorlab/shuntscope/plugins/configwatcher"
)

const helpDescription = `
Diagnose shunt-resistor current-sensing channels: compare device readings
against reference meters, classify calibration anomalies (decade scale
errors, unit conversion errors, polarity mistakes), fit shunt resistance
from calibration sweeps, and recommend acquisition ranges.

Channels, captured traces, and reference currents come from the TOML config
file; see the channels section of the sample config. Scalar settings can
also be given via flags or SHUNTSCOPE_* environment variables (flags win
over environment, environment wins over file).
`

var exampleUsage = strings.TrimSpace(`
  shuntscope --config ./bench.toml
  shuntscope --config ./bench.toml --tolerance 0.05 --out diag.txt
  shuntscope --config ./bench.toml --watch --pdf diag.pdf
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zlog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "shuntscope",
		Short:   "Calibration and range diagnostics for shunt-based current sensing",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides file config but not explicit flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zlog.Info().Interface("config", cfg).Msg("configuration")

			channels, err := cfg.DomainChannels()
			if err != nil {
				return err
			}

			opts := []shuntscope.Option{
				shuntscope.WithLogger(log.NewZerologAdapterWithLogger(zlog)),
				shuntscope.WithSampleSource(buildSource(cfg)),
				shuntscope.WithReferenceProvider(buildReference(cfg)),
				shuntscope.WithRangeCatalog(static.DefaultCatalog()),
				shuntscope.WithReportSink(stdoutSink{}),
			}
			if cfg.OutPath != "" {
				opts = append(opts, shuntscope.WithReportSink(fsAdapter.NewReportFileSink(cfg.OutPath)))
			}
			if cfg.PDFPath != "" {
				opts = append(opts, shuntscope.WithReportSink(pdfAdapter.NewPDFSink(cfg.PDFPath)))
			}
			if cfg.Watch {
				opts = append(opts, configwatcher.WithDefaultConfigWatcher())
			}

			s, err := shuntscope.New(shuntscope.Config{
				DeviceID:       cfg.DeviceID,
				SampleCount:    cfg.SampleCount,
				SampleRateHz:   cfg.SampleRateHz,
				AcquireTimeout: cfg.AcquireTimeout,
				Tolerance:      cfg.Tolerance,
				MarginRatio:    cfg.MarginRatio,
				Workers:        cfg.Workers,
				Channels:       channels,
				ConfigPath:     cfgFile,
				KeepAlive:      cfg.Watch,
			}, opts...)
			if err != nil {
				return fmt.Errorf("create shuntscope: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := s.Start(ctx); err != nil {
				return fmt.Errorf("start shuntscope: %w", err)
			}

			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := s.Status()
						if status == shuntscope.StateStopped || status == shuntscope.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				zlog.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if s.Status() == shuntscope.StateCrashed {
					zlog.Error().Msg("shuntscope crashed")
				}
			}

			if err := s.Stop(); err != nil {
				return fmt.Errorf("stop shuntscope: %w", err)
			}

			if rep, ok := s.LastReport(); ok {
				if failed := failedChannels(rep); failed > 0 {
					zlog.Warn().Int("channels", failed).Msg("channels with failures")
				}
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.shuntscope/config.toml)")
	root.Flags().StringVar(&cfg.DeviceID, "device-id", cfg.DeviceID, "device identifier for the range catalog and report")

	root.Flags().IntVar(&cfg.SampleCount, "sample-count", cfg.SampleCount, "samples per acquisition")
	root.Flags().Float64Var(&cfg.SampleRateHz, "sample-rate", cfg.SampleRateHz, "acquisition sample rate in Hz")
	root.Flags().DurationVar(&cfg.AcquireTimeout, "timeout", cfg.AcquireTimeout, "per-channel acquisition timeout")

	root.Flags().Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "relative tolerance for anomaly classification bands")
	root.Flags().Float64Var(&cfg.MarginRatio, "margin", cfg.MarginRatio, "safety margin for range recommendations")
	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent channel analyses (0 = NumCPU)")

	root.Flags().StringVar(&cfg.OutPath, "out", cfg.OutPath, "write the text report to this file")
	root.Flags().StringVar(&cfg.PDFPath, "pdf", cfg.PDFPath, "write a PDF report to this file")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and re-run when the config file changes")

	if err := root.Execute(); err != nil {
		zlog.Error().Err(err).Msg("shuntscope")
		os.Exit(1)
	}
}

// buildSource builds the replay source from configured channel traces.
func buildSource(cfg cliconfig.Config) *static.Source {
	traces := make(map[string]static.ChannelTrace, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		trace := static.ChannelTrace{Samples: ch.Samples}
		for _, m := range ch.Modes {
			if mode, err := domain.ParseTerminalMode(m); err == nil {
				trace.Modes = append(trace.Modes, mode)
			}
		}
		traces[ch.ID] = trace
	}
	return static.NewSource(traces)
}

// buildReference builds the reference provider from configured currents and sweeps.
func buildReference(cfg cliconfig.Config) *static.Reference {
	currents := map[string]float64{}
	sweeps := map[string][]domain.SweepPoint{}
	for _, ch := range cfg.Channels {
		if ch.ReferenceMilliamps != nil {
			currents[ch.ID] = *ch.ReferenceMilliamps
		}
		for _, p := range ch.Sweep {
			sweeps[ch.ID] = append(sweeps[ch.ID], domain.SweepPoint{
				ReferenceMilliamps: p.ReferenceMilliamps,
				MeasuredVolt:       p.MeasuredVolt,
			})
		}
	}
	return static.NewReference(currents, sweeps)
}

// failedChannels counts report rows that carry a failure.
func failedChannels(rep shuntscope.Report) int {
	n := 0
	for _, row := range rep.Rows {
		if row.Failure != "" {
			n++
		}
	}
	return n
}

// stdoutSink renders each report as text on standard output.
type stdoutSink struct{}

func (stdoutSink) Write(ctx context.Context, rep report.Report) error {
	return report.RenderText(os.Stdout, rep)
}
