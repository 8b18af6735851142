package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katpally123/pxt-phoenix/pkg/config"
	"github.com/katpally123/pxt-phoenix/pkg/logging"
	"github.com/katpally123/pxt-phoenix/pkg/pipeline"
	"github.com/katpally123/pxt-phoenix/pkg/report"
)

type buildOptions struct {
	settingsPath string
	configPath   string
	targetDate   string
	outPath      string
	strict       bool
	strictSet    bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Build the headcount report from roster, attendance, VET/VTO and swap exports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.strictSet = cmd.Flags().Changed("strict")
			return runBuild(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "Department settings file, JSON or YAML (default: stock labels)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Engine config YAML; HEADCOUNT_* env vars take precedence")
	cmd.Flags().StringVar(&opts.targetDate, "date", "", "Target business date for VET/VTO and swaps")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Write result JSON here instead of stdout")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Require approved status for marketplace accepts")

	return cmd
}

func runBuild(ctx context.Context, opts buildOptions, paths []string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if opts.strictSet {
		cfg.Engine.StrictMarketplace = opts.strict
	}
	logger := logging.New(cfg.Logging, stderr)

	settings := report.DefaultSettings()
	if opts.settingsPath != "" {
		data, err := os.ReadFile(opts.settingsPath)
		if err != nil {
			return withCode(exitInput, fmt.Errorf("read settings: %w", err))
		}
		settings, err = report.LoadSettings(data, settingsFormat(opts.settingsPath))
		if err != nil {
			return withCode(exitInput, err)
		}
	}

	files, err := readInputs(ctx, paths)
	if err != nil {
		return withCode(exitInput, err)
	}

	res := pipeline.BuildAll(files, settings, opts.targetDate,
		pipeline.WithLogger(logger),
		pipeline.WithEngineConfig(cfg.Engine))

	if opts.outPath == "" {
		return withCode(exitError, writeResult(stdout, res))
	}

	f, err := os.Create(opts.outPath)
	if err != nil {
		return withCode(exitError, fmt.Errorf("create output: %w", err))
	}
	if err := writeResult(f, res); err != nil {
		f.Close()
		return withCode(exitError, err)
	}
	if err := f.Close(); err != nil {
		return withCode(exitError, fmt.Errorf("close output: %w", err))
	}
	return nil
}

func writeResult(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// readInputs reads every file concurrently and returns them in argument order.
func readInputs(ctx context.Context, paths []string) ([]pipeline.File, error) {
	files := make([]pipeline.File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			files[i] = pipeline.File{Name: filepath.Base(p), Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func settingsFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
