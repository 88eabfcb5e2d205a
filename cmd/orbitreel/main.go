package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitreel/internal/analysis"
	"github.com/san-kum/orbitreel/internal/config"
	"github.com/san-kum/orbitreel/internal/encode"
	"github.com/san-kum/orbitreel/internal/logging"
	"github.com/san-kum/orbitreel/internal/pipeline"
	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
	"github.com/san-kum/orbitreel/internal/viz"
)

const defaultConfigPath = "orbitreel.yaml"

var (
	// Persistent
	configFile string
	preset     string
	logFile    string
	colorMode  string
	verbose    bool
	// Timeline
	duration   float64
	intervalMs int
	playback   string
	timeStep   float64
	// Render and encode
	size     int
	snapshot string
	ffmpeg   string
	crf      int
	// Preview
	theme string
	cols  int
	rows  int
	// init-config
	force bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fatal(err)
	}
}

// fatal reports err through an unfiled logger and exits with status 1.
func fatal(err error) {
	mode, perr := logging.ParseColorMode(colorMode)
	if perr != nil {
		mode = logging.ColorAuto
	}
	log, lerr := logging.New(logging.Options{Color: mode})
	if lerr != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	log.Error("%v", err)
	os.Exit(1)
}

// newRootCmd builds the command tree. With no subcommand the root renders
// data.csv to lines.mp4.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orbitreel",
		Short:         "render n-body trajectories as a growing-trail video",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          renderRun,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "append log lines to this file")
	pf.StringVar(&colorMode, "color", string(logging.ColorAuto), "colour output: auto, always, never")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging and encoder progress")
	addTimelineFlags(rootCmd)
	addRenderFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render [input] [output]",
		Short: "render a trajectory file to video",
		Args:  cobra.MaximumNArgs(2),
		RunE:  renderRun,
	}
	addTimelineFlags(renderCmd)
	addRenderFlags(renderCmd)

	previewCmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "play the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewRun,
	}
	addTimelineFlags(previewCmd)
	previewCmd.Flags().StringVar(&theme, "theme", viz.ThemeDefault.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	previewCmd.Flags().IntVar(&cols, "cols", viz.DefaultCols, "canvas width in cells")
	previewCmd.Flags().IntVar(&rows, "rows", viz.DefaultRows, "canvas height in cells")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "summarise a trajectory file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectRun,
	}
	addTimelineFlags(inspectCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "check that ffmpeg and the configured codec are available",
		Args:  cobra.NoArgs,
		RunE:  checkRun,
	}
	checkCmd.Flags().StringVar(&ffmpeg, "ffmpeg", encode.DefaultBinary, "ffmpeg binary")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-10s %-10s %4dpx %3dms %s\n", name, p.Playback, p.Size, p.IntervalMs, p.Output)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfigRun,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	addTimelineFlags(initCmd)
	addRenderFlags(initCmd)

	rootCmd.AddCommand(renderCmd, previewCmd, inspectCmd, checkCmd, presetsCmd, initCmd)
	return rootCmd
}

func addTimelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&duration, "duration", config.DefaultDuration, "video length in seconds (fixed playback)")
	f.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "frame interval in milliseconds")
	f.StringVar(&playback, "playback", string(timeline.Fixed), "playback mode: fixed, realtime")
	f.Float64Var(&timeStep, "time-step", 0, "sample spacing for realtime playback (0: from data)")
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&size, "size", config.DefaultConfig().Size, "frame width and height in pixels")
	f.StringVar(&snapshot, "snapshot", "", "also write the last frame to this .png or .svg")
	f.StringVar(&ffmpeg, "ffmpeg", encode.DefaultBinary, "ffmpeg binary")
	f.IntVar(&crf, "crf", encode.DefaultCRF, "x264 constant rate factor")
}

// loadConfig resolves defaults, then the preset, then the config file,
// then flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" && !config.Apply(cfg, preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("playback") {
		cfg.Playback = playback
	}
	if flags.Changed("time-step") {
		cfg.TimeStep = timeStep
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("snapshot") {
		cfg.Snapshot = snapshot
	}
	if flags.Changed("ffmpeg") {
		cfg.Encoder.FFmpeg = ffmpeg
	}
	if flags.Changed("crf") {
		cfg.Encoder.CRF = crf
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	mode, err := logging.ParseColorMode(colorMode)
	if err != nil {
		return nil, err
	}
	return logging.New(cfg.LogOptions(mode, verbose))
}

func renderRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	_, err = pipeline.Run(cmd.Context(), cfg, log.Verbose(), log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted, %s is incomplete", cfg.Output)
		}
		if errors.Is(err, encode.ErrEncoderMissing) && encode.NeedsFFmpeg(cfg.Output) {
			log.Warn("install ffmpeg or render to a .gif output")
		}
		return err
	}
	return nil
}

func previewRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	p, err := pipeline.Prepare(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(p.Table, p.Plan.Frames, p.Viewport, p.Palette, viz.Options{
		Title:    cfg.Input,
		Interval: p.Plan.Interval,
		Cols:     cols,
		Rows:     rows,
		Theme:    viz.GetTheme(theme),
	})
	return viz.Run(m)
}

func inspectRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	table, err := trajectory.LoadTable(cfg.Input)
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := analysis.Summarize(table, cfg.View())
	if err := analysis.Report(out, s, table, palette); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := palette.Check(table.NumBodies()); err != nil {
		fmt.Fprintf(out, "cannot render: %v\n", err)
	}
	settings, err := cfg.Timeline()
	if err != nil {
		return err
	}
	plan, err := timeline.NewPlan(table, settings)
	if err != nil {
		fmt.Fprintf(out, "cannot render: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "%s playback: every %d samples, %d frames, %v at %.4g fps\n",
		plan.Mode, plan.Step, plan.Frames, plan.Length().Round(time.Millisecond), plan.FPS())
	return nil
}

func checkRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r, err := encode.Check(cmd.Context(), cfg.Encoder.FFmpeg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ffmpeg:  %s\n", r.Path)
	fmt.Fprintf(out, "version: %s\n", r.Version)
	if !r.HasEncoder(cfg.Encoder.Codec) {
		return fmt.Errorf("%w: ffmpeg has no %s encoder", encode.ErrEncoderMissing, cfg.Encoder.Codec)
	}
	fmt.Fprintf(out, "codec:   %s ok\n", cfg.Encoder.Codec)
	return nil
}

func initConfigRun(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
