package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitreel/internal/encode"
	"github.com/san-kum/orbitreel/internal/logging"
	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

const (
	DefaultDuration   = 20.0
	DefaultIntervalMs = 40
	DefaultViewMin    = -5.0
	DefaultViewMax    = 5.0
)

type Config struct {
	Input      string         `yaml:"input"`
	Output     string         `yaml:"output"`
	Duration   float64        `yaml:"duration"`
	IntervalMs int            `yaml:"interval_ms"`
	Playback   string         `yaml:"playback"`
	TimeStep   float64        `yaml:"time_step"`
	Viewport   ViewportConfig `yaml:"viewport"`
	Colors     []string       `yaml:"colors"`
	Size       int            `yaml:"size"`
	Snapshot   string         `yaml:"snapshot,omitempty"`
	Encoder    EncoderConfig  `yaml:"encoder"`
	LogFile    string         `yaml:"log_file,omitempty"`
}

type ViewportConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type EncoderConfig struct {
	FFmpeg string `yaml:"ffmpeg"`
	Codec  string `yaml:"codec"`
	PixFmt string `yaml:"pix_fmt"`
	CRF    int    `yaml:"crf"`
	Preset string `yaml:"preset"`
}

// DefaultConfig reproduces the fixed data.csv -> lines.mp4 behaviour.
func DefaultConfig() *Config {
	return &Config{
		Input:      trajectory.DefaultInput,
		Output:     encode.DefaultOutput,
		Duration:   DefaultDuration,
		IntervalMs: DefaultIntervalMs,
		Playback:   string(timeline.Fixed),
		Viewport: ViewportConfig{
			XMin: DefaultViewMin,
			XMax: DefaultViewMax,
			YMin: DefaultViewMin,
			YMax: DefaultViewMax,
		},
		Colors: append([]string(nil), render.DefaultColors...),
		Size:   render.DefaultSize,
		Encoder: EncoderConfig{
			FFmpeg: encode.DefaultBinary,
			Codec:  encode.DefaultCodec,
			PixFmt: encode.DefaultPixFmt,
			CRF:    encode.DefaultCRF,
			Preset: encode.DefaultPreset,
		},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay sets the fields present in the YAML file at path on cfg. Fields
// the file omits keep their current value.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate returns the first violated setting.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input is empty")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output is empty")
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("config: interval_ms must be positive, got %d", c.IntervalMs)
	}
	if c.Size <= 0 {
		return fmt.Errorf("config: size must be positive, got %d", c.Size)
	}
	mode, err := timeline.ParseMode(c.Playback)
	if err != nil {
		return err
	}
	if mode == timeline.Fixed && c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.TimeStep < 0 {
		return fmt.Errorf("config: time_step must not be negative, got %g", c.TimeStep)
	}
	if err := c.View().Validate(); err != nil {
		return err
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("config: colors is empty")
	}
	if _, err := render.ParsePalette(c.Colors); err != nil {
		return err
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c *Config) View() render.Viewport {
	return render.Viewport{
		XMin: c.Viewport.XMin,
		XMax: c.Viewport.XMax,
		YMin: c.Viewport.YMin,
		YMax: c.Viewport.YMax,
	}
}

func (c *Config) Palette() (render.Palette, error) {
	return render.ParsePalette(c.Colors)
}

func (c *Config) Timeline() (timeline.Settings, error) {
	mode, err := timeline.ParseMode(c.Playback)
	if err != nil {
		return timeline.Settings{}, err
	}
	return timeline.Settings{
		Mode:     mode,
		Duration: time.Duration(c.Duration * float64(time.Second)),
		Interval: c.Interval(),
		TimeStep: c.TimeStep,
	}, nil
}

func (c *Config) EncodeSettings(verbose bool) encode.Settings {
	return encode.Settings{
		Binary:   c.Encoder.FFmpeg,
		Codec:    c.Encoder.Codec,
		PixFmt:   c.Encoder.PixFmt,
		CRF:      c.Encoder.CRF,
		Preset:   c.Encoder.Preset,
		Interval: c.Interval(),
		Verbose:  verbose,
	}
}

func (c *Config) LogOptions(color logging.ColorMode, verbose bool) logging.Options {
	return logging.Options{Color: color, File: c.LogFile, Verbose: verbose}
}
