package encode

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBinary = "ffmpeg"
	DefaultCodec  = "libx264"
	DefaultPixFmt = "yuv420p"
	DefaultCRF    = 23
	DefaultPreset = "medium"
	DefaultOutput = "lines.mp4"
)

// Settings controls how frames are encoded.
type Settings struct {
	Binary   string
	Codec    string
	PixFmt   string
	CRF      int
	Preset   string
	Interval time.Duration
	// Verbose tees ffmpeg's stderr to the terminal.
	Verbose bool
}

func DefaultSettings() Settings {
	return Settings{
		Binary:   DefaultBinary,
		Codec:    DefaultCodec,
		PixFmt:   DefaultPixFmt,
		CRF:      DefaultCRF,
		Preset:   DefaultPreset,
		Interval: 40 * time.Millisecond,
	}
}

func (s Settings) binary() string {
	if s.Binary == "" {
		return DefaultBinary
	}
	return s.Binary
}

// FPS formats the frame rate for ffmpeg.
func (s Settings) FPS() string {
	if s.Interval <= 0 {
		return "25"
	}
	return strconv.FormatFloat(float64(time.Second)/float64(s.Interval), 'f', -1, 64)
}

// BuildArgs returns the complete ffmpeg argument slice, binary first, for
// reading PNG frames from stdin and writing output.
func BuildArgs(s Settings, output string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, s.binary(), "-hide_banner", "-nostdin", "-y")
	if s.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input: PNG frames on stdin ---
	args = append(args,
		"-f", "image2pipe",
		"-c:v", "png",
		"-framerate", s.FPS(),
		"-i", "-",
	)

	// --- Video codec ---
	codec := s.Codec
	if codec == "" {
		codec = DefaultCodec
	}
	args = append(args, "-c:v", codec)
	if s.Preset != "" {
		args = append(args, "-preset", s.Preset)
	}
	if s.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(s.CRF))
	}
	if s.PixFmt != "" {
		args = append(args, "-pix_fmt", s.PixFmt)
		// yuv420p needs even dimensions.
		args = append(args, "-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2")
	}

	// --- Container ---
	switch strings.ToLower(filepath.Ext(output)) {
	case ".mp4", ".mov", ".m4v":
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, "-r", s.FPS())

	// --- Output ---
	args = append(args, output)
	return args
}
