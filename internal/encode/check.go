package encode

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Report describes the ffmpeg installation.
type Report struct {
	Path     string
	Version  string
	Encoders []string
}

// HasEncoder reports whether ffmpeg lists the named encoder.
func (r Report) HasEncoder(name string) bool {
	for _, e := range r.Encoders {
		if e == name {
			return true
		}
	}
	return false
}

// Check locates ffmpeg and lists its video encoders.
func Check(ctx context.Context, binary string) (Report, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrEncoderMissing, binary)
	}
	r := Report{Path: path}

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return r, &ExecError{Args: []string{path, "-version"}, Err: err}
	}
	r.Version = firstLine(string(out))

	out, err = exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
	if err != nil {
		return r, &ExecError{Args: []string{path, "-hide_banner", "-encoders"}, Err: err}
	}
	r.Encoders = parseEncoders(string(out))
	return r, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// parseEncoders extracts video encoder names from `ffmpeg -encoders`
// output. Listing lines look like " V....D libx264   H.264 ...".
func parseEncoders(out string) []string {
	var names []string
	listing := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "------") {
			listing = true
			continue
		}
		if !listing {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "V") {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}
