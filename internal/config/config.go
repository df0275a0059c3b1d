// Package config parses dbgsh.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/media"
)

// FileName is the configuration file looked up by Load.
const FileName = "dbgsh.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// ErrNotFound is returned by Load when no dbgsh.toml exists in the working
// directory or any of its parents.
var ErrNotFound = errors.New("config: " + FileName + " not found")

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level dbgsh.toml configuration.
type Config struct {
	Project   ProjectConfig     `toml:"project"`
	Layout    LayoutConfig      `toml:"layout"`
	Shortcuts map[string]string `toml:"shortcuts"` // localized-string table: name → combo
	TUI       TUIConfig         `toml:"tui"`
	Log       LogConfig         `toml:"log"`
	Journal   JournalConfig     `toml:"journal"`
}

// ProjectConfig identifies the project and its sources.
type ProjectConfig struct {
	Name       string   `toml:"name"`
	Root       string   `toml:"root"`       // relative to the config file; empty = its directory
	Extensions []string `toml:"extensions"` // empty = every file
	Watch      bool     `toml:"watch"`      // refresh the source list as files come and go
}

// LayoutConfig controls the responsive split layout.
type LayoutConfig struct {
	BreakpointPx    int         `toml:"breakpoint_px"`
	CellWidthPx     int         `toml:"cell_width_px"`
	CellHeightPx    int         `toml:"cell_height_px"`
	ResizeStep      int         `toml:"resize_step"` // cells per keyboard resize
	HorizontalOuter SplitConfig `toml:"horizontal_outer"`
	HorizontalInner SplitConfig `toml:"horizontal_inner"`
	VerticalOuter   SplitConfig `toml:"vertical_outer"`
	VerticalInner   SplitConfig `toml:"vertical_inner"`
}

// SplitConfig holds one split's bounds as size strings ("250px", "50%").
type SplitConfig struct {
	Initial string `toml:"initial"`
	Min     string `toml:"min"`
	Max     string `toml:"max"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
	Mouse       bool   `toml:"mouse"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	File  string `toml:"file"` // empty = discard
	Level string `toml:"level"`
}

// JournalConfig controls the action journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Keep    int    `toml:"keep"` // number of journals to keep; 0 = unlimited
}

func splitFromBounds(b layout.Bounds) SplitConfig {
	return SplitConfig{Initial: b.Initial.String(), Min: b.Min.String(), Max: b.Max.String()}
}

// Defaults returns a Config with the reference layout and sensible defaults.
func Defaults() Config {
	splits := layout.DefaultConfig()
	return Config{
		Project: ProjectConfig{
			Extensions: []string{".go", ".js", ".jsx", ".ts", ".tsx", ".py"},
			Watch:      true,
		},
		Layout: LayoutConfig{
			BreakpointPx:    media.DefaultMinWidth,
			CellWidthPx:     layout.DefaultScale.CellWidth,
			CellHeightPx:    layout.DefaultScale.CellHeight,
			ResizeStep:      1,
			HorizontalOuter: splitFromBounds(splits.HorizontalOuter),
			HorizontalInner: splitFromBounds(splits.HorizontalInner),
			VerticalOuter:   splitFromBounds(splits.VerticalOuter),
			VerticalInner:   splitFromBounds(splits.VerticalInner),
		},
		Shortcuts: map[string]string{},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
			Mouse:       true,
		},
		Log: LogConfig{Level: "info"},
		Journal: JournalConfig{
			Dir:  ".dbgsh/journal",
			Keep: 20,
		},
	}
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Layout.BreakpointPx <= 0 {
		errs = append(errs, fmt.Errorf("layout.breakpoint_px must be > 0"))
	}
	if c.Layout.CellWidthPx <= 0 {
		errs = append(errs, fmt.Errorf("layout.cell_width_px must be > 0"))
	}
	if c.Layout.CellHeightPx <= 0 {
		errs = append(errs, fmt.Errorf("layout.cell_height_px must be > 0"))
	}
	if c.Layout.ResizeStep <= 0 {
		errs = append(errs, fmt.Errorf("layout.resize_step must be > 0"))
	}
	if _, err := c.Layout.Splits(); err != nil {
		errs = append(errs, err)
	}

	for name, combo := range c.Shortcuts {
		if !keys.Known(name) {
			if hint := keys.Suggest(name); hint != "" {
				errs = append(errs, fmt.Errorf("shortcuts: unknown shortcut %q (did you mean %q?)", name, hint))
			} else {
				errs = append(errs, fmt.Errorf("shortcuts: unknown shortcut %q", name))
			}
		}
		if strings.TrimSpace(combo) == "" {
			errs = append(errs, fmt.Errorf("shortcuts.%q must not be empty", name))
		}
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error"))
	}

	if c.Journal.Enabled && c.Journal.Dir == "" {
		errs = append(errs, fmt.Errorf("journal.dir must be set when journal.enabled is true"))
	}
	if c.Journal.Keep < 0 {
		errs = append(errs, fmt.Errorf("journal.keep must be >= 0 (0 = unlimited)"))
	}

	return errors.Join(errs...)
}

// Splits parses the configured split bounds.
func (l LayoutConfig) Splits() (layout.Config, error) {
	var errs []error
	parse := func(name string, sc SplitConfig) layout.Bounds {
		var b layout.Bounds
		bad := false
		for _, f := range []struct {
			key string
			raw string
			dst *layout.Size
		}{
			{"initial", sc.Initial, &b.Initial},
			{"min", sc.Min, &b.Min},
			{"max", sc.Max, &b.Max},
		} {
			sz, err := layout.ParseSize(f.raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("layout.%s.%s: %w", name, f.key, err))
				bad = true
				continue
			}
			*f.dst = sz
		}
		// Mixed units can only be compared once the container size is known.
		if !bad && b.Min.Unit == b.Max.Unit && b.Min.Value > b.Max.Value {
			errs = append(errs, fmt.Errorf("layout.%s: min %s exceeds max %s", name, b.Min, b.Max))
		}
		return b
	}
	cfg := layout.Config{
		HorizontalOuter: parse("horizontal_outer", l.HorizontalOuter),
		HorizontalInner: parse("horizontal_inner", l.HorizontalInner),
		VerticalOuter:   parse("vertical_outer", l.VerticalOuter),
		VerticalInner:   parse("vertical_inner", l.VerticalInner),
	}
	if err := errors.Join(errs...); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// Scale returns the cell-to-pixel scale.
func (l LayoutConfig) Scale() layout.Scale {
	return layout.Scale{CellWidth: l.CellWidthPx, CellHeight: l.CellHeightPx}
}

// SlogLevel returns the configured level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load reads dbgsh.toml from the given path. If path is empty, it walks up
// from the current working directory looking for dbgsh.toml and returns an
// error wrapping ErrNotFound when there is none. Returns an error if the
// file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	dir := filepath.Dir(path)
	cfg.Project.Root = ResolveRoot(dir, cfg.Project.Root)
	if cfg.Journal.Dir != "" && !filepath.IsAbs(cfg.Journal.Dir) {
		cfg.Journal.Dir = filepath.Join(cfg.Project.Root, cfg.Journal.Dir)
	}
	if cfg.Project.Name == "" {
		cfg.Project.Name = DetectProjectName(cfg.Project.Root)
	}

	return &cfg, nil
}

// ResolveRoot returns root made absolute against base. An empty root is base.
func ResolveRoot(base, root string) string {
	if root == "" {
		root = base
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(base, root)
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for dbgsh.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrNotFound, dir)
		}
		dir = parent
	}
}

// InitFile writes a default dbgsh.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := atomicWriteFile(path, []byte(initTemplate), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const initTemplate = `# dbgsh.toml — debugger shell configuration
# Place this file in the root of your project.

[project]
name = ""
root = ""                                         # relative to this file; empty = this directory
extensions = [".go", ".js", ".jsx", ".ts", ".tsx", ".py"]
watch = true                                      # refresh sources as files are added or removed

[layout]
breakpoint_px = 800   # viewport width at which panels switch to side-by-side
cell_width_px = 8     # pixels per terminal column
cell_height_px = 16   # pixels per terminal row
resize_step = 1       # cells moved per keyboard resize

[layout.horizontal_outer]
initial = "250px"
min = "10px"
max = "50%"

[layout.horizontal_inner]
initial = "300px"
min = "10px"
max = "80%"

[layout.vertical_outer]
initial = "300px"
min = "30px"
max = "99%"

[layout.vertical_inner]
initial = "250px"
min = "10px"
max = "40%"

[shortcuts]
# "symbolSearch.search.key2" = "ctrl+o"
# "projectSearch.search.key" = "ctrl+f"

[tui]
accent_color = "#7D56F4"  # hex color for header/accent elements
mouse = true              # drag splitters with the mouse

[log]
file = ""       # empty = no log file
level = "info"  # debug, info, warn, error

[journal]
enabled = false
dir = ".dbgsh/journal"
keep = 20       # number of journals to keep; 0 = unlimited
`
