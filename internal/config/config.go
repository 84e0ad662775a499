// Package config loads the playground settings from defaults, a kbplay.yaml
// file, KBPLAY_* environment variables and command line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rook-computer/kbplay/internal/app"
	"github.com/rook-computer/kbplay/internal/render"
	"github.com/rook-computer/kbplay/internal/sequence"
	"github.com/rook-computer/kbplay/internal/state"
)

type Config struct {
	MediaDir     string `mapstructure:"media_dir"`
	Duration     int    `mapstructure:"duration"`
	Hysteresis   int    `mapstructure:"hysteresis"`
	Cache        bool   `mapstructure:"cache"`
	Font         string `mapstructure:"font"`
	Debug        bool   `mapstructure:"debug"`
	Testing      bool   `mapstructure:"testing"`
	Pairing      string `mapstructure:"pairing"`
	QuitPolicy   string `mapstructure:"quit_policy"`
	SoundRepeats int    `mapstructure:"sound_repeats"`
	StdioLog     string `mapstructure:"stdio_log"`
	Framebuffer  string `mapstructure:"framebuffer"`
}

// Error is a configuration problem that prevents startup.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string { return "config " + e.Key + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func Defaults() map[string]any {
	return map[string]any{
		"media_dir":     "~/kbplay-media",
		"duration":      int(state.DefaultMinDisplay / time.Millisecond),
		"hysteresis":    int(state.DefaultHysteresis / time.Millisecond),
		"cache":         false,
		"font":          "",
		"debug":         false,
		"testing":       false,
		"pairing":       sequence.PairWithinTopic.String(),
		"quit_policy":   app.QuitImmediate.String(),
		"sound_repeats": 1,
		"stdio_log":     "",
		"framebuffer":   render.DefaultFramebuffer,
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"mediadir":      "media_dir",
	"duration":      "duration",
	"hysteresis":    "hysteresis",
	"cache":         "cache",
	"font":          "font",
	"debug":         "debug",
	"testing":       "testing",
	"pairing":       "pairing",
	"quit-policy":   "quit_policy",
	"sound-repeats": "sound_repeats",
	"stdio-log":     "stdio_log",
	"framebuffer":   "framebuffer",
}

// AddFlags declares the configuration flags on cmd.
func AddFlags(cmd *cobra.Command) {
	d := Defaults()
	f := cmd.Flags()
	f.StringP("mediadir", "m", d["media_dir"].(string), "media root, one subdirectory per key")
	f.IntP("duration", "d", d["duration"].(int), "minimum time in milliseconds a picture stays up")
	f.Int("hysteresis", d["hysteresis"].(int), "extra milliseconds before the same key is accepted again")
	f.BoolP("cache", "C", false, "decode all pictures while building the catalog")
	f.StringP("font", "f", "", "font file or name used for synthesized keycaps")
	f.BoolP("debug", "D", false, "debug logging and captions")
	f.BoolP("testing", "T", false, "run without display and audio, implies --debug")
	f.String("pairing", d["pairing"].(string), `draw pool: "topic" pairs within a topic, "cross" pairs all pictures with all sounds`)
	f.String("quit-policy", d["quit_policy"].(string), `"immediate" or "after-display"`)
	f.Int("sound-repeats", d["sound_repeats"].(int), "extra plays of each sound")
	f.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file")
	f.String("framebuffer", d["framebuffer"].(string), "framebuffer device")
	f.String("config", "", "config file (default is kbplay.yaml in the user config dir, /etc/kbplay or .)")
}

func configDirs() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "kbplay"))
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, "/etc/kbplay")
	}
	return append(dirs, ".")
}

// Load resolves the configuration for cmd. An explicit --config file must
// exist; the default search locations may hold none.
func Load(cmd *cobra.Command) (Config, error) {
	var c Config
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("kbplay")
	v.SetConfigType("yaml")
	explicit := ""
	if f := cmd.Flags().Lookup("config"); f != nil {
		explicit = f.Value.String()
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return c, &Error{Key: "config", Err: err}
		}
	}

	v.SetEnvPrefix("kbplay")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return c, &Error{Key: key, Err: err}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, &Error{Key: "config", Err: err}
	}
	if c.Testing {
		c.Debug = true
	}
	c.MediaDir = ExpandHome(c.MediaDir)
	return c, c.Validate()
}

// Validate checks option values and the media root.
func (c Config) Validate() error {
	if c.MediaDir == "" {
		return &Error{Key: "media_dir", Err: errors.New("empty path")}
	}
	if fi, err := os.Stat(c.MediaDir); err == nil && !fi.IsDir() {
		return &Error{Key: "media_dir", Err: fmt.Errorf("%s is not a directory", c.MediaDir)}
	}
	if c.Duration < 0 {
		return &Error{Key: "duration", Err: fmt.Errorf("negative duration %d", c.Duration)}
	}
	if c.Hysteresis < 0 {
		return &Error{Key: "hysteresis", Err: fmt.Errorf("negative hysteresis %d", c.Hysteresis)}
	}
	if c.SoundRepeats < 0 {
		return &Error{Key: "sound_repeats", Err: fmt.Errorf("negative repeat count %d", c.SoundRepeats)}
	}
	if _, err := sequence.ParsePairing(c.Pairing); err != nil {
		return &Error{Key: "pairing", Err: err}
	}
	if _, err := app.ParseQuitPolicy(c.QuitPolicy); err != nil {
		return &Error{Key: "quit_policy", Err: err}
	}
	return nil
}

func (c Config) MinDisplay() time.Duration {
	return time.Duration(c.Duration) * time.Millisecond
}

func (c Config) HysteresisWindow() time.Duration {
	return time.Duration(c.Hysteresis) * time.Millisecond
}

// PairingMode and Quit assume a validated Config.
func (c Config) PairingMode() sequence.Pairing {
	p, _ := sequence.ParsePairing(c.Pairing)
	return p
}

func (c Config) Quit() app.QuitPolicy {
	q, _ := app.ParseQuitPolicy(c.QuitPolicy)
	return q
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
