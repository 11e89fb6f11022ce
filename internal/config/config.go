// SPDX-License-Identifier: EPL-2.0

// Package config holds the command line settings. Values come from flags,
// AUDVOX_* environment variables and an optional YAML file, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so metrics-addr
// becomes AUDVOX_METRICS_ADDR.
const EnvPrefix = "AUDVOX"

var ErrInvalidSetting = errors.New("invalid setting")

// Settings are the resolved values for a run.
type Settings struct {
	LogLevel    string `mapstructure:"log-level"`
	Device      string `mapstructure:"device"`
	SampleRate  int    `mapstructure:"sample-rate"`
	Output      string `mapstructure:"output"`
	MetricsAddr string `mapstructure:"metrics-addr"`

	Volume float32 `mapstructure:"volume"`
	Pitch  float32 `mapstructure:"pitch"`
	Pos    string  `mapstructure:"pos"`
	Loop   bool    `mapstructure:"loop"`
	Voices int     `mapstructure:"voices"`

	Mono bool `mapstructure:"mono"`
	Bits int  `mapstructure:"bits"`
	Rate int  `mapstructure:"rate"`

	Record   string        `mapstructure:"record"`
	Duration time.Duration `mapstructure:"duration"`
}

var defaults = map[string]any{
	"log-level":    "info",
	"device":       "",
	"sample-rate":  44100,
	"output":       "oto",
	"metrics-addr": "",
	"volume":       1.0,
	"pitch":        1.0,
	"pos":          "0,0,0",
	"loop":         false,
	"voices":       1,
	"mono":         false,
	"bits":         0,
	"rate":         0,
	"record":       "",
	"duration":     time.Duration(0),
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// BindFlags lets the flags in fs override every other source.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// ReadFile loads path, or when path is empty looks for audvox.yaml in the
// user config directory and the working directory. A missing default file
// is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("audvox")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "audvox"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	logrus.WithField("file", v.ConfigFileUsed()).Debug("config loaded")
	return nil
}

// Load resolves v into validated Settings.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	invalid := func(key string, val any) error {
		return fmt.Errorf("%w: %s=%v", ErrInvalidSetting, key, val)
	}

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return invalid("log-level", s.LogLevel)
	}
	switch s.Output {
	case "oto", "malgo", "none":
	default:
		return invalid("output", s.Output)
	}
	if s.SampleRate <= 0 {
		return invalid("sample-rate", s.SampleRate)
	}
	if !finite(s.Volume) {
		return invalid("volume", s.Volume)
	}
	if !finite(s.Pitch) || s.Pitch <= 0 {
		return invalid("pitch", s.Pitch)
	}
	if s.Voices < 1 {
		return invalid("voices", s.Voices)
	}
	if s.Bits != 0 && s.Bits != 8 && s.Bits != 16 {
		return invalid("bits", s.Bits)
	}
	if s.Rate < 0 {
		return invalid("rate", s.Rate)
	}
	if s.Duration < 0 {
		return invalid("duration", s.Duration)
	}
	if _, err := ParsePos(s.Pos); err != nil {
		return err
	}
	return nil
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Level returns the parsed log level. Validate must have succeeded.
func (s *Settings) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Position returns Pos as coordinates. Validate must have succeeded.
func (s *Settings) Position() [3]float32 {
	p, _ := ParsePos(s.Pos)
	return p
}

// ParsePos parses "x,y,z".
func ParsePos(s string) ([3]float32, error) {
	var pos [3]float32

	parts := strings.Split(s, ",")
	if len(parts) != len(pos) {
		return pos, fmt.Errorf("%w: pos=%q: want x,y,z", ErrInvalidSetting, s)
	}

	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return pos, fmt.Errorf("%w: pos=%q: %w", ErrInvalidSetting, s, err)
		}
		pos[i] = float32(f)
	}
	return pos, nil
}
