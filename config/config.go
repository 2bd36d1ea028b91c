// Package config loads user configuration from config.toml under the
// ette config directory. A missing file is not an error: Load falls
// back to Default for every value the user did not set.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	QuitTimes int  `toml:"quit-times"`
	Debug     bool `toml:"debug"`
}

// Theme holds ANSI color codes for the highlight classes. Zero means
// "use the default".
type Theme struct {
	Comment   int `toml:"comment"`
	Mlcomment int `toml:"mlcomment"`
	Keyword1  int `toml:"keyword1"`
	Keyword2  int `toml:"keyword2"`
	String    int `toml:"string"`
	Number    int `toml:"number"`
	Match     int `toml:"match"`
	Normal    int `toml:"normal"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			QuitTimes: 3,
			Debug:     false,
		},
		Theme: Theme{
			Comment:   36,
			Mlcomment: 36,
			Keyword1:  33,
			Keyword2:  32,
			String:    35,
			Number:    31,
			Match:     34,
			Normal:    37,
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.QuitTimes > 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = userCfg.Editor.Debug
	}
	if userCfg.Theme.Comment > 0 {
		cfg.Theme.Comment = userCfg.Theme.Comment
	}
	if userCfg.Theme.Mlcomment > 0 {
		cfg.Theme.Mlcomment = userCfg.Theme.Mlcomment
	}
	if userCfg.Theme.Keyword1 > 0 {
		cfg.Theme.Keyword1 = userCfg.Theme.Keyword1
	}
	if userCfg.Theme.Keyword2 > 0 {
		cfg.Theme.Keyword2 = userCfg.Theme.Keyword2
	}
	if userCfg.Theme.String > 0 {
		cfg.Theme.String = userCfg.Theme.String
	}
	if userCfg.Theme.Number > 0 {
		cfg.Theme.Number = userCfg.Theme.Number
	}
	if userCfg.Theme.Match > 0 {
		cfg.Theme.Match = userCfg.Theme.Match
	}
	if userCfg.Theme.Normal > 0 {
		cfg.Theme.Normal = userCfg.Theme.Normal
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("ETTE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ette"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ette"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
