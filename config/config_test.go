package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amirali/ette/editor/syntax"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.QuitTimes != 3 {
		t.Fatalf("default quit-times = %d, want 3", cfg.Editor.QuitTimes)
	}
	if cfg.Editor.Debug {
		t.Fatalf("default debug = true, want false")
	}
	if cfg.Theme.Comment != 36 || cfg.Theme.Keyword1 != 33 || cfg.Theme.Match != 34 {
		t.Fatalf("unexpected default theme: %+v", cfg.Theme)
	}
}

func TestConfigDirPrecedence(t *testing.T) {
	t.Setenv("ETTE_CONFIG_HOME", "/tmp/ette-conf")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != "/tmp/ette-conf" {
		t.Fatalf("dir = %q, want %q", dir, "/tmp/ette-conf")
	}

	t.Setenv("ETTE_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "ette") {
		t.Fatalf("dir = %q, want %q", dir, filepath.Join("/tmp/xdg", "ette"))
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("ETTE_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ETTE_CONFIG_HOME", dir)
	data := `
[editor]
quit-times = 5
debug = true

[theme]
comment = 90
match = 93
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.QuitTimes != 5 {
		t.Fatalf("quit-times = %d, want 5", cfg.Editor.QuitTimes)
	}
	if !cfg.Editor.Debug {
		t.Fatalf("debug = false, want true")
	}
	if cfg.Theme.Comment != 90 {
		t.Fatalf("theme comment = %d, want 90", cfg.Theme.Comment)
	}
	if cfg.Theme.Match != 93 {
		t.Fatalf("theme match = %d, want 93", cfg.Theme.Match)
	}
	if cfg.Theme.Keyword1 != 33 {
		t.Fatalf("theme keyword1 = %d, want default 33", cfg.Theme.Keyword1)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ETTE_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[editor\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("Load with broken toml returned nil error")
	}
}

func TestLoadLanguages(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ETTE_CONFIG_HOME", dir)
	data := `
[[language]]
name = "ruby"
file-types = [".rb"]
keywords = ["def", "end"]
types = ["String"]
comment = "#"
comment-start = "=begin"
comment-end = "=end"
strings = true
numbers = true
`
	if err := os.WriteFile(filepath.Join(dir, "languages.toml"), []byte(data), 0644); err != nil {
		t.Fatalf("write languages: %v", err)
	}

	langs, err := LoadLanguages()
	if err != nil {
		t.Fatalf("LoadLanguages: %v", err)
	}
	if len(langs.Languages) != 1 {
		t.Fatalf("got %d languages, want 1", len(langs.Languages))
	}

	s := langs.Languages[0].Syntax()
	if s.Filetype != "ruby" {
		t.Fatalf("filetype = %q, want %q", s.Filetype, "ruby")
	}
	if len(s.Filematch) != 1 || s.Filematch[0] != ".rb" {
		t.Fatalf("filematch = %v, want [.rb]", s.Filematch)
	}
	want := []string{"def", "end", "String|"}
	if len(s.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", s.Keywords, want)
	}
	for i := range want {
		if s.Keywords[i] != want[i] {
			t.Fatalf("keywords[%d] = %q, want %q", i, s.Keywords[i], want[i])
		}
	}
	if s.Scs != "#" || s.Mcs != "=begin" || s.Mce != "=end" {
		t.Fatalf("comment tokens = %q %q %q", s.Scs, s.Mcs, s.Mce)
	}
	if s.Flags != syntax.HighlightStrings|syntax.HighlightNumbers {
		t.Fatalf("flags = %d", s.Flags)
	}
}

func TestLoadLanguagesMissingFile(t *testing.T) {
	t.Setenv("ETTE_CONFIG_HOME", t.TempDir())
	langs, err := LoadLanguages()
	if err != nil {
		t.Fatalf("LoadLanguages with no file: %v", err)
	}
	if len(langs.Languages) != 0 {
		t.Fatalf("got %d languages, want 0", len(langs.Languages))
	}
}
