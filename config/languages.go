package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/amirali/ette/editor/syntax"
)

// Language is a user-defined highlight ruleset from languages.toml.
type Language struct {
	Name         string   `toml:"name"`
	FileTypes    []string `toml:"file-types"`
	Keywords     []string `toml:"keywords"`
	Types        []string `toml:"types"`
	Comment      string   `toml:"comment"`
	CommentStart string   `toml:"comment-start"`
	CommentEnd   string   `toml:"comment-end"`
	Strings      bool     `toml:"strings"`
	Numbers      bool     `toml:"numbers"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// Syntax converts a language record into a highlight ruleset. Types get
// the "|" marker appended so the highlighter classes them separately
// from keywords.
func (l Language) Syntax() *syntax.Syntax {
	keywords := make([]string, 0, len(l.Keywords)+len(l.Types))
	keywords = append(keywords, l.Keywords...)
	for _, t := range l.Types {
		keywords = append(keywords, t+"|")
	}
	flags := 0
	if l.Strings {
		flags |= syntax.HighlightStrings
	}
	if l.Numbers {
		flags |= syntax.HighlightNumbers
	}
	return &syntax.Syntax{
		Filetype:  l.Name,
		Filematch: l.FileTypes,
		Keywords:  keywords,
		Scs:       l.Comment,
		Mcs:       l.CommentStart,
		Mce:       l.CommentEnd,
		Flags:     flags,
	}
}

func LoadLanguages() (Languages, error) {
	path, err := LanguagesPath()
	if err != nil {
		return Languages{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Languages{}, nil
		}
		return Languages{}, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Languages{}, err
	}
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
