// Package syntax holds the highlight classes and the ruleset database
// the highlighter walks. Rulesets are static records; extra ones can be
// registered from configuration.
package syntax

// Highlight classes, one byte per rendered byte.
const (
	HlNormal byte = iota
	HlNonprint
	HlComment
	HlMlcomment
	HlKeyword1
	HlKeyword2
	HlString
	HlNumber
	HlMatch
)

const (
	HighlightStrings = 1 << iota
	HighlightNumbers
)

type Syntax struct {
	Filetype  string
	Filematch []string
	// Keywords to highlight; a trailing '|' marks the second keyword
	// class (types).
	Keywords []string
	// single line comment start
	Scs string
	// multi line comment start pattern
	Mcs string
	// multi line comment end pattern
	Mce string
	Flags int
}

// HLDB is the ordered ruleset list; the first Filematch hit wins.
var HLDB = []*Syntax{
	syntaxC, syntaxGo, syntaxPython, syntaxLua,
}

// Register appends a ruleset after the built-ins.
func Register(s *Syntax) {
	HLDB = append(HLDB, s)
}

// Theme maps highlight classes to ANSI color codes.
type Theme struct {
	Comment   int
	Mlcomment int
	Keyword1  int
	Keyword2  int
	String    int
	Number    int
	Match     int
	Normal    int
}

func DefaultTheme() Theme {
	return Theme{
		Comment:   36,
		Mlcomment: 36,
		Keyword1:  33,
		Keyword2:  32,
		String:    35,
		Number:    31,
		Match:     34,
		Normal:    37,
	}
}

var theme = DefaultTheme()

// SetTheme replaces the active color mapping.
func SetTheme(t Theme) {
	theme = t
}

// SyntaxToColor maps a highlight class to its terminal color.
func SyntaxToColor(hl byte) int {
	switch hl {
	case HlComment:
		return theme.Comment
	case HlMlcomment:
		return theme.Mlcomment
	case HlKeyword1:
		return theme.Keyword1
	case HlKeyword2:
		return theme.Keyword2
	case HlString:
		return theme.String
	case HlNumber:
		return theme.Number
	case HlMatch:
		return theme.Match
	default:
		return theme.Normal
	}
}
