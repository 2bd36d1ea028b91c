package editor

import (
	"strings"

	"github.com/amirali/ette/editor/syntax"
	"github.com/amirali/ette/logger"
	"github.com/amirali/ette/tools"
)

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

// rowHasOpenComment reports whether the row ends inside a multiline
// comment that spills onto the next row.
func rowHasOpenComment(row *Row) bool {
	if len(row.hl) == 0 || row.hl[len(row.hl)-1] != syntax.HlMlcomment {
		return false
	}
	return len(row.render) < 2 || !strings.HasSuffix(row.render, "*/")
}

// updateHighlight reclassifies a row, then walks forward while the
// open-comment state of each row keeps changing.
func (e *Editor) updateHighlight(row *Row) {
	for e.highlightRow(row) {
		if row.idx+1 >= len(e.rows) {
			break
		}
		row = e.rows[row.idx+1]
	}
}

// highlightRow assigns a highlight class to every byte of the rendered
// row. It reports whether the open-comment state changed, in which case
// the following row needs a pass too.
func (e *Editor) highlightRow(row *Row) bool {
	row.hl = make([]byte, len(row.render))

	if e.syntax == nil {
		return false
	}
	keywords := e.syntax.Keywords
	scs := e.syntax.Scs
	mcs := e.syntax.Mcs
	mce := e.syntax.Mce

	render := row.render
	i := 0
	// Leading whitespace keeps the default class.
	for i < len(render) && isSpaceByte(render[i]) {
		i++
	}

	prevSep := true
	var inString byte
	inComment := row.idx > 0 && rowHasOpenComment(e.rows[row.idx-1])

	for i < len(render) {
		c := render[i]

		// Single line comments run to the end of the row.
		if prevSep && scs != "" && strings.HasPrefix(render[i:], scs) {
			for j := i; j < len(render); j++ {
				row.hl[j] = syntax.HlComment
			}
			return false
		}

		// Multiline comments.
		if inComment {
			row.hl[i] = syntax.HlMlcomment
			if mce != "" && strings.HasPrefix(render[i:], mce) {
				for j := 0; j < len(mce); j++ {
					row.hl[i] = syntax.HlMlcomment
					i++
				}
				inComment = false
				prevSep = true
				continue
			}
			prevSep = false
			i++
			continue
		} else if mcs != "" && strings.HasPrefix(render[i:], mcs) {
			for j := 0; j < len(mcs); j++ {
				row.hl[i] = syntax.HlMlcomment
				i++
			}
			inComment = true
			prevSep = false
			continue
		}

		// String literals, with backslash escapes.
		if e.syntax.Flags&syntax.HighlightStrings != 0 {
			if inString != 0 {
				row.hl[i] = syntax.HlString
				if c == '\\' && i+1 < len(render) {
					row.hl[i+1] = syntax.HlString
					i += 2
					prevSep = false
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				row.hl[i] = syntax.HlString
				i++
				prevSep = false
				continue
			}
		}

		// Non printable characters.
		if c < 0x20 || c > 0x7e {
			row.hl[i] = syntax.HlNonprint
			i++
			prevSep = false
			continue
		}

		// Numbers, including the dot of a decimal.
		if e.syntax.Flags&syntax.HighlightNumbers != 0 {
			if (c >= '0' && c <= '9' && (prevSep || (i > 0 && row.hl[i-1] == syntax.HlNumber))) ||
				(c == '.' && i > 0 && row.hl[i-1] == syntax.HlNumber) {
				row.hl[i] = syntax.HlNumber
				i++
				prevSep = false
				continue
			}
		}

		// Keywords only match right after a separator.
		if prevSep {
			matched := false
			for _, kw := range keywords {
				class := syntax.HlKeyword1
				if strings.HasSuffix(kw, "|") {
					kw = strings.TrimSuffix(kw, "|")
					class = syntax.HlKeyword2
				}
				end := i + len(kw)
				if end > len(render) || render[i:end] != kw {
					continue
				}
				if end < len(render) && !tools.IsSeparator(render[end]) {
					continue
				}
				for j := i; j < end; j++ {
					row.hl[j] = class
				}
				i = end
				matched = true
				break
			}
			if matched {
				prevSep = false
				continue
			}
		}

		prevSep = tools.IsSeparator(c)
		i++
	}

	oc := rowHasOpenComment(row)
	changed := row.hlOpenComment != oc
	row.hlOpenComment = oc
	return changed
}

// SelectSyntaxHighlight picks the highlight ruleset matching filename.
// A pattern starting with '.' must match the end of the name, anything
// else matches as a substring.
func (e *Editor) SelectSyntaxHighlight(filename string) {
	for _, s := range syntax.HLDB {
		for _, pattern := range s.Filematch {
			if pattern == "" {
				continue
			}
			if strings.HasPrefix(pattern, ".") {
				if !strings.HasSuffix(filename, pattern) {
					continue
				}
			} else if !strings.Contains(filename, pattern) {
				continue
			}
			e.syntax = s
			logger.Debugw("syntax selected", "filetype", s.Filetype, "filename", filename)
			return
		}
	}
}
