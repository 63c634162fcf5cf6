package solution

import (
	"strings"
	"unicode/utf8"
)

// Syntax describes the comment and string literal rules of a language family.
type Syntax struct {
	Name         string
	LineComments []string
	BlockOpen    string
	BlockClose   string
	NestedBlocks bool
	// Quotes lists the single-line string delimiters.
	Quotes string
	// RawQuote delimits strings without escapes that may span lines.
	RawQuote     byte
	TripleQuotes bool
	RustLiterals bool
	// BoundedComments only starts a line comment at the start of a line or
	// after a word separator, so shell expansions like ${#arr[@]} and $# survive.
	BoundedComments bool
}

var (
	// Rust handles nested block comments, raw strings and lifetimes.
	Rust = Syntax{Name: "rust", LineComments: []string{"//"}, BlockOpen: "/*", BlockClose: "*/", NestedBlocks: true, Quotes: `"`, RustLiterals: true}
	// CLike covers languages with // and /* */ comments.
	CLike = Syntax{Name: "c-like", LineComments: []string{"//"}, BlockOpen: "/*", BlockClose: "*/", Quotes: `"'`}
	// Backtick covers C-like languages that also use backtick strings.
	Backtick = Syntax{Name: "backtick", LineComments: []string{"//"}, BlockOpen: "/*", BlockClose: "*/", Quotes: `"'`, RawQuote: '`'}
	// CSS only knows block comments.
	CSS = Syntax{Name: "css", BlockOpen: "/*", BlockClose: "*/", Quotes: `"'`}
	// Hash covers script and config languages with # comments.
	Hash = Syntax{Name: "hash", LineComments: []string{"#"}, Quotes: `"'`, TripleQuotes: true}
	// Shell only treats # as a comment when it starts a word.
	Shell = Syntax{Name: "shell", LineComments: []string{"#"}, Quotes: `"'`, BoundedComments: true}
	// Dash covers SQL-like languages with -- comments.
	Dash = Syntax{Name: "dash", LineComments: []string{"--"}, BlockOpen: "/*", BlockClose: "*/", Quotes: `"'`}
	// Markup covers HTML and XML comments.
	Markup = Syntax{Name: "markup", BlockOpen: "<!--", BlockClose: "-->"}
	// Generic is used when the language is unknown.
	Generic = Syntax{Name: "generic", LineComments: []string{"//"}, BlockOpen: "/*", BlockClose: "*/", Quotes: `"'`}
)

var languageSyntax = map[string]Syntax{
	"rust": Rust, "rs": Rust,

	"go": Backtick, "golang": Backtick,
	"javascript": Backtick, "js": Backtick, "jsx": Backtick, "mjs": Backtick,
	"typescript": Backtick, "ts": Backtick, "tsx": Backtick,

	"c": CLike, "h": CLike, "cpp": CLike, "c++": CLike, "hpp": CLike, "cc": CLike,
	"java": CLike, "kotlin": CLike, "kt": CLike, "swift": CLike, "scala": CLike,
	"csharp": CLike, "cs": CLike, "solidity": CLike, "sol": CLike, "scss": CLike,
	"json5": CLike, "proto": CLike,

	"css": CSS,

	"shell": Shell, "sh": Shell, "bash": Shell, "zsh": Shell,

	"python": Hash, "py": Hash,
	"toml": Hash, "yaml": Hash, "yml": Hash, "ruby": Hash, "rb": Hash,
	"dockerfile": Hash, "makefile": Hash, "r": Hash,

	"sql": Dash, "lua": Dash, "haskell": Dash, "hs": Dash,

	"html": Markup, "htm": Markup, "xml": Markup, "svg": Markup, "vue": Markup,
	"markdown": Markup, "md": Markup, "mdx": Markup,
}

// SyntaxFor resolves the comment syntax for a language name or file extension.
func SyntaxFor(language string) (Syntax, bool) {
	key := strings.ToLower(strings.TrimSpace(language))
	key = strings.TrimPrefix(key, ".")
	syntax, ok := languageSyntax[key]
	return syntax, ok
}

func syntaxFor(candidates ...string) Syntax {
	for _, candidate := range candidates {
		if syntax, ok := SyntaxFor(candidate); ok {
			return syntax
		}
	}
	return Generic
}

// Strip removes comments from code while leaving string literals intact.
// Line comments keep their terminating newline.
func (s Syntax) Strip(code string) string {
	var out strings.Builder
	out.Grow(len(code))

	for i := 0; i < len(code); {
		c := code[i]

		if s.RustLiterals {
			if end, ok := rustLiteralEnd(code, i); ok {
				out.WriteString(code[i:end])
				i = end
				continue
			}
		}

		if s.RawQuote != 0 && c == s.RawQuote {
			end := closingIndex(code, i+1, string(s.RawQuote))
			out.WriteString(code[i:end])
			i = end
			continue
		}

		if strings.IndexByte(s.Quotes, c) >= 0 {
			if s.TripleQuotes && strings.HasPrefix(code[i:], strings.Repeat(string(c), 3)) {
				end := closingIndex(code, i+3, strings.Repeat(string(c), 3))
				out.WriteString(code[i:end])
				i = end
				continue
			}
			end := quotedEnd(code, i)
			out.WriteString(code[i:end])
			i = end
			continue
		}

		if s.BlockOpen != "" && strings.HasPrefix(code[i:], s.BlockOpen) {
			i = s.blockEnd(code, i)
			out.WriteByte(' ')
			continue
		}

		if s.startsLineComment(code, i) {
			next := strings.IndexByte(code[i:], '\n')
			if next < 0 {
				break
			}
			i += next
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String()
}

func (s Syntax) startsLineComment(code string, i int) bool {
	if s.BoundedComments && i > 0 && !isWordSeparator(code[i-1]) {
		return false
	}
	for _, marker := range s.LineComments {
		if strings.HasPrefix(code[i:], marker) {
			return true
		}
	}
	return false
}

func isWordSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ';', '|', '&', '(', ')':
		return true
	}
	return false
}

func (s Syntax) blockEnd(code string, start int) int {
	i := start + len(s.BlockOpen)
	depth := 1
	for i < len(code) {
		switch {
		case s.NestedBlocks && strings.HasPrefix(code[i:], s.BlockOpen):
			depth++
			i += len(s.BlockOpen)
		case strings.HasPrefix(code[i:], s.BlockClose):
			depth--
			i += len(s.BlockClose)
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(code)
}

// quotedEnd returns the index just past a single-line string literal that
// starts at start. Unterminated literals end at the newline.
func quotedEnd(code string, start int) int {
	quote := code[start]
	for i := start + 1; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(code)
}

func closingIndex(code string, from int, delimiter string) int {
	idx := strings.Index(code[from:], delimiter)
	if idx < 0 {
		return len(code)
	}
	return from + idx + len(delimiter)
}

// rustLiteralEnd recognises rust string, raw string and char literals. A
// quote that does not close as a char literal is a lifetime.
func rustLiteralEnd(code string, i int) (int, bool) {
	switch c := code[i]; {
	case c == '"':
		return rustStringEnd(code, i+1), true
	case c == 'r' && (i == 0 || !isIdentByte(code[i-1])):
		return rustRawStringEnd(code, i+1)
	case (c == 'b' || c == 'c') && i+1 < len(code) && code[i+1] == 'r' && (i == 0 || !isIdentByte(code[i-1])):
		return rustRawStringEnd(code, i+2)
	case c == '\'':
		return rustCharEnd(code, i)
	default:
		return 0, false
	}
}

// rustRawStringEnd handles the part of r"..", r#".."#, br".." and cr".."
// after the r prefix.
func rustRawStringEnd(code string, from int) (int, bool) {
	j := from
	for j < len(code) && code[j] == '#' {
		j++
	}
	if j >= len(code) || code[j] != '"' {
		return 0, false
	}
	closing := `"` + strings.Repeat("#", j-from)
	return closingIndex(code, j+1, closing), true
}

func rustStringEnd(code string, from int) int {
	for i := from; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(code)
}

func rustCharEnd(code string, start int) (int, bool) {
	if start+1 >= len(code) {
		return 0, false
	}
	if code[start+1] == '\\' {
		limit := start + 12
		if limit > len(code) {
			limit = len(code)
		}
		for j := start + 3; j < limit; j++ {
			if code[j] == '\'' {
				return j + 1, true
			}
		}
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(code[start+1:])
	closing := start + 1 + size
	if closing < len(code) && code[closing] == '\'' {
		return closing + 1, true
	}
	return 0, false
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
