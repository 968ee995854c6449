package tokenizer

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"gqlfmt/gqlerror"
)

type TokenType uint

const (
	PUNCTUATOR TokenType = iota
	NAME
	INT
	FLOAT
	STRING
	BLOCK_STRING

	// BLOCK_COMMENT is a comment that is the only token on its line. It
	// belongs to the token that follows it.
	BLOCK_COMMENT
	// INLINE_COMMENT trails another token on the same line and belongs to it.
	INLINE_COMMENT
)

func (t TokenType) String() string {
	switch t {
	case PUNCTUATOR:
		return "PUNCTUATOR"
	case NAME:
		return "NAME"
	case INT:
		return "INT_VALUE"
	case FLOAT:
		return "FLOAT_VALUE"
	case STRING:
		return "STRING_VALUE"
	case BLOCK_STRING:
		return "BLOCK_STRING_VALUE"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	case INLINE_COMMENT:
		return "INLINE_COMMENT"
	}
	return "UNKNOWN"
}

// IsComment reports whether the token type is one of the two comment types.
func (t TokenType) IsComment() bool {
	return t == BLOCK_COMMENT || t == INLINE_COMMENT
}

// Token is a lexical or comment token. For strings Literal holds the decoded
// value, for comments the text after '#' without surrounding whitespace.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	switch t.Type {
	case PUNCTUATOR:
		return fmt.Sprintf("%s(%s)@%d:%d", t.Type, t.Literal, t.Line, t.Column)
	default:
		return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Line, t.Column)
	}
}

const (
	punctuators = "!$&():=@[]{|}"
	bom         = "\uFEFF"
)

// Tokenizer is a forward-only pull iterator over the tokens of a source string.
type Tokenizer struct {
	src    string
	pos    int
	line   int
	column int

	// lineHasToken is set once a lexical token was emitted on the current line.
	lineHasToken bool

	err error
}

func New(source string) *Tokenizer {
	return &Tokenizer{src: source, line: 1, column: 1}
}

// Tokenize returns the lazy token sequence of source. Iteration stops after
// the first error. Each range over the sequence starts from the beginning.
func Tokenize(source string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		t := New(source)
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// All collects every token of source.
func All(source string) ([]Token, error) {
	var tokens []Token
	for tok, err := range Tokenize(source) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Next returns the next token, io.EOF at the end of input, or a
// *gqlerror.Error. Errors are sticky.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	tok, err := t.next()
	if err != nil {
		t.err = err
	}
	return tok, err
}

func (t *Tokenizer) next() (Token, error) {
	for t.pos < len(t.src) {
		c := t.src[t.pos]

		// comments come first, the line state decides their type
		if c == '#' {
			return t.readComment(), nil
		}

		switch {
		case c == ' ' || c == '\t' || c == ',':
			t.advance(1)
			continue
		case c == '\n' || c == '\r':
			t.advance(1)
			continue
		case strings.HasPrefix(t.src[t.pos:], bom):
			t.advance(len(bom))
			continue
		}

		return t.readLexical()
	}
	return Token{}, io.EOF
}

func (t *Tokenizer) readComment() Token {
	end := t.pos
	for end < len(t.src) && t.src[end] != '\n' && t.src[end] != '\r' {
		end++
	}
	typ := BLOCK_COMMENT
	if t.lineHasToken {
		typ = INLINE_COMMENT
	}
	tok := t.token(typ, strings.TrimSpace(t.src[t.pos+1:end]))
	t.advance(end - t.pos)
	return tok
}

func (t *Tokenizer) readLexical() (Token, error) {
	rest := t.src[t.pos:]
	c := rest[0]

	switch {
	case strings.HasPrefix(rest, "..."):
		return t.emit(PUNCTUATOR, "...", 3), nil
	case strings.IndexByte(punctuators, c) >= 0:
		return t.emit(PUNCTUATOR, rest[:1], 1), nil
	case isNameStart(c):
		n := 1
		for n < len(rest) && isNameContinue(rest[n]) {
			n++
		}
		return t.emit(NAME, rest[:n], n), nil
	case c == '-' || isDigit(c):
		return t.readNumber()
	case strings.HasPrefix(rest, `"""`):
		return t.readBlockString()
	case c == '"':
		return t.readString()
	}
	return Token{}, t.syntaxError()
}

func (t *Tokenizer) readNumber() (Token, error) {
	rest := t.src[t.pos:]
	n := 0
	if rest[n] == '-' {
		n++
	}
	if n >= len(rest) || !isDigit(rest[n]) {
		return Token{}, t.syntaxError()
	}
	if rest[n] == '0' {
		n++
		if n < len(rest) && isDigit(rest[n]) {
			return Token{}, t.syntaxError()
		}
	} else {
		n = skipDigits(rest, n)
	}

	typ := INT
	if n < len(rest) && rest[n] == '.' {
		n++
		if n >= len(rest) || !isDigit(rest[n]) {
			return Token{}, t.syntaxError()
		}
		n = skipDigits(rest, n)
		typ = FLOAT
	}
	if n < len(rest) && (rest[n] == 'e' || rest[n] == 'E') {
		n++
		if n < len(rest) && (rest[n] == '+' || rest[n] == '-') {
			n++
		}
		if n >= len(rest) || !isDigit(rest[n]) {
			return Token{}, t.syntaxError()
		}
		n = skipDigits(rest, n)
		typ = FLOAT
	}

	// a number must not run into a name or another fraction
	if n < len(rest) && (rest[n] == '.' || isNameStart(rest[n])) {
		return Token{}, t.syntaxError()
	}
	return t.emit(typ, rest[:n], n), nil
}

func (t *Tokenizer) readBlockString() (Token, error) {
	rest := t.src[t.pos:]
	i := 3
	for {
		switch {
		case i >= len(rest):
			return Token{}, t.syntaxError()
		case strings.HasPrefix(rest[i:], `\"""`):
			i += 4
			continue
		case strings.HasPrefix(rest[i:], `"""`):
			raw := strings.ReplaceAll(rest[3:i], `\"""`, `"""`)
			return t.emit(BLOCK_STRING, BlockStringValue(raw), i+3), nil
		}
		i++
	}
}

func (t *Tokenizer) readString() (Token, error) {
	rest := t.src[t.pos:]
	var b strings.Builder
	i := 1
	for {
		if i >= len(rest) || rest[i] == '\n' || rest[i] == '\r' {
			return Token{}, t.syntaxError()
		}
		switch rest[i] {
		case '"':
			return t.emit(STRING, b.String(), i+1), nil
		case '\\':
			n, err := t.readEscape(rest, i, &b)
			if err != nil {
				return Token{}, err
			}
			i += n
		default:
			r, size := utf8.DecodeRuneInString(rest[i:])
			b.WriteRune(r)
			i += size
		}
	}
}

// readEscape decodes the escape sequence at rest[i] into b and returns its
// length in bytes.
func (t *Tokenizer) readEscape(rest string, i int, b *strings.Builder) (int, error) {
	if i+1 >= len(rest) {
		return 0, t.escapeError(rest, i, "Unterminated escape sequence")
	}
	switch e := rest[i+1]; e {
	case '"', '\\', '/':
		b.WriteByte(e)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		return t.readUnicodeEscape(rest, i, b)
	default:
		return 0, t.escapeError(rest, i, "Invalid escape sequence: \\%c", e)
	}
	return 2, nil
}

func (t *Tokenizer) readUnicodeEscape(rest string, i int, b *strings.Builder) (int, error) {
	if strings.HasPrefix(rest[i:], `\u{`) {
		end := strings.IndexByte(rest[i:], '}')
		if end < 0 {
			return 0, t.escapeError(rest, i, "Unterminated unicode escape sequence")
		}
		digits := rest[i+3 : i+end]
		cp, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || digits == "" || cp > utf8.MaxRune || isSurrogate(rune(cp)) {
			return 0, t.escapeError(rest, i, "Invalid unicode code point: \\u{%s}", digits)
		}
		b.WriteRune(rune(cp))
		return end + 1, nil
	}

	cp, ok := hex4(rest, i+2)
	if !ok {
		return 0, t.escapeError(rest, i, "Invalid unicode escape sequence: %s", gqlerror.Preview(rest[i:min(i+6, len(rest))]))
	}
	switch {
	case cp >= 0xD800 && cp <= 0xDBFF:
		if !strings.HasPrefix(rest[i+6:], `\u`) {
			return 0, t.escapeError(rest, i, "Unpaired surrogate: \\u%04X", cp)
		}
		low, ok := hex4(rest, i+8)
		if !ok || low < 0xDC00 || low > 0xDFFF {
			return 0, t.escapeError(rest, i, "Unpaired surrogate: \\u%04X", cp)
		}
		b.WriteRune((cp-0xD800)<<10 + (low - 0xDC00) + 0x10000)
		return 12, nil
	case cp >= 0xDC00 && cp <= 0xDFFF:
		return 0, t.escapeError(rest, i, "Unpaired surrogate: \\u%04X", cp)
	}
	b.WriteRune(cp)
	return 6, nil
}

// BlockStringValue normalizes the raw content of a block string: the common
// indentation of lines 2..N is removed and leading and trailing blank lines
// are dropped.
func BlockStringValue(raw string) string {
	lines := splitLines(raw)

	common := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue
		}
		if common == -1 || indent < common {
			common = indent
		}
	}
	if common > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < common {
				lines[i] = ""
			} else {
				lines[i] = lines[i][common:]
			}
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (t *Tokenizer) emit(typ TokenType, literal string, n int) Token {
	tok := t.token(typ, literal)
	t.advance(n)
	t.lineHasToken = true
	return tok
}

func (t *Tokenizer) token(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: t.line, Column: t.column}
}

// advance consumes n bytes and keeps the line and column counters in sync.
func (t *Tokenizer) advance(n int) {
	end := t.pos + n
	for t.pos < end {
		c := t.src[t.pos]
		switch {
		case c == '\r' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '\n':
			t.pos++
			fallthrough
		case c == '\n' || c == '\r':
			t.pos++
			t.line++
			t.column = 1
			t.lineHasToken = false
		default:
			_, size := utf8.DecodeRuneInString(t.src[t.pos:])
			t.pos += size
			t.column++
		}
	}
}

func (t *Tokenizer) syntaxError() *gqlerror.Error {
	preview := gqlerror.Preview(t.src[t.pos:])
	err := gqlerror.New(gqlerror.KindSyntax, t.line, t.column, "Unexpected character: %q", preview)
	err.Excerpt = preview
	return err
}

func (t *Tokenizer) escapeError(rest string, i int, format string, args ...any) *gqlerror.Error {
	column := t.column + utf8.RuneCountInString(rest[:i])
	err := gqlerror.New(gqlerror.KindEscape, t.line, column, format, args...)
	err.Excerpt = gqlerror.Preview(rest)
	return err
}

func hex4(s string, i int) (rune, bool) {
	if i+4 > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[i:i+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return leadingWhitespace(s) == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}
