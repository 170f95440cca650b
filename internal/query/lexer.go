package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// LexError reports an unterminated string, a malformed numeric literal, or
// an unrecognized character.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Pos, e.Msg)
}

// Lexer tokenizes query statements.
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer over the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = rune(l.input[l.pos])
	}
	l.pos++
}

// peekChar looks at the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return rune(l.input[l.pos])
}

// skipWhitespace skips whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// errorf builds a LexError at the current position.
func (l *Lexer) errorf(format string, args ...interface{}) *LexError {
	return &LexError{Pos: l.pos - 1, Msg: fmt.Sprintf(format, args...)}
}

// readString reads a double-quoted string. Escape sequences are not
// supported; the string ends at the next double quote.
func (l *Lexer) readString() (string, error) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != '"' {
		if l.ch == 0 {
			return "", l.errorf("unterminated string")
		}
		result.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote

	return result.String(), nil
}

// readNumber reads a run starting with a digit and classifies it. A run
// containing '.' is a Float; a run with a literal 0x prefix is a hex
// Integer; anything else must be a plain decimal Integer. Letters inside
// the run that don't fit those forms are a malformed literal, never an
// identifier.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos - 1
	var raw strings.Builder
	for unicode.IsDigit(l.ch) || unicode.IsLetter(l.ch) || l.ch == '.' {
		raw.WriteRune(l.ch)
		l.readChar()
	}
	text := raw.String()

	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("malformed float literal %q", text)}
		}
		return Token{Type: TokenFloat, Text: text, Float: f}, nil
	}
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		i, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("malformed hex literal %q", text)}
		}
		return Token{Type: TokenInteger, Text: text, Int: i}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("malformed number literal %q", text)}
	}
	return Token{Type: TokenInteger, Text: text, Int: i}, nil
}

// readIdentifier reads an identifier or keyword. Casing is preserved in the
// token text; keyword matching happens on the lowered form.
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// keywords maps the lowered spelling of every keyword to its token type.
var keywords = map[string]TokenType{
	"get":      TokenGet,
	"put":      TokenPut,
	"update":   TokenUpdate,
	"create":   TokenCreate,
	"delete":   TokenDelete,
	"in":       TokenIn,
	"from":     TokenFrom,
	"where":    TokenWhere,
	"set":      TokenSet,
	"table":    TokenTable,
	"database": TokenDatabase,
	"number":   TokenNumberType,
	"text":     TokenTextType,
	"and":      TokenAnd,
	"or":       TokenOr,
	"xor":      TokenXor,
	"not":      TokenNot,
	"none":     TokenNone,
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF}, nil
	case '*':
		l.readChar()
		return Token{Type: TokenStar, Text: "*"}, nil
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Text: ","}, nil
	case '.':
		l.readChar()
		return Token{Type: TokenPeriod, Text: "."}, nil
	case ':':
		l.readChar()
		return Token{Type: TokenColon, Text: ":"}, nil
	case '[':
		l.readChar()
		return Token{Type: TokenLeftBracket, Text: "["}, nil
	case ']':
		l.readChar()
		return Token{Type: TokenRightBracket, Text: "]"}, nil
	case '(':
		l.readChar()
		return Token{Type: TokenLeftParen, Text: "("}, nil
	case ')':
		l.readChar()
		return Token{Type: TokenRightParen, Text: ")"}, nil
	case '+':
		l.readChar()
		return Token{Type: TokenPlus, Text: "+"}, nil
	case '-':
		l.readChar()
		return Token{Type: TokenMinus, Text: "-"}, nil
	case '/':
		l.readChar()
		return Token{Type: TokenSlash, Text: "/"}, nil
	case '^':
		l.readChar()
		return Token{Type: TokenCaret, Text: "^"}, nil
	case '%':
		l.readChar()
		return Token{Type: TokenPercent, Text: "%"}, nil
	case '=':
		l.readChar()
		return Token{Type: TokenEqual, Text: "="}, nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenNotEqual, Text: "!="}, nil
		}
		return Token{}, l.errorf("expected '=' after '!'")
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenLessEqual, Text: "<="}, nil
		}
		l.readChar()
		return Token{Type: TokenLess, Text: "<"}, nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenGreaterEqual, Text: ">="}, nil
		}
		l.readChar()
		return Token{Type: TokenGreater, Text: ">"}, nil
	case '"':
		s, err := l.readString()
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenString, Text: s}, nil
	}

	if unicode.IsDigit(l.ch) {
		return l.readNumber()
	}
	if unicode.IsLetter(l.ch) || l.ch == '_' {
		value := l.readIdentifier()
		if tokType, ok := keywords[strings.ToLower(value)]; ok {
			return Token{Type: tokType, Text: value}, nil
		}
		return Token{Type: TokenIdent, Text: value}, nil
	}

	return Token{}, l.errorf("unrecognized character %q", l.ch)
}

// Tokenize returns all tokens from the input, consuming it entirely. The
// terminating EOF token is not included.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
