package query

import "fmt"

// TokenType represents the type of a token.
type TokenType int

const (
	// Operations
	TokenGet TokenType = iota
	TokenPut
	TokenUpdate
	TokenCreate
	TokenDelete

	// Keywords
	TokenIn
	TokenFrom
	TokenWhere
	TokenSet
	TokenTable
	TokenDatabase
	TokenNumberType
	TokenTextType

	// Comparison and logical operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenAnd
	TokenOr
	TokenXor
	TokenNot

	// Arithmetic operators (TokenStar doubles as the GET projection)
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenCaret   // ^
	TokenPercent // %

	// Delimiters
	TokenComma        // ,
	TokenPeriod       // .
	TokenColon        // :
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftParen    // (
	TokenRightParen   // )

	// Literals
	TokenInteger
	TokenFloat
	TokenString
	TokenNone
	TokenIdent

	// Special
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenGet:          "GET",
	TokenPut:          "PUT",
	TokenUpdate:       "UPDATE",
	TokenCreate:       "CREATE",
	TokenDelete:       "DELETE",
	TokenIn:           "IN",
	TokenFrom:         "FROM",
	TokenWhere:        "WHERE",
	TokenSet:          "SET",
	TokenTable:        "TABLE",
	TokenDatabase:     "DATABASE",
	TokenNumberType:   "NUMBER",
	TokenTextType:     "TEXT",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenXor:          "XOR",
	TokenNot:          "NOT",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenCaret:        "^",
	TokenPercent:      "%",
	TokenComma:        ",",
	TokenPeriod:       ".",
	TokenColon:        ":",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenInteger:      "integer",
	TokenFloat:        "float",
	TokenString:       "string",
	TokenNone:         "NONE",
	TokenIdent:        "identifier",
	TokenEOF:          "end of input",
}

// String returns a readable name for error messages.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token represents a lexical token. Text holds the raw spelling (with the
// original casing for identifiers); Int and Float carry the parsed numeric
// payloads for the corresponding literal types.
type Token struct {
	Type  TokenType
	Text  string
	Int   int64
	Float float64
}

// String renders the token for error messages.
func (t Token) String() string {
	switch t.Type {
	case TokenString:
		return fmt.Sprintf("%q", t.Text)
	case TokenInteger, TokenFloat, TokenIdent:
		return t.Text
	default:
		return t.Type.String()
	}
}
