package query

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tjk113/coil/internal/field"
)

// ParseError reports an unexpected token, a missing delimiter, or a
// malformed declaration.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Parser is a recursive-descent parser over a token sequence with one token
// of lookahead and a remembered previous token.
type Parser struct {
	tokens []Token
	pos    int
	prev   Token
}

// NewParser creates a parser over the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	p.prev = tok
	return tok
}

// previous returns the most recently consumed token. It disambiguates which
// alternative a multi-type match consumed.
func (p *Parser) previous() Token {
	return p.prev
}

// check reports whether the current token is one of the given types.
func (p *Parser) check(types ...TokenType) bool {
	cur := p.peek().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// match consumes the current token if it is one of the given types.
func (p *Parser) match(types ...TokenType) bool {
	if p.check(types...) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails with a ParseError
// describing what was expected.
func (p *Parser) expect(t TokenType, context string) (Token, error) {
	if !p.check(t) {
		return Token{}, parseErrorf("expected %s %s, got %s", t, context, p.peek())
	}
	return p.advance(), nil
}

// Parse lexes and parses a single statement, consuming the entire input.
func Parse(input string) (*Query, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenEOF {
		return nil, parseErrorf("unexpected trailing token %s", p.peek())
	}
	return q, nil
}

// parseQuery dispatches on the statement keyword.
func (p *Parser) parseQuery() (*Query, error) {
	switch tok := p.advance(); tok.Type {
	case TokenGet:
		return p.parseGet()
	case TokenPut:
		return p.parsePut()
	case TokenUpdate:
		return p.parseUpdate()
	case TokenCreate:
		return p.parseCreate()
	case TokenDelete:
		return p.parseDelete()
	default:
		return nil, parseErrorf("expected a statement keyword (GET, PUT, UPDATE, CREATE, DELETE), got %s", tok)
	}
}

// parseGet parses: '*' FROM Identifier (WHERE Expr)?
func (p *Parser) parseGet() (*Query, error) {
	q := &Query{Operation: OpGet}

	if _, err := p.expect(TokenStar, "after GET"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenFrom, "after '*'"); err != nil {
		return nil, err
	}
	table, err := p.expect(TokenIdent, "naming the table")
	if err != nil {
		return nil, err
	}
	q.Table = table.Text

	if p.match(TokenWhere) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, errors.Wrap(err, "invalid WHERE clause")
		}
		q.Condition = cond
	}

	return q, nil
}

// parsePut parses: '[' (Literal (',' Literal)*)? ']' IN Identifier
func (p *Parser) parsePut() (*Query, error) {
	q := &Query{Operation: OpPut, Values: []field.Value{}}

	if _, err := p.expect(TokenLeftBracket, "after PUT"); err != nil {
		return nil, err
	}
	if !p.check(TokenRightBracket) {
		for {
			v, err := p.parseLiteralValue()
			if err != nil {
				return nil, err
			}
			q.Values = append(q.Values, v)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, err := p.expect(TokenRightBracket, "closing the value list"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIn, "after the value list"); err != nil {
		return nil, err
	}
	table, err := p.expect(TokenIdent, "naming the table")
	if err != nil {
		return nil, err
	}
	q.Table = table.Text

	return q, nil
}

// parseCreate parses: DATABASE Identifier
//
//	| TABLE Identifier '[' (Identifier ':' Type (',' ...)*)? ']'
func (p *Parser) parseCreate() (*Query, error) {
	q := &Query{Operation: OpCreate}

	switch {
	case p.match(TokenDatabase):
		name, err := p.expect(TokenIdent, "naming the database")
		if err != nil {
			return nil, err
		}
		q.Database = name.Text
		return q, nil

	case p.match(TokenTable):
		name, err := p.expect(TokenIdent, "naming the table")
		if err != nil {
			return nil, err
		}
		q.Table = name.Text

		if _, err := p.expect(TokenLeftBracket, "opening the column declarations"); err != nil {
			return nil, err
		}
		if !p.check(TokenRightBracket) {
			for {
				col, err := p.parseColumnDef()
				if err != nil {
					return nil, err
				}
				q.Columns = append(q.Columns, col)
				if !p.match(TokenComma) {
					break
				}
			}
		}
		if _, err := p.expect(TokenRightBracket, "closing the column declarations"); err != nil {
			return nil, err
		}
		return q, nil

	default:
		return nil, parseErrorf("expected TABLE or DATABASE after CREATE, got %s", p.peek())
	}
}

// parseColumnDef parses one "name: TYPE" declaration.
func (p *Parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.expect(TokenIdent, "naming the column")
	if err != nil {
		return ColumnDef{}, err
	}
	if _, err := p.expect(TokenColon, "after the column name"); err != nil {
		return ColumnDef{}, err
	}
	switch tok := p.advance(); tok.Type {
	case TokenNumberType:
		return ColumnDef{Name: name.Text, Type: field.TypeNumber}, nil
	case TokenTextType:
		return ColumnDef{Name: name.Text, Type: field.TypeText}, nil
	default:
		return ColumnDef{}, parseErrorf("expected NUMBER or TEXT for column %q, got %s", name.Text, tok)
	}
}

// parseUpdate parses: Identifier SET Identifier '=' Literal (',' ...)* (WHERE Expr)?
func (p *Parser) parseUpdate() (*Query, error) {
	q := &Query{Operation: OpUpdate}

	table, err := p.expect(TokenIdent, "naming the table")
	if err != nil {
		return nil, err
	}
	q.Table = table.Text

	if _, err := p.expect(TokenSet, "after the table name"); err != nil {
		return nil, err
	}
	for {
		column, err := p.expect(TokenIdent, "naming the column to assign")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEqual, "in the assignment"); err != nil {
			return nil, err
		}
		value, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		q.Assignments = append(q.Assignments, Assignment{Column: column.Text, Value: value})
		if !p.match(TokenComma) {
			break
		}
	}

	if p.match(TokenWhere) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, errors.Wrap(err, "invalid WHERE clause")
		}
		q.Condition = cond
	}

	return q, nil
}

// parseDelete parses: ('TABLE'|'DATABASE') Identifier (WHERE Expr)?
// A WHERE clause is only meaningful for table targets (row-level delete).
func (p *Parser) parseDelete() (*Query, error) {
	q := &Query{Operation: OpDelete}

	switch {
	case p.match(TokenTable):
		name, err := p.expect(TokenIdent, "naming the table")
		if err != nil {
			return nil, err
		}
		q.Table = name.Text
		if p.match(TokenWhere) {
			cond, err := p.parseExpression()
			if err != nil {
				return nil, errors.Wrap(err, "invalid WHERE clause")
			}
			q.Condition = cond
		}
		return q, nil

	case p.match(TokenDatabase):
		name, err := p.expect(TokenIdent, "naming the database")
		if err != nil {
			return nil, err
		}
		q.Database = name.Text
		return q, nil

	default:
		return nil, parseErrorf("expected TABLE or DATABASE after DELETE, got %s", p.peek())
	}
}

// parseLiteralValue parses a literal token, with an optional sign prefix on
// numbers, into a field value.
func (p *Parser) parseLiteralValue() (field.Value, error) {
	negate := false
	if p.match(TokenMinus, TokenPlus) {
		negate = p.previous().Type == TokenMinus
		if !p.check(TokenInteger, TokenFloat) {
			return field.None(), parseErrorf("expected a number after %s, got %s", p.previous(), p.peek())
		}
	}

	switch tok := p.advance(); tok.Type {
	case TokenInteger:
		if negate {
			return field.Integer(-tok.Int), nil
		}
		return field.Integer(tok.Int), nil
	case TokenFloat:
		if negate {
			return field.Float(-tok.Float), nil
		}
		return field.Float(tok.Float), nil
	case TokenString:
		return field.Text(tok.Text), nil
	case TokenNone:
		return field.None(), nil
	default:
		return field.None(), parseErrorf("expected a literal value, got %s", tok)
	}
}
