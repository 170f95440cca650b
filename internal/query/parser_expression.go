package query

import "github.com/tjk113/coil/internal/field"

// Expression parsing is a precedence ladder, lowest to highest:
//
//	or/xor → and → not → equality → comparison → term → factor → sign → primary
//
// Each level parses the next-higher level once, then folds further operands
// left-associatively while its own operators keep appearing. NOT sits below
// the comparisons so that NOT a = 1 negates the whole comparison.

// parseExpression parses a full expression at the lowest precedence level.
func (p *Parser) parseExpression() (Expression, error) {
	return p.parseOr()
}

// parseOr parses OR and XOR expressions (lowest precedence).
func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(TokenOr, TokenXor) {
		op := p.previous().Type
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseAnd parses AND expressions.
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.match(TokenAnd) {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: TokenAnd, Right: right}
	}
	return left, nil
}

// parseNot parses NOT prefix expressions.
func (p *Parser) parseNot() (Expression, error) {
	if p.match(TokenNot) {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: TokenNot, Operand: operand}, nil
	}
	return p.parseEquality()
}

// parseEquality parses = and != expressions.
func (p *Parser) parseEquality() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(TokenEqual, TokenNotEqual) {
		op := p.previous().Type
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseComparison parses <, <=, > and >= expressions.
func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.match(TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual) {
		op := p.previous().Type
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseTerm parses + and - expressions.
func (p *Parser) parseTerm() (Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.match(TokenPlus, TokenMinus) {
		op := p.previous().Type
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseFactor parses *, /, ^ and % expressions.
func (p *Parser) parseFactor() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(TokenStar, TokenSlash, TokenCaret, TokenPercent) {
		op := p.previous().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseUnary parses - and + sign prefix expressions.
func (p *Parser) parseUnary() (Expression, error) {
	if p.match(TokenMinus, TokenPlus) {
		op := p.previous().Type
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses a literal, an identifier, or a parenthesized
// sub-expression grouped back down at the lowest precedence level.
func (p *Parser) parsePrimary() (Expression, error) {
	switch tok := p.advance(); tok.Type {
	case TokenInteger:
		return &Literal{Val: field.Integer(tok.Int)}, nil
	case TokenFloat:
		return &Literal{Val: field.Float(tok.Float)}, nil
	case TokenString:
		return &Literal{Val: field.Text(tok.Text)}, nil
	case TokenNone:
		return &Literal{Val: field.None()}, nil
	case TokenIdent:
		return &Identifier{Name: tok.Text}, nil
	case TokenLeftParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "closing the group"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, parseErrorf("expected an expression, got %s", tok)
	}
}
