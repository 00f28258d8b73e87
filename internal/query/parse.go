// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package query

import (
	"errors"
	"fmt"

	"github.com/dalzilio/tpnv/internal/model"
)

// ErrUnknownName is returned when a query text references a name the
// Context has no variable or clock declaration for.
var ErrUnknownName = errors.New("query: unknown name")

// Parse compiles a query text against ctx (used to resolve variable and
// clock names to their indices) into a Query. The grammar, from loosest to
// tightest binding: quantifier (E/A/Pr) > F/G > | > & > U/=> > !/X >
// comparisons > +/- > * > unary minus.
func Parse(text string, ctx *model.Context) (*Query, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, ctx: ctx}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("query: unexpected trailing input at %q", p.peek().text)
	}
	return q, nil
}

type parser struct {
	toks []token
	pos  int
	ctx  *model.Context
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.peek().kind != k {
		return token{}, fmt.Errorf("query: expected %s, got %q", what, p.peek().text)
	}
	return p.advance(), nil
}

func (p *parser) parseQuery() (*Query, error) {
	switch p.peek().kind {
	case tokExists:
		p.advance()
		c, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return &Query{Quantifier: QuantifierExists, Condition: c}, nil
	case tokForAll:
		p.advance()
		c, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return &Query{Quantifier: QuantifierForAll, Condition: c}, nil
	case tokProb:
		p.advance()
		if _, err := p.expect(tokLParen, "'(' after Pr"); err != nil {
			return nil, err
		}
		target, err := p.expect(tokNumber, "a numeric probability target")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')' after probability target"); err != nil {
			return nil, err
		}
		c, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return &Query{Quantifier: QuantifierProbability, Condition: c, Target: target.num}, nil
	default:
		c, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return &Query{Quantifier: QuantifierLTL, Condition: c}, nil
	}
}

func (p *parser) parseFG() (Condition, error) {
	switch p.peek().kind {
	case tokFinally:
		p.advance()
		inner, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return Finally{Inner: inner}, nil
	case tokGlobally:
		p.advance()
		inner, err := p.parseFG()
		if err != nil {
			return nil, err
		}
		return Globally{Inner: inner}, nil
	default:
		return p.parseOr()
	}
}

func (p *parser) parseOr() (Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Condition, error) {
	left, err := p.parseUntilImplies()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseUntilImplies()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUntilImplies() (Condition, error) {
	left, err := p.parseNotNext()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokUntil:
			p.advance()
			right, err := p.parseNotNext()
			if err != nil {
				return nil, err
			}
			left = Until{Left: left, Right: right}
		case tokImplies:
			p.advance()
			right, err := p.parseNotNext()
			if err != nil {
				return nil, err
			}
			left = Or{Left: Not{Inner: left}, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseNotNext() (Condition, error) {
	switch p.peek().kind {
	case tokNot:
		p.advance()
		inner, err := p.parseNotNext()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	case tokNext:
		p.advance()
		inner, err := p.parseNotNext()
		if err != nil {
			return nil, err
		}
		return Next{Inner: inner}, nil
	default:
		return p.parseComparison()
	}
}

// parseComparison parses a leaf condition: "deadlock", a parenthesized
// sub-condition, or "expr relop expr". A '(' is ambiguous between a
// grouped condition (e.g. "(p & q)") and a grouped arithmetic operand
// (e.g. "(x+1) < 5"); this is resolved by trying the condition reading
// first and backtracking to the arithmetic reading if what follows the
// matching ')' turns out to be a comparison operator rather than the end
// of a leaf condition.
func (p *parser) parseComparison() (Condition, error) {
	if p.peek().kind == tokDeadlock {
		p.advance()
		return Deadlock{}, nil
	}
	if p.peek().kind == tokLParen {
		save := p.pos
		p.advance()
		if cond, err := p.parseFG(); err == nil {
			if _, rerr := p.expect(tokRParen, "')'"); rerr == nil {
				if !isCompareOp(p.peek().kind) {
					return cond, nil
				}
			}
		}
		p.pos = save
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	op, err := p.parseCompareOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Compare{Op: op, Left: left, Right: right}, nil
}

func isCompareOp(k tokenKind) bool {
	switch k {
	case tokLt, tokLe, tokGt, tokGe, tokEq, tokNe:
		return true
	}
	return false
}

func (p *parser) parseCompareOp() (CompareOp, error) {
	switch p.peek().kind {
	case tokLt:
		p.advance()
		return OpLt, nil
	case tokLe:
		p.advance()
		return OpLe, nil
	case tokGt:
		p.advance()
		return OpGt, nil
	case tokGe:
		p.advance()
		return OpGe, nil
	case tokEq:
		p.advance()
		return OpEq, nil
	case tokNe:
		p.advance()
		return OpNe, nil
	default:
		return 0, fmt.Errorf("query: expected a comparison operator, got %q", p.peek().text)
	}
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPlus || p.peek().kind == tokMinus {
		op := OpAdd
		if p.peek().kind == tokMinus {
			op = OpSub
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = BinExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokStar {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = BinExpr{Op: OpMul, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokMinus {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg{Inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.peek().kind {
	case tokNumber:
		t := p.advance()
		return Const(t.num), nil
	case tokLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		t := p.advance()
		return p.resolveName(t.text)
	default:
		return nil, fmt.Errorf("query: expected a number or a name, got %q", p.peek().text)
	}
}

func (p *parser) resolveName(name string) (Expr, error) {
	if p.ctx != nil {
		if idx, ok := p.ctx.VarIndex(name); ok {
			return VarRef{Idx: idx, Name: name}, nil
		}
		if idx, ok := p.ctx.ClockIndex(name); ok {
			return ClockRef{Idx: idx, Name: name}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
}
