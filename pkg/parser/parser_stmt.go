package parser

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// parseConditional parses:
//
//	"if" condition [sep] "then" block ["else" block] "fi"
func (p *Parser) parseConditional() (core.Stmt, error) {
	start := p.advance().Pos // if

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	p.skipSeparators()
	if _, err := p.expect(token.THEN, "'then'"); err != nil {
		return nil, err
	}

	then, err := p.parseBlock("'fi'", token.ELSE, token.FI)
	if err != nil {
		return nil, err
	}

	var els []core.Stmt
	var elsePos token.Position
	if tok := p.cur(); p.match(token.ELSE) {
		elsePos = tok.Pos
		els, err = p.parseBlock("'fi'", token.FI)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.FI, "'fi'"); err != nil {
		return nil, err
	}

	return &core.Conditional{
		NodeInfo:  p.span(start),
		Condition: cond,
		Then:      then,
		Else:      els,
		ElsePos:   elsePos,
	}, nil
}

// parseLoop parses:
//
//	"for" WORD "in" expr [sep] "do" block "done"
//	"while" condition [sep] "do" block "done"
func (p *Parser) parseLoop() (core.Stmt, error) {
	kw := p.advance()
	loop := &core.Loop{}

	if kw.Type == token.FOR {
		loop.Kind = core.LoopFor

		name, err := p.expect(token.WORD, "loop variable")
		if err != nil {
			return nil, err
		}
		loop.Variable = name.Literal

		if err := p.expectWord("in"); err != nil {
			return nil, err
		}
		if loop.Iterable, err = p.parseExpression(); err != nil {
			return nil, err
		}
	} else {
		loop.Kind = core.LoopWhile

		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		loop.Condition = cond
	}

	p.skipSeparators()
	if _, err := p.expect(token.DO, "'do'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock("'done'", token.DONE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DONE, "'done'"); err != nil {
		return nil, err
	}

	loop.Body = body
	loop.NodeInfo = p.span(kw.Pos)
	return loop, nil
}

// parseFunction parses:
//
//	"function" WORD "(" ")" [newlines] "{" block "}"
func (p *Parser) parseFunction() (core.Stmt, error) {
	start := p.advance().Pos // function

	name, err := p.expect(token.WORD, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock("'}'", token.RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}

	return &core.FunctionDecl{
		NodeInfo: p.span(start),
		Name:     name.Literal,
		Body:     body,
	}, nil
}

// parseAssignment parses:
//
//	WORD "=" expr
func (p *Parser) parseAssignment() (core.Stmt, error) {
	name := p.advance()

	if err := p.expectWord("="); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &core.Assignment{
		NodeInfo: p.span(name.Pos),
		Name:     name.Literal,
		Value:    value,
	}, nil
}
