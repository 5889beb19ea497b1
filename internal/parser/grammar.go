// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"slices"

	"github.com/pheres-lang/pheres/internal/syntax"
)

var (
	terminator      = []syntax.Kind{syntax.Dot}
	clauseEnd       = []syntax.Kind{syntax.Dot, syntax.Semi}
	formulaMarkers  = []syntax.Kind{syntax.BangBang, syntax.Bang, syntax.Question, syntax.MinusPlus, syntax.Plus, syntax.Minus}
	additiveOps     = []syntax.Kind{syntax.Plus, syntax.Minus}
	multiplyOps     = []syntax.Kind{syntax.Star, syntax.Slash, syntax.Div, syntax.Mod}
	openBrackets    = []syntax.Kind{syntax.OpenParen, syntax.OpenBracket, syntax.OpenBrace}
	closeBrackets   = []syntax.Kind{syntax.CloseParen, syntax.CloseBracket, syntax.CloseBrace}
	atomTerminators = []syntax.Kind{
		syntax.Dot,
		syntax.Semi,
		syntax.Comma,
		syntax.CloseParen,
		syntax.CloseBracket,
		syntax.CloseBrace,
		syntax.Arrow,
		syntax.Colon,
		syntax.Define,
		syntax.Eof,
	}
)

// Statement = BeliefOrRule | InitialGoal | Plan
func (p *parser) parseStatement() {
	switch p.current() {
	case syntax.Functor:
		p.parseBeliefOrRule()
	case syntax.Bang:
		p.parseInitialGoal()
	case syntax.At, syntax.Plus, syntax.Minus:
		p.parsePlan()
	default:
		p.recover("a belief, rule, initial goal or plan", nil, terminator)
	}
}

func (p *parser) parseTerminator() {
	if !p.eat(syntax.Dot) {
		p.recover("'.'", nil, terminator)
	}
}

// Belief = Literal "."
// Rule = Literal ":-" Term "."
func (p *parser) parseBeliefOrRule() {
	cp := p.checkpoint()
	p.parseLiteral()
	if p.at(syntax.Define) {
		p.builder.StartNodeAt(cp, syntax.Rule)
		p.bump()
		p.parseTerm()
	} else {
		p.builder.StartNodeAt(cp, syntax.Belief)
	}
	p.parseTerminator()
	p.builder.FinishNode()
}

// InitialGoal = "!" Literal "."
func (p *parser) parseInitialGoal() {
	p.startNode(syntax.InitialGoal)
	defer p.builder.FinishNode()

	p.bump()
	if !p.at(syntax.Functor) {
		p.recover("a literal", nil, terminator)
		return
	}
	p.parseLiteral()
	p.parseTerminator()
}

// Plan = { "@" Literal } Trigger [ ":" Term ] ( Body | "." )
func (p *parser) parsePlan() {
	p.startNode(syntax.Plan)
	defer p.builder.FinishNode()

	for p.at(syntax.At) {
		p.startNode(syntax.PlanAnnotation)
		p.bump()
		if p.at(syntax.Functor) {
			p.parseLiteral()
		} else {
			p.expected("a literal")
		}
		p.builder.FinishNode()
	}

	switch p.parseTrigger() {
	case syntax.Dot, syntax.Eof:
		return
	}

	if p.at(syntax.Colon) {
		p.startNode(syntax.PlanContext)
		p.bump()
		p.parseTerm()
		p.builder.FinishNode()
	}

	if p.at(syntax.Arrow) {
		p.parseBody()
		return
	}
	p.parseTerminator()
}

// Trigger = ( "+" | "-" ) [ "!" ] Literal
//
// A missing sign is reported but the rest of the trigger is still parsed. The
// result is the kind that ended recovery of a missing literal, or Unknown
// when no recovery happened.
func (p *parser) parseTrigger() syntax.Kind {
	p.startNode(syntax.Trigger)
	defer p.builder.FinishNode()

	if !p.eat(syntax.Plus) && !p.eat(syntax.Minus) {
		p.expected("'+' or '-'")
	}
	_ = p.eat(syntax.Bang)
	if !p.at(syntax.Functor) {
		return p.recover("a literal", []syntax.Kind{syntax.Colon, syntax.Arrow}, terminator)
	}
	p.parseLiteral()
	return syntax.Unknown
}

// Body = "<-" Formula { ";" Formula } "."
func (p *parser) parseBody() {
	p.startNode(syntax.PlanBody)
	defer p.builder.FinishNode()

	p.bump()
	for {
		p.parseFormula()
		if p.eat(syntax.Semi) {
			continue
		}
		if p.eat(syntax.Dot) {
			return
		}
		if p.recover("';' or '.'", nil, clauseEnd) != syntax.Semi {
			return
		}
	}
}

// Formula = [ "!!" | "!" | "?" | "-+" | "+" | "-" ] Term
func (p *parser) parseFormula() {
	p.startNode(syntax.Formula)
	if p.atAny(formulaMarkers...) {
		p.bump()
	}
	p.parseTerm()
	p.builder.FinishNode()
}

// Literal = functor [ "(" [ Terms ] ")" ] [ "[" [ Terms ] "]" ]
func (p *parser) parseLiteral() {
	p.startNode(syntax.Literal)
	p.bump()
	if p.at(syntax.OpenParen) {
		p.parseTerms(syntax.ArgumentList, syntax.CloseParen, "',' or ')'")
	}
	if p.at(syntax.OpenBracket) {
		p.parseTerms(syntax.AnnotationList, syntax.CloseBracket, "',' or ']'")
	}
	p.builder.FinishNode()
}

// Terms = Term { "," Term }
func (p *parser) parseTerms(kind syntax.Kind, closer syntax.Kind, expecting string) {
	p.startNode(kind)
	defer p.builder.FinishNode()

	p.bump()
	if p.eat(closer) {
		return
	}
	for {
		p.parseTerm()
		if p.eat(syntax.Comma) {
			continue
		}
		if !p.eat(closer) {
			p.recover(expecting, clauseEnd, []syntax.Kind{closer})
		}
		return
	}
}

// Term = Conjunction { "|" Conjunction }
func (p *parser) parseTerm() {
	p.binary(syntax.Disjunction, []syntax.Kind{syntax.Or}, p.parseConjunction)
}

// Conjunction = Negation { "&" Negation }
func (p *parser) parseConjunction() {
	p.binary(syntax.Conjunction, []syntax.Kind{syntax.And}, p.parseNegation)
}

// Negation = "not" Negation | Comparison
func (p *parser) parseNegation() {
	if !p.at(syntax.Not) {
		p.parseComparison()
		return
	}
	p.startNode(syntax.Negation)
	p.bump()
	p.parseNegation()
	p.builder.FinishNode()
}

// Comparison = Additive [ CompareOp Additive ]
func (p *parser) parseComparison() {
	cp := p.checkpoint()
	p.parseAdditive()
	if p.current().IsComparison() {
		p.builder.StartNodeAt(cp, syntax.Comparison)
		p.bump()
		p.parseAdditive()
		p.builder.FinishNode()
	}
}

// Additive = Multiplicative { ( "+" | "-" ) Multiplicative }
func (p *parser) parseAdditive() {
	p.binary(syntax.Additive, additiveOps, p.parseMultiplicative)
}

// Multiplicative = Unary { ( "*" | "/" | "div" | "mod" ) Unary }
func (p *parser) parseMultiplicative() {
	p.binary(syntax.Multiplicative, multiplyOps, p.parseUnary)
}

// Unary = ( "+" | "-" ) Unary | Exponentiation
func (p *parser) parseUnary() {
	if !p.atAny(additiveOps...) {
		p.parseExponentiation()
		return
	}
	p.startNode(syntax.Unary)
	p.bump()
	p.parseUnary()
	p.builder.FinishNode()
}

// Exponentiation = Atom [ "**" Unary ]
//
// The right operand re-enters at Unary, which makes the operator right
// associative and allows a signed exponent.
func (p *parser) parseExponentiation() {
	cp := p.checkpoint()
	p.parseAtom()
	if p.at(syntax.Pow) {
		p.builder.StartNodeAt(cp, syntax.Exponentiation)
		p.bump()
		p.parseUnary()
		p.builder.FinishNode()
	}
}

// Atom = variable | wildcard | integer | float | "true" | "false" | string
//
//	| Literal | "(" Term ")" | List
func (p *parser) parseAtom() {
	switch p.current() {
	case syntax.Variable, syntax.Wildcard, syntax.Integer, syntax.Float, syntax.True, syntax.False, syntax.String:
		p.bump()
	case syntax.Functor:
		p.parseLiteral()
	case syntax.OpenParen:
		p.parseParenthesized()
	case syntax.OpenBracket:
		p.parseUnsupported(syntax.List, "list literals")
	case syntax.If:
		p.parseUnsupported(syntax.IfThenElse, "if statements")
	case syntax.While:
		p.parseUnsupported(syntax.WhileLoop, "while loops")
	case syntax.For:
		p.parseUnsupported(syntax.ForLoop, "for loops")
	default:
		if p.atAny(atomTerminators...) {
			p.expected("a term")
			return
		}
		p.startNode(syntax.Error)
		p.expected("a term")
		p.bump()
		p.builder.FinishNode()
	}
}

// Parenthesized = "(" Term ")"
func (p *parser) parseParenthesized() {
	p.startNode(syntax.Parenthesized)
	defer p.builder.FinishNode()

	p.bump()
	p.parseTerm()
	if !p.eat(syntax.CloseParen) {
		p.recover("')'", clauseEnd, []syntax.Kind{syntax.CloseParen})
	}
}

// parseUnsupported consumes a construct that is recognised but not built yet.
// Brackets are kept balanced. A list ends at its closing bracket; control
// flow ends before a ";" or "," at bracket depth zero. A "." always ends the
// construct, unclosed brackets included, since floats and dotted functors are
// single tokens.
func (p *parser) parseUnsupported(kind syntax.Kind, what string) {
	p.report(what + " are not supported yet")
	p.startNode(kind)
	defer p.builder.FinishNode()

	depth := 0
	for {
		current := p.current()
		if current == syntax.Eof || current == syntax.Dot {
			return
		}
		if depth == 0 && (p.atAny(clauseEnd...) || current == syntax.Comma || p.atAny(closeBrackets...)) {
			return
		}
		p.bump()
		switch {
		case slices.Contains(openBrackets, current):
			depth = depth + 1
		case slices.Contains(closeBrackets, current):
			depth = depth - 1
			if depth == 0 && kind == syntax.List {
				return
			}
		}
	}
}
