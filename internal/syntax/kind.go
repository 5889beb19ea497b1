// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package syntax defines the single kind space shared by lexed tokens and
// syntax tree nodes. Token kinds come first, in scanner order, followed by the
// end of file sentinel and then every grammar node kind. Root is always the
// last variant.
package syntax

import "fmt"

type Kind uint16

const (
	Whitespace Kind = iota
	LineComment
	BlockComment

	Functor
	Variable
	Wildcard
	Integer
	Float
	String

	True
	False

	If
	Else
	While
	For

	Include
	Begin
	End

	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace

	Arrow
	Define
	Colon

	ForkJoinAnd
	ForkJoinXor

	BangBang
	Bang
	Question
	MinusPlus

	Not
	Plus
	Minus
	Slash
	Div
	Mod
	Pow
	Star
	And
	Or

	LtEq
	GtEq
	NotEqual
	Equal
	Decompose
	Eq
	Lt
	Gt

	Semi
	Comma
	Dot
	At

	Unknown
	Eof

	Belief
	Rule
	InitialGoal
	Plan
	PlanAnnotation
	Trigger
	PlanContext
	PlanBody
	Formula
	Literal
	ArgumentList
	AnnotationList
	Disjunction
	Conjunction
	Negation
	Comparison
	Additive
	Multiplicative
	Unary
	Exponentiation
	Parenthesized
	List
	IfThenElse
	WhileLoop
	ForLoop
	Error
	Root
)

var kindNames = [...]string{
	Whitespace:     "Whitespace",
	LineComment:    "LineComment",
	BlockComment:   "BlockComment",
	Functor:        "Functor",
	Variable:       "Variable",
	Wildcard:       "Wildcard",
	Integer:        "Integer",
	Float:          "Float",
	String:         "String",
	True:           "True",
	False:          "False",
	If:             "If",
	Else:           "Else",
	While:          "While",
	For:            "For",
	Include:        "Include",
	Begin:          "Begin",
	End:            "End",
	OpenParen:      "OpenParen",
	CloseParen:     "CloseParen",
	OpenBracket:    "OpenBracket",
	CloseBracket:   "CloseBracket",
	OpenBrace:      "OpenBrace",
	CloseBrace:     "CloseBrace",
	Arrow:          "Arrow",
	Define:         "Define",
	Colon:          "Colon",
	ForkJoinAnd:    "ForkJoinAnd",
	ForkJoinXor:    "ForkJoinXor",
	BangBang:       "BangBang",
	Bang:           "Bang",
	Question:       "Question",
	MinusPlus:      "MinusPlus",
	Not:            "Not",
	Plus:           "Plus",
	Minus:          "Minus",
	Slash:          "Slash",
	Div:            "Div",
	Mod:            "Mod",
	Pow:            "Pow",
	Star:           "Star",
	And:            "And",
	Or:             "Or",
	LtEq:           "LtEq",
	GtEq:           "GtEq",
	NotEqual:       "NotEqual",
	Equal:          "Equal",
	Decompose:      "Decompose",
	Eq:             "Eq",
	Lt:             "Lt",
	Gt:             "Gt",
	Semi:           "Semi",
	Comma:          "Comma",
	Dot:            "Dot",
	At:             "At",
	Unknown:        "Unknown",
	Eof:            "Eof",
	Belief:         "Belief",
	Rule:           "Rule",
	InitialGoal:    "InitialGoal",
	Plan:           "Plan",
	PlanAnnotation: "PlanAnnotation",
	Trigger:        "Trigger",
	PlanContext:    "PlanContext",
	PlanBody:       "PlanBody",
	Formula:        "Formula",
	Literal:        "Literal",
	ArgumentList:   "ArgumentList",
	AnnotationList: "AnnotationList",
	Disjunction:    "Disjunction",
	Conjunction:    "Conjunction",
	Negation:       "Negation",
	Comparison:     "Comparison",
	Additive:       "Additive",
	Multiplicative: "Multiplicative",
	Unary:          "Unary",
	Exponentiation: "Exponentiation",
	Parenthesized:  "Parenthesized",
	List:           "List",
	IfThenElse:     "IfThenElse",
	WhileLoop:      "WhileLoop",
	ForLoop:        "ForLoop",
	Error:          "Error",
	Root:           "Root",
}

func (k Kind) String() string {
	if k > Root {
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
	return kindNames[k]
}

// FromRaw converts a raw tag back into a Kind. Tags above Root are rejected.
func FromRaw(raw uint16) (Kind, bool) {
	if raw > uint16(Root) {
		return 0, false
	}
	return Kind(raw), true
}

// Raw returns the numeric tag stored in syntax trees.
func (k Kind) Raw() uint16 {
	return uint16(k)
}

// IsTrivia reports whether the kind is whitespace or a comment. Trivia is kept
// in the tree but ignored by grammar decisions.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == LineComment || k == BlockComment
}

// IsToken reports whether the kind classifies a terminal, including Eof.
func (k Kind) IsToken() bool {
	return k <= Eof
}

// IsNode reports whether the kind classifies a grammar production.
func (k Kind) IsNode() bool {
	return k > Eof && k <= Root
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	switch k {
	case True, False, If, Else, While, For, Include, Begin, End, Not, Div, Mod:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the kind is one of the non-chaining
// comparison operators.
func (k Kind) IsComparison() bool {
	return k >= LtEq && k <= Gt
}
