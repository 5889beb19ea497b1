// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/pheres-lang/pheres/internal/syntax"
	"github.com/pheres-lang/pheres/internal/tree"
)

// FormulaType is the effect a plan body formula has on the agent.
type FormulaType uint8

const (
	// a plain term, usually an action or an expression to evaluate
	FormulaTerm FormulaType = iota
	// `!goal`
	FormulaAchieve
	// `!!goal`
	FormulaAchieveLater
	// `?belief`
	FormulaTest
	// `-+belief`
	FormulaReplace
	// `+belief`
	FormulaAdd
	// `-belief`
	FormulaRemove
)

func (t FormulaType) String() string {
	switch t {
	case FormulaTerm:
		return "term"
	case FormulaAchieve:
		return "achieve"
	case FormulaAchieveLater:
		return "achieve-later"
	case FormulaTest:
		return "test"
	case FormulaReplace:
		return "replace"
	case FormulaAdd:
		return "add"
	case FormulaRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ClassifyFormula reads the marker of a Formula node. Nodes of any other kind
// classify as FormulaTerm.
func ClassifyFormula(n *tree.Node) FormulaType {
	if n == nil || n.Kind() != syntax.Formula {
		return FormulaTerm
	}
	for _, child := range n.Children() {
		if child.Kind().IsTrivia() {
			continue
		}
		switch child.Kind() {
		case syntax.Bang:
			return FormulaAchieve
		case syntax.BangBang:
			return FormulaAchieveLater
		case syntax.Question:
			return FormulaTest
		case syntax.MinusPlus:
			return FormulaReplace
		case syntax.Plus:
			return FormulaAdd
		case syntax.Minus:
			return FormulaRemove
		default:
			return FormulaTerm
		}
	}
	return FormulaTerm
}
