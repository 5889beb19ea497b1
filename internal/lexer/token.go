// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lexer

// Token is a raw scanner result. It carries no text; the consumer slices the
// source using the accumulated lengths.
type Token struct {
	Kind TokenKind
	Len  int
	// Unterminated is set on String and BlockComment tokens that ran into the
	// end of the line or the end of input before their closing delimiter.
	Unterminated bool
}

type TokenKind uint8

const (
	Whitespace TokenKind = iota
	// `// comment` or `# comment`
	LineComment
	// `/* comment */`
	BlockComment

	// `foo`, `foo.bar`
	Functor
	// `Foo`, `_Foo`
	Variable
	// `_`
	Wildcard
	Integer
	// `4.2`, `42e-3`
	Float
	// `"foo\n"`
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

	// `<-`
	Arrow
	// `:-`
	Define
	Colon

	// `|&|`
	ForkJoinAnd
	// `|||`
	ForkJoinXor

	// `!!`
	BangBang
	Bang
	Question
	// `-+`
	MinusPlus

	Not
	Plus
	Minus
	Slash
	Div
	Mod
	// `**`
	Pow
	Star
	And
	Or

	// `<=`
	LtEq
	// `>=`
	GtEq
	// `\==`
	NotEqual
	// `==`
	Equal
	// `=..`
	Decompose
	// `=`
	Eq
	Lt
	Gt

	Semi
	Comma
	Dot
	At

	// A single code point that starts no other token.
	Unknown
)

var keywords = map[string]TokenKind{
	"true":    True,
	"false":   False,
	"if":      If,
	"else":    Else,
	"while":   While,
	"for":     For,
	"include": Include,
	"begin":   Begin,
	"end":     End,
	"not":     Not,
	"div":     Div,
	"mod":     Mod,
}

var tokenKindNames = [...]string{
	Whitespace:   "Whitespace",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Functor:      "Functor",
	Variable:     "Variable",
	Wildcard:     "Wildcard",
	Integer:      "Integer",
	Float:        "Float",
	String:       "String",
	True:         "True",
	False:        "False",
	If:           "If",
	Else:         "Else",
	While:        "While",
	For:          "For",
	Include:      "Include",
	Begin:        "Begin",
	End:          "End",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	OpenBrace:    "OpenBrace",
	CloseBrace:   "CloseBrace",
	Arrow:        "Arrow",
	Define:       "Define",
	Colon:        "Colon",
	ForkJoinAnd:  "ForkJoinAnd",
	ForkJoinXor:  "ForkJoinXor",
	BangBang:     "BangBang",
	Bang:         "Bang",
	Question:     "Question",
	MinusPlus:    "MinusPlus",
	Not:          "Not",
	Plus:         "Plus",
	Minus:        "Minus",
	Slash:        "Slash",
	Div:          "Div",
	Mod:          "Mod",
	Pow:          "Pow",
	Star:         "Star",
	And:          "And",
	Or:           "Or",
	LtEq:         "LtEq",
	GtEq:         "GtEq",
	NotEqual:     "NotEqual",
	Equal:        "Equal",
	Decompose:    "Decompose",
	Eq:           "Eq",
	Lt:           "Lt",
	Gt:           "Gt",
	Semi:         "Semi",
	Comma:        "Comma",
	Dot:          "Dot",
	At:           "At",
	Unknown:      "Unknown",
}

func (k TokenKind) String() string {
	if int(k) >= len(tokenKindNames) {
		return "Invalid"
	}
	return tokenKindNames[k]
}
