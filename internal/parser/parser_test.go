package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pheres-lang/pheres/internal/lexed"
	"github.com/pheres-lang/pheres/internal/syntax"
	"github.com/pheres-lang/pheres/internal/tree"
)

func parse(t *testing.T, input string) *Parsed {
	t.Helper()

	parsed := Parse(lexed.New(context.Background(), input))
	require.NotNil(t, parsed.Root)
	require.Equal(t, syntax.Root, parsed.Root.Kind())
	require.Equal(t, input, parsed.Root.Text())
	return parsed
}

// nodes returns every node of the given kind in document order.
func nodes(root *tree.Node, kind syntax.Kind) []*tree.Node {
	var found []*tree.Node
	root.Walk(func(e tree.Element, offset int, depth int) bool {
		if n, ok := e.(*tree.Node); ok && n.Kind() == kind {
			found = append(found, n)
		}
		return true
	})
	return found
}

func text(n *tree.Node) string {
	return strings.TrimSpace(n.Text())
}

func TestParseOutline(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "Root@0..0\n",
		},
		{
			name:  "belief",
			input: "likes(bob).",
			expected: "Root@0..11\n" +
				"  Belief@0..11\n" +
				"    Literal@0..10\n" +
				"      Functor@0..5 \"likes\"\n" +
				"      ArgumentList@5..10\n" +
				"        OpenParen@5..6 \"(\"\n" +
				"        Literal@6..9\n" +
				"          Functor@6..9 \"bob\"\n" +
				"        CloseParen@9..10 \")\"\n" +
				"    Dot@10..11 \".\"\n",
		},
		{
			name:  "initial goal with trivia",
			input: " !go. // start\n",
			expected: "Root@0..15\n" +
				"  Whitespace@0..1 \" \"\n" +
				"  InitialGoal@1..5\n" +
				"    Bang@1..2 \"!\"\n" +
				"    Literal@2..4\n" +
				"      Functor@2..4 \"go\"\n" +
				"    Dot@4..5 \".\"\n" +
				"  Whitespace@5..6 \" \"\n" +
				"  LineComment@6..14 \"// start\"\n" +
				"  Whitespace@14..15 \"\\n\"\n",
		},
		{
			name:  "rule",
			input: "r :- a.",
			expected: "Root@0..7\n" +
				"  Rule@0..7\n" +
				"    Literal@0..1\n" +
				"      Functor@0..1 \"r\"\n" +
				"    Whitespace@1..2 \" \"\n" +
				"    Define@2..4 \":-\"\n" +
				"    Whitespace@4..5 \" \"\n" +
				"    Literal@5..6\n" +
				"      Functor@5..6 \"a\"\n" +
				"    Dot@6..7 \".\"\n",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, testCase.input)
			require.Empty(t, parsed.Errors)
			require.False(t, parsed.UnexpectedEOF)
			require.Equal(t, testCase.expected, parsed.Root.String())
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		outer syntax.Kind
		inner syntax.Kind
		texts [2]string
	}{
		{
			name:  "multiplication binds tighter than addition",
			input: "r :- 1 + 2 * 3.",
			outer: syntax.Additive,
			inner: syntax.Multiplicative,
			texts: [2]string{"1 + 2 * 3", "2 * 3"},
		},
		{
			name:  "exponentiation is right associative",
			input: "r :- 2 ** 3 ** 2.",
			outer: syntax.Exponentiation,
			inner: syntax.Exponentiation,
			texts: [2]string{"2 ** 3 ** 2", "3 ** 2"},
		},
		{
			name:  "subtraction is left associative",
			input: "r :- 1 - 2 - 3.",
			outer: syntax.Additive,
			inner: syntax.Additive,
			texts: [2]string{"1 - 2 - 3", "1 - 2"},
		},
		{
			name:  "negation binds looser than comparison",
			input: "r :- not a = b.",
			outer: syntax.Negation,
			inner: syntax.Comparison,
			texts: [2]string{"not a = b", "a = b"},
		},
		{
			name:  "conjunction binds tighter than disjunction",
			input: "r :- a & b | c.",
			outer: syntax.Disjunction,
			inner: syntax.Conjunction,
			texts: [2]string{"a & b | c", "a & b"},
		},
		{
			name:  "signed exponent",
			input: "r :- 2 ** -1.",
			outer: syntax.Exponentiation,
			inner: syntax.Unary,
			texts: [2]string{"2 ** -1", "-1"},
		},
		{
			name:  "unary binds tighter than multiplication",
			input: "r :- -a * b.",
			outer: syntax.Multiplicative,
			inner: syntax.Unary,
			texts: [2]string{"-a * b", "-a"},
		},
		{
			name:  "parentheses override precedence",
			input: "r :- (1 + 2) * 3.",
			outer: syntax.Multiplicative,
			inner: syntax.Parenthesized,
			texts: [2]string{"(1 + 2) * 3", "(1 + 2)"},
		},
		{
			name:  "div and mod are multiplicative",
			input: "r :- X div 2 mod 3.",
			outer: syntax.Multiplicative,
			inner: syntax.Multiplicative,
			texts: [2]string{"X div 2 mod 3", "X div 2"},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, testCase.input)
			require.Empty(t, parsed.Errors)
			require.False(t, parsed.UnexpectedEOF)

			rules := nodes(parsed.Root, syntax.Rule)
			require.Len(t, rules, 1)
			body := rules[0].ChildNodes()
			require.Len(t, body, 2)

			outer := body[1]
			require.Equal(t, testCase.outer, outer.Kind())
			require.Equal(t, testCase.texts[0], text(outer))

			var inner *tree.Node
			for _, child := range outer.ChildNodes() {
				if child.Kind() == testCase.inner {
					inner = child
				}
			}
			require.NotNil(t, inner)
			require.Equal(t, testCase.texts[1], text(inner))
		})
	}
}

func TestParseComparisonDoesNotChain(t *testing.T) {
	t.Parallel()

	input := "r :- a = b = c."
	parsed := parse(t, input)

	comparisons := nodes(parsed.Root, syntax.Comparison)
	require.Len(t, comparisons, 1)
	require.Equal(t, "a = b", text(comparisons[0]))

	require.Len(t, parsed.Errors, 1)
	l := lexed.New(context.Background(), input)
	require.Equal(t, syntax.Eq, l.Kind(parsed.Errors[0].Token))
	start, _ := l.Range(parsed.Errors[0].Token)
	require.Equal(t, strings.LastIndex(input, "="), start)
	require.Contains(t, parsed.Errors[0].Message, "expecting '.'")

	errs := nodes(parsed.Root, syntax.Error)
	require.Len(t, errs, 1)
	require.Equal(t, "= c.", text(errs[0]))
}

func TestParseRecoveryIsBounded(t *testing.T) {
	t.Parallel()

	parsed := parse(t, "Bad_token. +trigger : ctx <- body.")
	require.Len(t, parsed.Errors, 1)
	require.Equal(t, 0, parsed.Errors[0].Token)
	require.False(t, parsed.UnexpectedEOF)

	statements := parsed.Root.ChildNodes()
	require.Len(t, statements, 2)
	require.Equal(t, syntax.Error, statements[0].Kind())
	require.Equal(t, "Bad_token.", statements[0].Text())
	require.Equal(t, syntax.Plan, statements[1].Kind())
	require.Equal(t, "+trigger : ctx <- body.", statements[1].Text())

	require.Len(t, nodes(statements[1], syntax.Error), 0)
	require.Len(t, nodes(statements[1], syntax.PlanContext), 1)
	require.Len(t, nodes(statements[1], syntax.PlanBody), 1)
}

func TestParseRecoveryLowercaseFunctor(t *testing.T) {
	t.Parallel()

	// bad_token is an ordinary functor and "->" lexes as "-" ">".
	parsed := parse(t, "bad_token. +trigger : ctx -> body.")
	tokens := make([]int, 0, len(parsed.Errors))
	for _, err := range parsed.Errors {
		tokens = append(tokens, err.Token)
	}
	require.Equal(t, []int{11, 13}, tokens)
	require.False(t, parsed.UnexpectedEOF)

	statements := parsed.Root.ChildNodes()
	require.Len(t, statements, 2)
	require.Equal(t, syntax.Belief, statements[0].Kind())
	require.Equal(t, "bad_token.", text(statements[0]))
	require.Equal(t, syntax.Plan, statements[1].Kind())
	require.Equal(t, "+trigger : ctx -> body.", text(statements[1]))
	require.Len(t, nodes(statements[1], syntax.PlanBody), 0)
}

func TestParseAnnotationEmptiness(t *testing.T) {
	t.Parallel()

	parsed := parse(t, "foo()[].")
	require.Empty(t, parsed.Errors)

	literals := nodes(parsed.Root, syntax.Literal)
	require.Len(t, literals, 1)
	children := literals[0].ChildNodes()
	require.Len(t, children, 2)
	require.Equal(t, syntax.ArgumentList, children[0].Kind())
	require.Equal(t, "()", children[0].Text())
	require.Equal(t, syntax.AnnotationList, children[1].Kind())
	require.Equal(t, "[]", children[1].Text())
}

func TestParsePlan(t *testing.T) {
	t.Parallel()

	input := "@atomic +!go(X) : ready & X > 0 <- !!step; ?bel(Y); -+count(1); +done; -todo; act(X)."
	parsed := parse(t, input)
	require.Empty(t, parsed.Errors)
	require.False(t, parsed.UnexpectedEOF)

	plans := nodes(parsed.Root, syntax.Plan)
	require.Len(t, plans, 1)
	require.Equal(t, input, plans[0].Text())

	annotations := nodes(plans[0], syntax.PlanAnnotation)
	require.Len(t, annotations, 1)
	require.Equal(t, "@atomic", text(annotations[0]))

	triggers := nodes(plans[0], syntax.Trigger)
	require.Len(t, triggers, 1)
	require.Equal(t, "+!go(X)", text(triggers[0]))

	contexts := nodes(plans[0], syntax.PlanContext)
	require.Len(t, contexts, 1)
	require.Equal(t, ": ready & X > 0", text(contexts[0]))
	require.Len(t, nodes(contexts[0], syntax.Conjunction), 1)
	require.Len(t, nodes(contexts[0], syntax.Comparison), 1)

	formulas := nodes(plans[0], syntax.Formula)
	types := make([]FormulaType, 0, len(formulas))
	for _, formula := range formulas {
		types = append(types, ClassifyFormula(formula))
	}
	require.Equal(t, []FormulaType{
		FormulaAchieveLater,
		FormulaTest,
		FormulaReplace,
		FormulaAdd,
		FormulaRemove,
		FormulaTerm,
	}, types)
	require.Equal(t, "!!step", text(formulas[0]))
	require.Equal(t, "act(X)", text(formulas[5]))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		input         string
		errorTokens   []int
		unexpectedEOF bool
		errorTexts    []string
	}{
		{
			name:          "initial goal without terminator",
			input:         "!start",
			unexpectedEOF: true,
		},
		{
			name:          "bare bang",
			input:         "!",
			unexpectedEOF: true,
		},
		{
			name:        "initial goal with a variable",
			input:       "!X. ok.",
			errorTokens: []int{1},
			errorTexts:  []string{"X."},
		},
		{
			name:          "belief without terminator",
			input:         "foo",
			unexpectedEOF: true,
		},
		{
			name:        "missing closing paren",
			input:       "foo(a, b.",
			errorTokens: []int{6},
		},
		{
			name:        "missing trigger sign",
			input:       "@a foo.",
			errorTokens: []int{3},
		},
		{
			name:        "body recovers at semicolon",
			input:       "+!g <- a b; c.",
			errorTokens: []int{8},
			errorTexts:  []string{"b;"},
		},
		{
			name:        "unexpected top level token",
			input:       ") x. y.",
			errorTokens: []int{0},
			errorTexts:  []string{") x."},
		},
		{
			name:          "plan without terminator",
			input:         "+!g <- a",
			unexpectedEOF: true,
		},
		{
			name:        "empty body",
			input:       "+!g <- .",
			errorTokens: []int{6},
		},
		{
			name:        "trigger without literal",
			input:       "+ : c <- a.",
			errorTokens: []int{2},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, testCase.input)
			tokens := []int{}
			for _, err := range parsed.Errors {
				tokens = append(tokens, err.Token)
				require.NotEmpty(t, err.Message)
			}
			expectedTokens := testCase.errorTokens
			if expectedTokens == nil {
				expectedTokens = []int{}
			}
			require.Equal(t, expectedTokens, tokens)
			require.Equal(t, testCase.unexpectedEOF, parsed.UnexpectedEOF)

			if testCase.errorTexts != nil {
				errs := nodes(parsed.Root, syntax.Error)
				texts := make([]string, 0, len(errs))
				for _, n := range errs {
					texts = append(texts, text(n))
				}
				require.Equal(t, testCase.errorTexts, texts)
			}
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		kind  syntax.Kind
		text  string
	}{
		{
			name:  "list literal",
			input: "r :- [1, [2], 3].",
			kind:  syntax.List,
			text:  "[1, [2], 3]",
		},
		{
			name:  "if statement",
			input: "+!g <- if (x) { a; b }; c.",
			kind:  syntax.IfThenElse,
			text:  "if (x) { a; b }",
		},
		{
			name:  "while loop",
			input: "+!g <- while (x) { a }.",
			kind:  syntax.WhileLoop,
			text:  "while (x) { a }",
		},
		{
			name:  "for loop",
			input: "+!g <- for (x) { a }.",
			kind:  syntax.ForLoop,
			text:  "for (x) { a }",
		},
		{
			name:  "unterminated list",
			input: "r :- [1, 2. b.",
			kind:  syntax.List,
			text:  "[1, 2",
		},
		{
			name:  "unclosed brace in if statement",
			input: "+!g <- if (x) { a. b.",
			kind:  syntax.IfThenElse,
			text:  "if (x) { a",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, testCase.input)
			require.Len(t, parsed.Errors, 1)
			require.Contains(t, parsed.Errors[0].Message, "not supported yet")
			require.False(t, parsed.UnexpectedEOF)

			found := nodes(parsed.Root, testCase.kind)
			require.Len(t, found, 1)
			require.Equal(t, testCase.text, text(found[0]))
		})
	}
}

func TestParseUnterminatedListKeepsStatements(t *testing.T) {
	t.Parallel()

	parsed := parse(t, "r :- [1, 2. b. c. +!g <- a. !go.")
	require.Len(t, parsed.Errors, 1)
	require.Equal(t, 4, parsed.Errors[0].Token)
	require.False(t, parsed.UnexpectedEOF)

	statements := parsed.Root.ChildNodes()
	kinds := make([]syntax.Kind, 0, len(statements))
	texts := make([]string, 0, len(statements))
	for _, statement := range statements {
		kinds = append(kinds, statement.Kind())
		texts = append(texts, text(statement))
	}
	require.Equal(t, []syntax.Kind{syntax.Rule, syntax.Belief, syntax.Belief, syntax.Plan, syntax.InitialGoal}, kinds)
	require.Equal(t, []string{"r :- [1, 2.", "b.", "c.", "+!g <- a.", "!go."}, texts)
}

func TestParseErrorMessages(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "token kind",
			input:   "foo(a b).",
			message: "unexpected Functor \"b\" (expecting ',' or ')')",
		},
		{
			name:    "keyword",
			input:   "+!g <- else.",
			message: "unexpected keyword \"else\" (expecting a term)",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, testCase.input)
			require.Len(t, parsed.Errors, 1)
			require.Equal(t, testCase.message, parsed.Errors[0].Message)
		})
	}
}

func TestParseTotality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   \n\t",
		"// only a comment",
		"/* unterminated",
		"\xff\xfe\xfd",
		"$$$ %%% ^^^",
		"((((",
		"))))",
		"[[[[",
		"]]]]",
		"{ } { }",
		"+",
		"-",
		"@",
		"@@@",
		"!!",
		":- :- :-",
		"foo(",
		"foo(a,",
		"foo[",
		"foo(a b c d",
		"r :- .",
		"r :- not",
		"r :- 1 +",
		"r :- 2 ** ** 3.",
		"+!g <- ; ; ; .",
		"+!g <- |&| ||| .",
		"+!g : <- .",
		"\"unterminated",
		"likes(bob, \"tea\"). +!go <- !!step; ?x. !go.",
		"if while for else include begin end",
		"r :- a = b = c = d = e.",
		strings.Repeat("(", 200) + strings.Repeat(")", 199),
		strings.Repeat("- ", 100),
	}
	for _, input := range inputs {
		l := lexed.New(context.Background(), input)
		parsed := Parse(l)
		require.Equal(t, syntax.Root, parsed.Root.Kind(), input)
		require.Equal(t, input, parsed.Root.Text(), input)
		require.Len(t, nodes(parsed.Root, syntax.Root), 1, input)

		previous := -1
		for _, err := range parsed.Errors {
			require.Greater(t, err.Token, previous, input)
			require.Less(t, err.Token, l.Len(), input)
			previous = err.Token
		}
	}
}

func TestClassifyFormula(t *testing.T) {
	t.Parallel()

	require.Equal(t, FormulaTerm, ClassifyFormula(nil))

	parsed := parse(t, "likes(bob).")
	require.Equal(t, FormulaTerm, ClassifyFormula(parsed.Root))

	require.Equal(t, "achieve", FormulaAchieve.String())
	require.Equal(t, "achieve-later", FormulaAchieveLater.String())
	require.Equal(t, "replace", FormulaReplace.String())
}
