package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType represents the type of input code fence in a test case
type InputType string

const (
	InputTypeStatement InputType = "minitac"
)

// AssertionType represents the type of assertion code fence in a test case
type AssertionType string

const (
	AssertionTypeTokens      AssertionType = "tokens"
	AssertionTypeSymbols     AssertionType = "symbols"
	AssertionTypeAST         AssertionType = "ast"
	AssertionTypeSemantic    AssertionType = "semantic"
	AssertionTypeTAC         AssertionType = "tac"
	AssertionTypeLexError    AssertionType = "lex-error"
	AssertionTypeSyntaxError AssertionType = "syntax-error"
)

// typesFence declares identifier types for the test case's input.
const typesFence = "types"

// Assertion represents a single assertion in a test case
type Assertion struct {
	Type    AssertionType
	Content string // raw content of the fence
	// ParsedSexy is the parsed content of s-expression fences; nil for
	// tac and error fences, which compare text.
	ParsedSexy *Node
	Line       int
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name      string // heading text after "Test: "
	Input     string
	InputType InputType
	// Types is the map from the types fence, or nil when absent.
	Types      *Node
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
// A test case starts at a heading "Test: <name>" and collects the fenced
// code blocks until the next such heading.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var currentTestCase *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if currentTestCase != nil {
				if err := validateTestCase(currentTestCase); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *currentTestCase)
			}
			currentTestCase = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if currentTestCase == nil {
				// Plain code blocks may illustrate the document; any tagged
				// fence must belong to a test.
				if language == "" {
					return ast.WalkContinue, nil
				}
				if isKnownFence(language) {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
				}
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", lineNum, language)
			}
			if language == "" {
				return ast.WalkContinue, nil
			}
			if err := addFence(currentTestCase, language, content, lineNum); err != nil {
				return ast.WalkStop, err
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if currentTestCase != nil {
		if err := validateTestCase(currentTestCase); err != nil {
			return nil, err
		}
		testCases = append(testCases, *currentTestCase)
	}

	return testCases, nil
}

func addFence(tc *TestCase, language, content string, lineNum int) error {
	content = strings.TrimRight(content, "\n")

	switch {
	case language == string(InputTypeStatement):
		if tc.Input != "" {
			return fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, tc.Name)
		}
		tc.Input = content
		tc.InputType = InputType(language)

	case language == typesFence:
		if tc.Types != nil {
			return fmt.Errorf("line %d: multiple types fences found in test '%s'", lineNum, tc.Name)
		}
		parsed, err := Parse(content)
		if err != nil {
			return fmt.Errorf("line %d: failed to parse types in test '%s': %w", lineNum, tc.Name, err)
		}
		if parsed.Type != NodeMap {
			return fmt.Errorf("line %d: types in test '%s' must be a map, got %s", lineNum, tc.Name, parsed.Type)
		}
		tc.Types = parsed

	case isAssertionFence(language):
		assertion := Assertion{
			Type:    AssertionType(language),
			Content: content,
			Line:    lineNum,
		}
		if isSexyAssertion(assertion.Type) {
			parsed, err := Parse(content)
			if err != nil {
				return fmt.Errorf("line %d: failed to parse Sexy assertion in test '%s': %w", lineNum, tc.Name, err)
			}
			assertion.ParsedSexy = parsed
		}
		tc.Assertions = append(tc.Assertions, assertion)

	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, tc.Name)
	}
	return nil
}

// extractTextFromNode extracts plain text content from a markdown node
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// extractCodeBlockContent extracts the content from a fenced code block
func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isKnownFence(language string) bool {
	return language == string(InputTypeStatement) || language == typesFence || isAssertionFence(language)
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeTokens, AssertionTypeSymbols, AssertionTypeAST, AssertionTypeSemantic,
		AssertionTypeTAC, AssertionTypeLexError, AssertionTypeSyntaxError:
		return true
	default:
		return false
	}
}

func isSexyAssertion(t AssertionType) bool {
	switch t {
	case AssertionTypeTokens, AssertionTypeSymbols, AssertionTypeAST, AssertionTypeSemantic:
		return true
	default:
		return false
	}
}

// validateTestCase ensures a test case has both input and at least one assertion
func validateTestCase(testCase *TestCase) error {
	if testCase.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	return nil
}

// getLineNumber calculates the line number of a given AST node
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	return bytes.Count(source[:min(startPos, len(source))], []byte("\n")) + 1
}
