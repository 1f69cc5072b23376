package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

func showUsage(w io.Writer) {
	fmt.Fprintf(w, `minitac - a compiler front-end for single arithmetic assignments

Usage:
    minitac <command> [arguments]

Commands:
    lex   <file>    Print the tokens and symbol table
    parse <file>    Print the syntax tree
    check <file>    Print the tree annotated with int-to-float coercions
    gen   <file>    Print three-address code
    help            Show this help message

Every command accepts -e <code> instead of a file. check and gen accept
-t name=type[,name=type...] to declare identifier types (default int).

Examples:
    minitac lex -e 'Z = 2 * y + 2.9 * X'
    minitac check -tree -t X=float stmt.txt
    minitac gen -t y=int,X=float -e 'Z = 2 * y + 2.9 * X'

Use "minitac <command> -h" for more information about a command.
`)
}

// commandFlags holds the flags shared by every command.
type commandFlags struct {
	fs      *flag.FlagSet
	code    *string
	verbose *bool
	types   *string
}

func newCommandFlags(name, usage, description string, withTypes bool, stderr io.Writer) *commandFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := &commandFlags{
		fs:      fs,
		code:    fs.String("e", "", "Compile the given code instead of a file"),
		verbose: fs.Bool("v", false, "Show verbose compilation details"),
	}
	if withTypes {
		cf.types = fs.String("t", "", "Identifier types as name=type pairs, e.g. y=int,X=float")
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: minitac %s\n", usage)
		fmt.Fprintf(stderr, "%s\n\n", description)
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	return cf
}

// source returns the -e code or the contents of the single file argument.
func (cf *commandFlags) source() (string, error) {
	if *cf.code != "" {
		if cf.fs.NArg() != 0 {
			return "", errors.New("expected either -e or a file argument, not both")
		}
		return *cf.code, nil
	}
	if cf.fs.NArg() != 1 {
		return "", errors.New("expected exactly one file argument")
	}
	filename := cf.fs.Arg(0)
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", filename, err)
	}
	return string(sourceBytes), nil
}

func (cf *commandFlags) typeTable() (TypeTable, error) {
	if cf.types == nil {
		return TypeTable{}, nil
	}
	return ParseTypeTable(*cf.types)
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func lexCommand(args []string, stdout, stderr io.Writer) int {
	cf := newCommandFlags("lex", "lex [-v] [-e code | <file>]", "Print the tokens and symbol table", false, stderr)
	if err := cf.fs.Parse(args); err != nil {
		return 1
	}
	source, err := cf.source()
	if err != nil {
		return fail(stderr, err)
	}

	tokens, symbols, err := Lex(source)
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "Tokens: %s\n", FormatTokens(tokens))
	fmt.Fprintf(stdout, "Symbol Table: %s\n", symbols)
	if *cf.verbose {
		for _, tok := range tokens {
			fmt.Fprintf(stdout, "%4d  %-10s %s\n", tok.Pos, tok.Kind, tok.Value)
		}
	}
	return 0
}

func parseCommand(args []string, stdout, stderr io.Writer) int {
	cf := newCommandFlags("parse", "parse [-v] [-tree] [-e code | <file>]", "Print the syntax tree", false, stderr)
	tree := cf.fs.Bool("tree", false, "Print an indented outline instead of an s-expression")
	if err := cf.fs.Parse(args); err != nil {
		return 1
	}
	source, err := cf.source()
	if err != nil {
		return fail(stderr, err)
	}

	if *cf.verbose {
		fmt.Fprintf(stdout, "Parsing: %s\n", strings.TrimSpace(source))
	}
	tokens, _, err := Lex(source)
	if err != nil {
		return fail(stderr, err)
	}
	ast, err := Parse(tokens)
	if err != nil {
		return fail(stderr, err)
	}

	if *tree {
		fmt.Fprint(stdout, FormatTree(ast, nil))
	} else {
		fmt.Fprintln(stdout, ToSExpr(ast))
	}
	return 0
}

func checkCommand(args []string, stdout, stderr io.Writer) int {
	cf := newCommandFlags("check", "check [-v] [-tree] [-t types] [-e code | <file>]", "Print the tree annotated with int-to-float coercions", true, stderr)
	tree := cf.fs.Bool("tree", false, "Print an indented outline instead of an s-expression")
	if err := cf.fs.Parse(args); err != nil {
		return 1
	}
	source, err := cf.source()
	if err != nil {
		return fail(stderr, err)
	}
	types, err := cf.typeTable()
	if err != nil {
		return fail(stderr, err)
	}

	result, err := Compile(source, types)
	if err != nil {
		return fail(stderr, err)
	}

	if *cf.verbose {
		fmt.Fprintf(stdout, "Types: %s\n", types)
		fmt.Fprintf(stdout, "AST: %s\n", ToSExpr(result.Syntax))
	}
	if *tree {
		fmt.Fprint(stdout, FormatTree(result.Semantic, types))
	} else {
		fmt.Fprintln(stdout, ToSExpr(result.Semantic))
	}
	return 0
}

func genCommand(args []string, stdout, stderr io.Writer) int {
	cf := newCommandFlags("gen", "gen [-v] [-typed] [-t types] [-e code | <file>]", "Print three-address code", true, stderr)
	typed := cf.fs.Bool("typed", false, "Annotate every instruction with the type it writes")
	if err := cf.fs.Parse(args); err != nil {
		return 1
	}
	source, err := cf.source()
	if err != nil {
		return fail(stderr, err)
	}
	types, err := cf.typeTable()
	if err != nil {
		return fail(stderr, err)
	}

	result, err := Compile(source, types)
	if err != nil {
		return fail(stderr, err)
	}

	if *cf.verbose {
		fmt.Fprintf(stdout, "Tokens: %s\n", FormatTokens(result.Tokens))
		fmt.Fprintf(stdout, "Symbol Table: %s\n", result.Symbols)
		fmt.Fprintf(stdout, "AST: %s\n", ToSExpr(result.Semantic))
		fmt.Fprintf(stdout, "Generated %d instructions\n", len(result.Code))
	}
	for _, in := range result.Code {
		if *typed {
			fmt.Fprintln(stdout, in.TypedString())
		} else {
			fmt.Fprintln(stdout, in.String())
		}
	}
	return 0
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		showUsage(stderr)
		return 1
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "lex":
		return lexCommand(rest, stdout, stderr)
	case "parse":
		return parseCommand(rest, stdout, stderr)
	case "check":
		return checkCommand(rest, stdout, stderr)
	case "gen":
		return genCommand(rest, stdout, stderr)
	case "help", "-h", "--help":
		showUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		showUsage(stderr)
		return 1
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
