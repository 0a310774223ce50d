package cmd

import (
	"fmt"
	"os"

	"github.com/lumen-lang/lumen/internal/lexer"
	"github.com/lumen-lang/lumen/internal/srcload"
	"github.com/lumen-lang/lumen/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	lexShowPos  bool
	lexShowType bool
	lexOnlyErr  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lumen source file or expression",
	Long: `Tokenize a Lumen program and print the resulting token stream.

Examples:
  lumen lex script.lum
  lumen lex -e "set x 5"
  lumen lex --show-type --show-pos script.lum
  lumen lex --only-errors script.lum`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&lexOnlyErr, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	var input, filename string
	switch {
	case lexEvalExpr != "":
		input, filename = lexEvalExpr, "<eval>"
	case len(args) == 1:
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		decoded, err := srcload.Decode(raw)
		if err != nil {
			return fmt.Errorf("failed to decode file %s: %w", args[0], err)
		}
		input, filename = decoded, args[0]
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s (%d bytes)\n---\n", filename, len(input))
	}

	l := lexer.New(input, lexer.WithSourceName(filename))
	tokenCount, errorCount := 0, 0
	for {
		tok := l.NextToken()
		if lexOnlyErr && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		tokenCount++
		if tok.Type == token.ILLEGAL {
			errorCount++
		}
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", tokenCount)
	}
	if lexOnlyErr && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-14s]", tok.Type.String())
	}
	switch {
	case tok.Type == token.EOF:
		out += " EOF"
	case tok.Lexeme == "":
		out += fmt.Sprintf(" %s", tok.Type)
	default:
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
