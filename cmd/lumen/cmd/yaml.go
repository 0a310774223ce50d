package cmd

import (
	"fmt"
	"os"

	"github.com/lumen-lang/lumen/internal/value"
	"github.com/lumen-lang/lumen/internal/yamlcodec"
	"github.com/spf13/cobra"
)

var yamlCmd = &cobra.Command{
	Use:   "yaml [file]",
	Short: "Parse a YAML document and print its stringified value",
	Long: `Parse a YAML document through the hand-built codec (anchors,
aliases, merge keys, cycle-safe re-emission) and print the resulting
value, then re-emit it as YAML.

Examples:
  lumen yaml config.yaml
  cat config.yaml | lumen yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runYAML,
}

func init() {
	rootCmd.AddCommand(yamlCmd)
}

func runYAML(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = readAllStdin()
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	v, err := yamlcodec.Parse(string(content))
	if err != nil {
		return fmt.Errorf("yaml parse failed: %w", err)
	}
	fmt.Println(value.EnhancedTypeOf(v) + ": " + v.String())

	emitted, ok := yamlcodec.Emit(v)
	if !ok {
		return fmt.Errorf("yaml emit failed")
	}
	fmt.Println("---")
	fmt.Print(emitted)
	return nil
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("no file given and stdin is a terminal")
	}
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}
