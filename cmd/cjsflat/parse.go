package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cjsflat/internal/diagfmt"
	"cjsflat/internal/driver"
	"cjsflat/internal/format"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.js",
	Short: "Parse a JavaScript file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|js)")
	parseCmd.Flags().Bool("jsdoc", true, "keep JSDoc comments in js output")
}

func runParse(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jsdoc, err := cmd.Flags().GetBool("jsdoc")
	if err != nil {
		return fmt.Errorf("failed to get jsdoc flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		if err := printDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, diagOptions{format: "pretty"}); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.Tree, result.Root, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Tree, result.Root)
	case "js":
		_, err = io.WriteString(out, format.Print(result.Tree, result.Root, format.Options{JSDoc: jsdoc}))
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
