package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cjsflat/internal/diag"
	"cjsflat/internal/diagfmt"
	"cjsflat/internal/source"
	"cjsflat/internal/version"
)

type diagOptions struct {
	format           string
	withNotes        bool
	noWarnings       bool
	warningsAsErrors bool
	pathMode         diagfmt.PathMode
}

// addDiagFlags registers the flags shared by commands that print
// diagnostics.
func addDiagFlags(cmd *cobra.Command) {
	cmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json|sarif)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var opts diagOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("diag-format"); err != nil {
		return opts, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "short", "json", "sarif":
	default:
		return opts, fmt.Errorf("unknown diagnostics format: %s", opts.format)
	}
	if opts.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.noWarnings && opts.warningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	mode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if opts.pathMode, ok = diagfmt.ParsePathMode(mode); !ok {
		return opts, fmt.Errorf("unknown path mode: %s", mode)
	}
	return opts, nil
}

// applyPolicy drops or promotes warnings as the flags ask.
func (o diagOptions) applyPolicy(bag *diag.Bag) {
	switch {
	case o.noWarnings:
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	case o.warningsAsErrors:
		items := bag.Items()
		for i := range items {
			if items[i].Severity == diag.SevWarning {
				items[i].Severity = diag.SevError
			}
		}
	}
}

// printDiagnostics writes bag to w in the chosen format. Pretty output
// is colored when w is a terminal and --color allows it.
func printDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, opts diagOptions) error {
	switch opts.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "cjsflat",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		if out := diag.FormatShort(bag.Items(), fs, opts.withNotes); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	default:
		f, _ := w.(*os.File)
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     f != nil && useColor(cmd, f),
			Context:   1,
			PathMode:  opts.pathMode,
			ShowNotes: opts.withNotes,
		})
		return nil
	}
}
