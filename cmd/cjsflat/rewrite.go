package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cjsflat/internal/diag"
	"cjsflat/internal/driver"
	"cjsflat/internal/project"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] [files|dirs...]",
	Short: "Rewrite CommonJS modules into flat globals",
	Long: `Rewrite reads the given files (directories are searched for *.js), or the
inputs listed in cjsflat.toml, and writes one rewritten script per module
into the output directory, or a single bundle in dependency order.`,
	RunE: runRewrite,
}

func init() {
	addRequestFlags(rewriteCmd)
	addDiagFlags(rewriteCmd)
	rewriteCmd.Flags().String("out-dir", "", "output directory (default: [output].dir)")
	rewriteCmd.Flags().String("bundle", "", "write one bundle file instead (- for stdout)")
	rewriteCmd.Flags().Bool("stdin", false, "read one module from stdin and print the result")
	rewriteCmd.Flags().String("stdin-path", "stdin.js", "module path for --stdin input")
	rewriteCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	diagOpts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if stdin, _ := cmd.Flags().GetBool("stdin"); stdin {
		if len(args) > 0 {
			return fmt.Errorf("--stdin does not take file arguments")
		}
		return rewriteStdin(cmd, cfg, diagOpts)
	}

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	bundle, err := cmd.Flags().GetString("bundle")
	if err != nil {
		return fmt.Errorf("failed to get bundle flag: %w", err)
	}
	if outDir != "" && bundle != "" {
		return fmt.Errorf("--out-dir and --bundle cannot be used together")
	}
	switch {
	case outDir != "":
		cfg.Output.Dir, cfg.Output.Bundle = outDir, ""
	case bundle != "":
		cfg.Output.Dir, cfg.Output.Bundle = "", bundle
	}

	files, err := inputFiles(cfg, args)
	if err != nil {
		return err
	}
	req, err := buildRequest(cmd, cfg, files)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	var res *driver.Result
	if shouldUseTUI(mode) && !quiet && cfg.Output.Bundle != "-" {
		res, err = runRewriteWithUI(cmd.Context(), "rewrite", files, req)
	} else {
		res, err = driver.RewriteFiles(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	var written []string
	if !res.HasErrors() {
		switch {
		case cfg.Output.Bundle == "-":
			if _, err := io.WriteString(cmd.OutOrStdout(), driver.Bundle(res)); err != nil {
				return err
			}
		case cfg.Output.Bundle != "":
			path := cfg.Abs(cfg.Output.Bundle)
			if driver.WriteBundle(cmd.Context(), res, path) == nil {
				written = append(written, path)
			}
		default:
			written = driver.WriteOutputs(cmd.Context(), res, cfg.Abs(cfg.Output.Dir))
		}
	}

	bag := res.Diagnostics()
	if err := reportDiagnostics(cmd, bag, res, diagOpts); err != nil {
		return err
	}
	if !quiet {
		printRewriteSummary(cmd.ErrOrStderr(), res, len(written))
	}
	if bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// reportDiagnostics prints bag to stderr after the warning policy and,
// with --timings, the run's timing table.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, res *driver.Result, opts diagOptions) error {
	opts.applyPolicy(bag)
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	// pretty печатает таблицу времени отдельно
	if !timings || opts.format == "pretty" {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
	}
	if bag.Len() > 0 {
		if err := printDiagnostics(cmd, os.Stderr, bag, res.FileSet, opts); err != nil {
			return err
		}
	}
	if timings && opts.format == "pretty" {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	return nil
}

func printRewriteSummary(w io.Writer, res *driver.Result, written int) {
	fmt.Fprintf(w, "%d modules: %d rewritten, %d cached, %d failed", len(res.Files),
		res.Stats.Rewritten, res.Stats.Cached, res.Stats.Failed)
	if written > 0 {
		fmt.Fprintf(w, "; wrote %d files", written)
	}
	fmt.Fprintln(w)
}

// rewriteStdin rewrites one module read from stdin and prints it.
func rewriteStdin(cmd *cobra.Command, cfg project.Config, opts diagOptions) error {
	path, err := cmd.Flags().GetString("stdin-path")
	if err != nil {
		return fmt.Errorf("failed to get stdin-path flag: %w", err)
	}
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	req, err := buildRequest(cmd, cfg, nil)
	if err != nil {
		return err
	}
	req.Sources = []driver.Source{{Path: path, Content: src}}
	res, err := driver.RewriteFiles(cmd.Context(), req)
	if err != nil {
		return err
	}
	bag := res.Diagnostics()
	if err := reportDiagnostics(cmd, bag, res, opts); err != nil {
		return err
	}
	if bag.HasErrors() || len(res.Order) == 0 {
		return exitError{code: 1}
	}
	_, err = io.WriteString(cmd.OutOrStdout(), res.Files[res.Order[0]].Output)
	return err
}
