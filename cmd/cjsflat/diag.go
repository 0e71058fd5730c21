package main

import (
	"github.com/spf13/cobra"

	"cjsflat/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [files|dirs...]",
	Short: "Report rewrite diagnostics without writing output",
	Long: `Diag runs the full rewrite over the inputs and prints the diagnostics
(syntax errors, malformed exports, unknown requires, cycles) without
writing any file.`,
	RunE: runDiag,
}

func init() {
	addRequestFlags(diagCmd)
	addDiagFlags(diagCmd)
}

func runDiag(cmd *cobra.Command, args []string) error {
	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	files, err := inputFiles(cfg, args)
	if err != nil {
		return err
	}
	req, err := buildRequest(cmd, cfg, files)
	if err != nil {
		return err
	}
	res, err := driver.RewriteFiles(cmd.Context(), req)
	if err != nil {
		return err
	}
	bag := res.Diagnostics()
	if err := reportDiagnostics(cmd, bag, res, opts); err != nil {
		return err
	}
	if bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
