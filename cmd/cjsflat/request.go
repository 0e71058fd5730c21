package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cjsflat/internal/driver"
	"cjsflat/internal/project"
)

// addRequestFlags registers the flags that shape a driver.Request. They
// override the matching cjsflat.toml settings.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to cjsflat.toml (default: nearest one above the inputs)")
	cmd.Flags().StringSlice("root", nil, "module root stripped from module paths (repeatable)")
	cmd.Flags().StringSlice("force", nil, "glob of inputs rewritten as modules even without exports (repeatable)")
	cmd.Flags().StringSlice("extern", nil, "ambient global name (repeatable)")
	cmd.Flags().Bool("export-test-functions", false, "keep top-level test functions global")
	cmd.Flags().Bool("no-jsdoc", false, "drop JSDoc comments from the output")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-cache", false, "disable the persistent rewrite cache")
}

// loadConfig reads --config or discovers cjsflat.toml starting at the
// directory of the first input.
func loadConfig(cmd *cobra.Command, args []string) (project.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadConfig(path)
	}
	start := "."
	if len(args) > 0 {
		start = args[0]
		if st, err := os.Stat(start); err == nil && !st.IsDir() {
			start = filepath.Dir(start)
		}
	}
	cfg, err := project.Discover(start)
	if err != nil {
		return project.Config{}, err
	}
	if cfg.Path == "" {
		// без cjsflat.toml пути модулей считаются от рабочей директории
		cfg.Dir = "."
	}
	return cfg, nil
}

// inputFiles expands args (files or directories) or falls back to
// [rewrite].inputs.
func inputFiles(cfg project.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return cfg.InputFiles()
	}
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !st.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := driver.ListJSFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", arg, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// buildRequest merges cfg with the request flags.
func buildRequest(cmd *cobra.Command, cfg project.Config, files []string) (driver.Request, error) {
	flags := cmd.Flags()
	roots, err := flags.GetStringSlice("root")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get root flag: %w", err)
	}
	force, err := flags.GetStringSlice("force")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get force flag: %w", err)
	}
	externs, err := flags.GetStringSlice("extern")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get extern flag: %w", err)
	}
	exportTests, err := flags.GetBool("export-test-functions")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get export-test-functions flag: %w", err)
	}
	noJSDoc, err := flags.GetBool("no-jsdoc")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get no-jsdoc flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Request{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if len(roots) > 0 {
		cfg.Project.Roots = roots
	}
	cfg.Rewrite.Force = append(cfg.Rewrite.Force, force...)
	cfg.Rewrite.Externs = append(cfg.Rewrite.Externs, externs...)
	if err := cfg.Validate(); err != nil {
		return driver.Request{}, err
	}

	req := driver.Request{
		Files:               files,
		BaseDir:             cfg.Dir,
		Roots:               cfg.Project.Roots,
		Force:               cfg.IsForced,
		Externs:             cfg.Rewrite.Externs,
		ExportTestFunctions: cfg.Rewrite.ExportTestFunctions || exportTests,
		JSDoc:               cfg.Output.JSDoc && !noJSDoc,
		MaxDiagnostics:      maxDiagnostics,
		Jobs:                jobs,
		Timings:             timings,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("cjsflat")
		if err != nil {
			// без кэша работаем дальше
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			req.Cache = cache
		}
	}
	return req, nil
}
