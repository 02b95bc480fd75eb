package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvlint/internal/diag"
	"cvlint/internal/diagfmt"
	"cvlint/internal/driver"
	"cvlint/internal/project"
	"cvlint/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cd|directory>",
	Short: "Check const qualification in a declaration unit or directory",
	Long:  `Check analyzes *.cd declaration units for duplicate declarations, const violations, overload binding errors, constant placement and macro hazards`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json|short)")
	checkCmd.Flags().String("stages", "all", "analysis stages to run (tokenize|syntax|sema|all)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("annotations", false, "include the resolved-qualifier annotations (json format)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "reuse cached diagnostics for unchanged files")
}

type checkConfig struct {
	format           string
	stage            driver.Stage
	maxDiagnostics   int
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	withNotes        bool
	suggest          bool
	annotations      bool
	fullPath         bool
	diskCache        bool
	showTimings      bool
	useColor         bool
}

// resolveCheckConfig merges flag values over manifest defaults. Flags the
// user set explicitly always win.
func resolveCheckConfig(cmd *cobra.Command, startDir string) (checkConfig, error) {
	cfg := checkConfig{format: "pretty"}

	manifest, found, err := project.Load(startDir)
	if err != nil {
		return cfg, err
	}
	if found {
		mc := manifest.Config.Check
		if mc.Format != "" {
			cfg.format = mc.Format
		}
		cfg.jobs = mc.Jobs
		if mc.MaxDiagnostics > 0 {
			cfg.maxDiagnostics = mc.MaxDiagnostics
		}
		cfg.noWarnings = mc.Warnings == "ignore"
		cfg.warningsAsErrors = mc.Warnings == "error"
		cfg.diskCache = mc.DiskCache
		cfg.withNotes = mc.WithNotes
		cfg.suggest = mc.Suggest
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.format, _ = flags.GetString("format")
	}
	if flags.Changed("jobs") {
		cfg.jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("no-warnings") {
		cfg.noWarnings, _ = flags.GetBool("no-warnings")
	}
	if flags.Changed("warnings-as-errors") {
		cfg.warningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	}
	if flags.Changed("with-notes") || !cfg.withNotes {
		cfg.withNotes, _ = flags.GetBool("with-notes")
	}
	if flags.Changed("suggest") || !cfg.suggest {
		cfg.suggest, _ = flags.GetBool("suggest")
	}
	if flags.Changed("disk-cache") {
		cfg.diskCache, _ = flags.GetBool("disk-cache")
	}
	cfg.annotations, _ = flags.GetBool("annotations")
	cfg.fullPath, _ = flags.GetBool("fullpath")

	if cfg.noWarnings && cfg.warningsAsErrors {
		return cfg, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}

	switch cfg.format {
	case "pretty", "json", "short":
	default:
		return cfg, fmt.Errorf("unknown format: %s", cfg.format)
	}

	stagesStr, err := flags.GetString("stages")
	if err != nil {
		return cfg, err
	}
	switch stagesStr {
	case "tokenize":
		cfg.stage = driver.StageTokenize
	case "syntax":
		cfg.stage = driver.StageSyntax
	case "sema":
		cfg.stage = driver.StageSema
	case "all":
		cfg.stage = driver.StageAll
	default:
		return cfg, fmt.Errorf("unknown stages value: %s", stagesStr)
	}

	root := cmd.Root().PersistentFlags()
	if cfg.maxDiagnostics == 0 || root.Changed("max-diagnostics") {
		cfg.maxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	cfg.showTimings, _ = root.GetBool("timings")

	colorFlag, _ := root.GetString("color")
	cfg.useColor = colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	startDir := path
	if !st.IsDir() {
		startDir = "."
	}
	cfg, err := resolveCheckConfig(cmd, startDir)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Stage:            cfg.stage,
		MaxDiagnostics:   cfg.maxDiagnostics,
		IgnoreWarnings:   cfg.noWarnings,
		WarningsAsErrors: cfg.warningsAsErrors,
		EnableTimings:    cfg.showTimings,
	}
	if cfg.diskCache {
		if cache, err := driver.OpenDiskCache("cvlint"); err == nil {
			opts.DiskCache = cache
		}
	}

	if st.IsDir() {
		return checkDirectory(cmd, path, opts, cfg)
	}
	return checkFile(path, opts, cfg)
}

func checkFile(path string, opts driver.Options, cfg checkConfig) error {
	result, err := driver.AnalyzeFile(path, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := emit(result.Bag, result.FileSet, result, cfg); err != nil {
		return err
	}
	if cfg.showTimings && result.Timing != nil {
		printTimings(result)
	}
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func checkDirectory(cmd *cobra.Command, dir string, opts driver.Options, cfg checkConfig) error {
	fileSet, results, err := driver.AnalyzeDir(cmd.Context(), dir, opts, cfg.jobs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	for _, r := range results {
		if r.LoadErr != nil {
			return fmt.Errorf("load %s: %w", r.Path, r.LoadErr)
		}
	}

	merged := driver.MergeBags(results, cfg.maxDiagnostics*max(len(results), 1))
	if err := emit(merged, fileSet, nil, cfg); err != nil {
		return err
	}
	if merged.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func emit(bag *diag.Bag, fileSet *source.FileSet, single *driver.Result, cfg checkConfig) error {
	pathMode := diagfmt.PathModeAuto
	if cfg.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch cfg.format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fileSet, diagfmt.PrettyOpts{
			Color:     cfg.useColor,
			PathMode:  pathMode,
			ShowNotes: cfg.withNotes,
			ShowFixes: cfg.suggest,
		})
	case "short":
		output := diag.FormatShortDiagnostics(bag.Items(), fileSet, cfg.withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     cfg.withNotes,
			IncludeFixes:     cfg.suggest,
		}
		var ann *diagfmt.AnnotationsInput
		if cfg.annotations && single != nil && single.Builder != nil && single.Symbols != nil {
			jsonOpts.IncludeAnnotations = true
			ann = &diagfmt.AnnotationsInput{
				Builder: single.Builder,
				Symbols: single.Symbols,
				Sema:    single.Sema,
			}
		}
		if err := diagfmt.JSON(os.Stdout, bag, fileSet, jsonOpts, ann); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}

func printTimings(result *driver.Result) {
	fmt.Fprintf(os.Stderr, "timings: total %.2f ms\n", result.Timing.TotalMS)
	for _, p := range result.Timing.Phases {
		fmt.Fprintf(os.Stderr, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(os.Stderr, "  // %s", p.Note)
		}
		fmt.Fprintln(os.Stderr)
	}
}
