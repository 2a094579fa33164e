package pslint

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pslint/pslint/internal/analyzer"
	"github.com/pslint/pslint/internal/config"
	"github.com/pslint/pslint/internal/files"
	"github.com/pslint/pslint/internal/git"
	"github.com/pslint/pslint/internal/powershell"
	"github.com/pslint/pslint/internal/script"
	"github.com/pslint/pslint/internal/types"
	"github.com/pslint/pslint/internal/ui"
	"github.com/pslint/pslint/internal/update"
)

// interpreter is what the run loop needs from a discovered PowerShell.
// *powershell.Interpreter implements it; tests substitute fakes.
type interpreter interface {
	analyzer.Invoker
	Name() string
	ModuleInstalled(ctx context.Context) bool
	InstallModule(ctx context.Context) bool
}

// findInterpreter is replaced in tests to avoid probing real binaries.
var findInterpreter = func(ctx context.Context) (interpreter, error) {
	return powershell.Find(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagVersion {
		fmt.Fprintln(cmd.OutOrStdout(), "pslint", version)
		return nil
	}
	if code := run(cmd, args, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
	return nil
}

// run executes one invocation and returns the tool's exit code. Split from
// runRoot so tests can drive it with captured writers.
func run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cwd, _ := os.Getwd()
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	console := ui.New(stdout, noColor)
	errConsole := ui.New(stderr, noColor)

	severity := resolveSeverity(cmd, lcfg, gcfg)
	outputFormat := flagOutputFormat
	if !cmd.Flags().Changed("output-format") {
		outputFormat = pickString(flagOutputFormat, lcfg.OutputFormat, gcfg.OutputFormat)
		if outputFormat == "" {
			outputFormat = "text"
		}
	}
	switch outputFormat {
	case "text", "json", "sarif":
	default:
		errConsole.Error("unknown output format %q (want text, json, or sarif)", outputFormat)
		return 1
	}
	outputFile := flagOutputFile
	if outputFile == "" {
		outputFile = pickString("", lcfg.OutputFile, gcfg.OutputFile)
	}
	includeRules := splitRules(pickString(flagIncludeRules, lcfg.IncludeRules, gcfg.IncludeRules))
	excludeRules := splitRules(pickString(flagExcludeRules, lcfg.ExcludeRules, gcfg.ExcludeRules))

	psFiles, code, done := collectFiles(args, console)
	if done {
		return code
	}

	params := analyzer.Params{
		Files:  psFiles,
		Format: flagFormat,
		Options: script.Options{
			Severity:          severity,
			SecurityOnly:      flagSecurity,
			StyleOnly:         flagStyle,
			PerformanceOnly:   flagPerformance,
			BestPracticesOnly: flagBestPractice,
			DSCOnly:           flagDSC,
			CompatibilityOnly: flagCompat,
			IncludeRules:      includeRules,
			ExcludeRules:      excludeRules,
		},
		OutputFormat: outputFormat,
		OutputFile:   outputFile,
		Out:          stdout,
		Errout:       stderr,
	}

	if flagShowScript {
		showScript(stdout, analyzer.BuildScript(params))
		return 0
	}

	ctx := context.Background()

	if outputFormat == "text" && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			errConsole.Dim("(new version available: v%s)  run 'pslint update' to upgrade", latest)
		}
	}

	console.Status("Finding PowerShell installation...")
	interp, err := findInterpreter(ctx)
	if err != nil {
		errConsole.Error("PowerShell not found. Please install PowerShell Core (pwsh) or Windows PowerShell.")
		errConsole.Dim("Visit: https://github.com/PowerShell/PowerShell#get-powershell")
		return 1
	}
	console.Success("Using PowerShell: %s", interp.Name())

	console.Status("Checking %s installation...", powershell.ModuleName)
	if !interp.ModuleInstalled(ctx) {
		console.Warn("%s not found. Installing...", powershell.ModuleName)
		if !interp.InstallModule(ctx) {
			errConsole.Error("Failed to install %s", powershell.ModuleName)
			return 1
		}
		console.Success("%s installed successfully", powershell.ModuleName)
	} else {
		console.Success("%s is available", powershell.ModuleName)
	}

	action := "Analyzing"
	if flagFormat {
		action = "Formatting"
	}
	console.Status("%s%s %d PowerShell file(s)...", action, filterDescription(params.Options), len(psFiles))

	code = analyzer.Run(ctx, interp, params)
	if code == 0 && !flagFormat && outputFormat == "text" {
		console.Success("No issues found")
	}
	return code
}

// collectFiles resolves the target file list from positional args, recursive
// discovery, or the git index. done=true means run() should return code
// without analyzing (no targets, or a discovery error).
func collectFiles(args []string, console *ui.Console) (psFiles []string, code int, done bool) {
	switch {
	case flagRecursive:
		console.Status("Searching for PowerShell files recursively...")
		found, err := files.FindRecursive(".")
		if err != nil {
			console.Error("file discovery failed: %v", err)
			return nil, 1, true
		}
		psFiles = found
		if len(psFiles) > 0 {
			console.Success("Found %d PowerShell file(s)", len(psFiles))
		}
	case flagStaged:
		staged, err := git.Staged(".")
		if err != nil {
			console.Error("listing staged files: %v", err)
			return nil, 1, true
		}
		psFiles = files.Filter(staged)
	default:
		psFiles = files.Filter(args)
	}

	if len(psFiles) == 0 {
		if flagRecursive || flagStaged {
			console.Warn("No PowerShell files found")
		} else {
			console.Warn("No PowerShell files specified")
		}
		return nil, 0, true
	}
	return psFiles, 0, false
}

// resolveSeverity applies precedence: explicit flag > SEVERITY_LEVEL env >
// local config > global config > Warning. Invalid values fall through.
func resolveSeverity(cmd *cobra.Command, lcfg, gcfg config.FileConfig) string {
	if cmd.Flags().Changed("severity") {
		if types.ValidLevel(flagSeverity) {
			return flagSeverity
		}
		return "Warning"
	}
	if env := os.Getenv("SEVERITY_LEVEL"); types.ValidLevel(env) {
		return env
	}
	if v := pickString("", lcfg.Severity, gcfg.Severity); types.ValidLevel(v) {
		return v
	}
	return "Warning"
}

// filterDescription names the active rule filter for the status line. Only
// the first matching category switch is reported, mirroring how the filters
// themselves apply.
func filterDescription(opts script.Options) string {
	switch {
	case opts.SecurityOnly:
		return " (security rules only)"
	case opts.StyleOnly:
		return " (style rules only)"
	case opts.PerformanceOnly:
		return " (performance rules only)"
	case opts.BestPracticesOnly:
		return " (best practices only)"
	case opts.DSCOnly:
		return " (DSC rules only)"
	case opts.CompatibilityOnly:
		return " (compatibility rules only)"
	case len(opts.IncludeRules) > 0:
		return " (specific included rules)"
	case len(opts.ExcludeRules) > 0:
		return " (with specific rules excluded)"
	}
	return ""
}

func splitRules(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	rules := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	return rules
}
