package pslint

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pslint/pslint/internal/types"
)

var (
	flagRecursive     bool
	flagStaged        bool
	flagFormat        bool
	flagSeverity      string
	flagSecurity      bool
	flagStyle         bool
	flagPerformance   bool
	flagBestPractice  bool
	flagDSC           bool
	flagCompat        bool
	flagIncludeRules  string
	flagExcludeRules  string
	flagOutputFormat  string
	flagOutputFile    string
	flagShowScript    bool
	flagNoColor       bool
	flagNoUpdateCheck bool
	flagVersion       bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command. The root itself runs the analysis; the
// tool has no separate "analyze" subcommand so it can be dropped into
// pre-commit hooks as a single argv.
var rootCmd = &cobra.Command{
	Use:           "pslint [flags] [files...]",
	Short:         "Analyze and format PowerShell files with PSScriptAnalyzer",
	Long:          "pslint locates a PowerShell interpreter, installs PSScriptAnalyzer when missing, and runs it over your .ps1/.psm1/.psd1 files. Results can be relayed as text, JSON, or SARIF 2.1.0.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the pslint CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "search for PowerShell files recursively from the current directory")
	rootCmd.Flags().BoolVar(&flagStaged, "staged", false, "analyze PowerShell files staged in git")
	rootCmd.Flags().BoolVarP(&flagFormat, "format", "f", false, "format files instead of analyzing them")
	rootCmd.Flags().StringVarP(&flagSeverity, "severity", "s", defaultSeverity(), "severity level to report: All|Information|Warning|Error (default from SEVERITY_LEVEL)")

	rootCmd.Flags().BoolVar(&flagSecurity, "security-only", false, "only show security-related findings")
	rootCmd.Flags().BoolVar(&flagStyle, "style-only", false, "only show code style-related findings")
	rootCmd.Flags().BoolVar(&flagPerformance, "performance-only", false, "only show performance-related findings")
	rootCmd.Flags().BoolVar(&flagBestPractice, "best-practices-only", false, "only show best practices-related findings")
	rootCmd.Flags().BoolVar(&flagDSC, "dsc-only", false, "only show DSC-related findings")
	rootCmd.Flags().BoolVar(&flagCompat, "compatibility-only", false, "only show compatibility-related findings")

	rootCmd.Flags().StringVar(&flagIncludeRules, "include-rules", "", "comma-separated list of rule names to include")
	rootCmd.Flags().StringVar(&flagExcludeRules, "exclude-rules", "", "comma-separated list of rule names to exclude")

	rootCmd.Flags().StringVar(&flagOutputFormat, "output-format", "text", "output format: text|json|sarif")
	rootCmd.Flags().StringVar(&flagOutputFile, "output-file", "", "write output to this file instead of the console")
	rootCmd.Flags().BoolVar(&flagShowScript, "show-script", false, "print the synthesized PowerShell script and exit")

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "show version information and exit")
}

// defaultSeverity resolves the built-in severity default from SEVERITY_LEVEL.
// Invalid values silently fall back to Warning.
func defaultSeverity() string {
	if env := os.Getenv("SEVERITY_LEVEL"); types.ValidLevel(env) {
		return env
	}
	return "Warning"
}
