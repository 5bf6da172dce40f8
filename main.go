package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// global flags
	verbose bool
	baseDir string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "refdata",
	Short: "reference-dataset workflow driver",
	Long: `refdata drives a three-stage reference-dataset workflow:
generate solver input files for each (method, basis) combination,
batch-execute the solver with idempotent skip/retry semantics, and
aggregate the results into a damping-parameter fit report.

The stages communicate only through the filesystem and can be invoked
independently and re-invoked safely after an interruption.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	genDin       string
	genGeoms     string
	genTemplate  string
	genMemory    string
	genThreads   int
	genOverwrite bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate solver input files for every combination",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := GenOptions{
			Base:      baseDir,
			Din:       genDin,
			Geoms:     genGeoms,
			Template:  genTemplate,
			Memory:    resolveMemory(genMemory),
			Threads:   resolveThreads(genThreads),
			Overwrite: genOverwrite,
		}
		return Generate(opts, Combos, os.Stdout, logger.Sugar())
	},
}

var (
	runSolver    string
	runRecursive bool
	runOverwrite bool
	runDryRun    bool
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Batch-execute the solver over the work files in dir",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := baseDir
		if len(args) == 1 {
			root = args[0]
		}
		opts := RunOptions{
			Root:      root,
			Solver:    resolveSolver(runSolver),
			Recursive: runRecursive,
			Overwrite: runOverwrite,
			DryRun:    runDryRun,
		}
		sum, err := RunBatch(opts, os.Stdout, logger.Sugar())
		if err != nil {
			return err
		}
		if sum.Failed > 0 {
			return fmt.Errorf("%d of %d items failed", sum.Failed, sum.Total)
		}
		return nil
	},
}

var (
	fitDin      string
	fitGeoms    string
	fitTemplate string
	fitFitter   string
	fitCSV      string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit damping parameters for every combination",
	RunE: func(cmd *cobra.Command, args []string) error {
		fitter, err := resolveFitter(fitFitter)
		if err != nil {
			return err
		}
		opts := FitOptions{
			Base:     baseDir,
			Din:      fitDin,
			Geoms:    fitGeoms,
			Template: fitTemplate,
			Fitter:   fitter,
			CSVPath:  fitCSV,
		}
		failed, err := FitAll(opts, Combos, os.Stdout, logger.Sugar())
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d combinations failed", failed)
		}
		return nil
	},
}

var fitOneCmd = &cobra.Command{
	Use:   "fit-one",
	Short: "Fit one combination (parameters via REFDATA_FIT_* variables)",
	Long: `fit-one is the built-in fitting routine. It reads its parameters
from REFDATA_FIT_DIN, REFDATA_FIT_GEOMS, REFDATA_FIT_DIR,
REFDATA_FIT_METHOD, REFDATA_FIT_BASIS, REFDATA_FIT_A1 and
REFDATA_FIT_A2 and reports one OK or SKIP row on stdout, so "refdata
fit" (or any driver speaking the same protocol) can invoke it as a
child process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := FitOneFromEnv()
		if err != nil {
			return err
		}
		return FitOne(p, os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base", ".",
		"pipeline base directory")

	genCmd.Flags().StringVar(&genDin, "din", "", "coefficient-reference dataset file")
	genCmd.Flags().StringVar(&genGeoms, "geoms", "", "structure-file directory")
	genCmd.Flags().StringVar(&genTemplate, "template", DefaultDirTemplate,
		"result-directory template")
	genCmd.Flags().StringVar(&genMemory, "memory", "", "solver memory limit")
	genCmd.Flags().IntVar(&genThreads, "threads", 0, "solver thread count")
	genCmd.Flags().BoolVar(&genOverwrite, "overwrite", false,
		"rewrite input files that already exist")
	_ = genCmd.MarkFlagRequired("din")
	_ = genCmd.MarkFlagRequired("geoms")

	runCmd.Flags().StringVar(&runSolver, "solver", "", "solver executable")
	runCmd.Flags().BoolVarP(&runRecursive, "recursive", "r", false,
		"descend into subdirectories")
	runCmd.Flags().BoolVar(&runOverwrite, "overwrite", false,
		"re-run files that already show a completed result")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false,
		"report the would-be invocations without executing")

	fitCmd.Flags().StringVar(&fitDin, "din", "", "coefficient-reference dataset file")
	fitCmd.Flags().StringVar(&fitGeoms, "geoms", "", "structure-file directory")
	fitCmd.Flags().StringVar(&fitTemplate, "template", DefaultDirTemplate,
		"result-directory template")
	fitCmd.Flags().StringVar(&fitFitter, "fitter", "",
		"fitting command, whitespace-split (default: this binary's fit-one)")
	fitCmd.Flags().StringVar(&fitCSV, "csv", "", "also write the report to a CSV file")
	_ = fitCmd.MarkFlagRequired("din")

	rootCmd.AddCommand(genCmd, runCmd, fitCmd, fitOneCmd)
}

func main() {
	// load .env defaults if present
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
