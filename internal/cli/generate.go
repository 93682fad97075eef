package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/embeddedkit/halgen/internal/config"
	"github.com/embeddedkit/halgen/internal/cparse"
	"github.com/embeddedkit/halgen/internal/runner"
)

var (
	quietFlag   bool
	watchFlag   bool
	workersFlag int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <compile-commands> <input-root> [outdir]",
	Short: "Generate C++ wrappers for HAL/LL sources",
	Long: `Generate scans the immediate subdirectories of the input root for
vendor sources (*hal*.c and *ll*.h), parses each one with the compiler
flags recorded in the compilation database, and writes one .hpp wrapper
per accepted file into the output directory.

Individual file failures are reported on stderr and never stop the batch;
the exit code is zero regardless of per-file outcomes.

Examples:
  # Generate wrappers next to the current directory
  halgen generate build/compile_commands.json Drivers/

  # Generate into a dedicated directory, quietly
  halgen generate build Drivers/ gen/wrappers --quiet

  # Keep regenerating as headers change
  halgen generate build Drivers/ gen/wrappers --watch
`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for source changes and regenerate")
	generateCmd.Flags().IntVar(&workersFlag, "workers", 0, "Parallel file workers (default: number of CPUs)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling generation...")
		cancel()
	}()

	dbPath := args[0]
	inputRoot := args[1]
	outDir := "."
	if len(args) > 2 {
		outDir = args[2]
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := cparse.LoadCompilationDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to load compilation database: %w", err)
	}

	discovery, err := runner.NewFileDiscovery(inputRoot, cfg.Paths.Patterns)
	if err != nil {
		return fmt.Errorf("invalid discovery pattern: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	cache, err := runner.NewParseCache(cfg.Generator.CacheCapacity)
	if err != nil {
		return fmt.Errorf("failed to create parse cache: %w", err)
	}
	defer cache.Close()

	workers := cfg.Generator.Workers
	if workersFlag > 0 {
		workers = workersFlag
	}

	r := runner.NewRunner(db, cache, runner.Options{
		OutDir:     outDir,
		Workers:    workers,
		ExtraFlags: cfg.Generator.ExtraDefines,
		Progress:   NewCLIProgressReporter(quietFlag),
	})

	if _, err := r.Run(ctx, files); err != nil {
		return fmt.Errorf("generation cancelled")
	}

	if watchFlag {
		if !quietFlag {
			log.Println("Starting watch mode...")
		}
		w, err := runner.NewWatcher(r, discovery, inputRoot)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watch mode failed: %w", err)
		}
		if !quietFlag {
			log.Println("Watch mode stopped")
		}
	}

	return nil
}
