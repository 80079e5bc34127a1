// frozenguard reports mutations of frozen Kotlin/Native objects.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/frozenguard/internal/config"
	"github.com/phobologic/frozenguard/internal/driver"
	"github.com/phobologic/frozenguard/internal/logging"
	"github.com/phobologic/frozenguard/internal/report"
)

var version = "dev"

// errViolations makes --exit-code fail the run without printing an error.
var errViolations = errors.New("frozen-object mutations found")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errViolations) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type checkOptions struct {
	configPath  string
	format      string
	cachePath   string
	jobs        int
	maxFileSize int64
	noColor     bool
	exitCode    bool
	logDest     string
	logLevel    string
	disable     []string
	jvm         bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts checkOptions
	root := &cobra.Command{
		Use:   "frozenguard [path]",
		Short: "Report mutations of frozen Kotlin/Native objects",
		Long: `frozenguard scans a Kotlin project for writes to objects that are frozen,
either explicitly through freeze() or implicitly as Kotlin/Native singletons.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("frozenguard {{.Version}}\n")
	addCheckFlags(root, &opts)

	var checkOpts checkOptions
	check := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze a project (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &checkOpts)
		},
	}
	addCheckFlags(check, &checkOpts)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "frozenguard %s\n", version)
			return err
		},
	}

	root.AddCommand(check, versionCmd, newInitCmd())
	return root
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default <path>/"+config.FileName+" if present)")
	f.StringVarP(&opts.format, "format", "f", config.FormatText, "output format: text, json or toon")
	f.StringVar(&opts.cachePath, "cache", "", "cache file path")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel parsers (default GOMAXPROCS)")
	f.Int64Var(&opts.maxFileSize, "max-file-size", config.DefaultMaxFileSize, "skip files larger than this many bytes")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with status 1 when violations are reported")
	f.StringVar(&opts.logDest, "log", logging.Discard, `log destination: "stderr" or a file path`)
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.StringArrayVar(&opts.disable, "disable", nil, "disable an inspection by ID (repeatable)")
	f.BoolVar(&opts.jvm, "jvm", false, "treat every source set as non-native")
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	cfg, err := loadConfig(cmd, root, opts)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(opts.logDest, opts.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	res, err := driver.Run(cmd.Context(), driver.Options{
		Root:      root,
		Config:    cfg,
		Jobs:      opts.jobs,
		CachePath: opts.cachePath,
		Version:   version,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	err = report.Write(cmd.OutOrStdout(), res.Report, report.Options{
		Format:     cfg.Format,
		NoColor:    opts.noColor,
		SourceLine: res.SourceLine,
	})
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if opts.exitCode && len(res.Report.Violations) > 0 {
		return errViolations
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cobra.Command, root string, opts *checkOptions) (config.Config, error) {
	cfg := config.Default()
	path := opts.configPath
	if path == "" {
		candidate := filepath.Join(root, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = opts.maxFileSize
	}
	if opts.jvm {
		cfg.Native = false
	}
	if err := cfg.Disable(opts.disable...); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
