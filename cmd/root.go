package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bundlefile/internal/config"
	"github.com/xll-gen/bundlefile/internal/generator"
	"github.com/xll-gen/bundlefile/internal/ui"
	"github.com/xll-gen/bundlefile/pkg/log"
)

var (
	configPath string
	logLevel   string
	logFile    string
	chunkSize  int
	inPlace    bool
	header     bool
)

// rootCmd bundles one file when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "bundlefile <input> <output> <package> <variable>",
	Short: "Embed a binary file in a generated Go source file",
	Long: `bundlefile reads <input> and writes <output>, a Go source file declaring

    package <package>
    var <variable> = []byte{...}

with one decimal literal per input byte, so static assets can be compiled
into a binary. The output is replaced atomically unless --in-place is set.`,
	Args:         cobra.ExactArgs(4),
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if code := execBundle(cmd, args, printer); code != 0 {
			os.Exit(code)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Configuration file (default: ./"+config.DefaultPath+" if present)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Input read buffer size in bytes (0 = default)")
	rootCmd.Flags().BoolVar(&inPlace, "in-place", false, "Truncate and rewrite the output instead of replacing it atomically")
	rootCmd.Flags().BoolVar(&header, "header", false, "Prefix the output with a 'Code generated ... DO NOT EDIT.' comment")
}

// setup loads the configuration, applies flag overrides and initializes logging.
func setup(cmd *cobra.Command) (*config.Config, error) {
	path, optional := configPath, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("chunk-size") {
		cfg.Gen.ChunkSize = chunkSize
	}
	if flags.Changed("in-place") {
		atomic := !inPlace
		cfg.Gen.Atomic = &atomic
	}
	if flags.Changed("header") {
		cfg.Gen.Header = header
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.Path = logFile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// execBundle runs the root command and returns its exit code. A failure
// is reported as exactly one line on p.Err.
func execBundle(cmd *cobra.Command, args []string, p *ui.Printer) int {
	cfg, err := setup(cmd)
	if err == nil {
		err = runBundle(cfg, args)
	}
	log.Close()
	if err != nil {
		p.PrintError("bundlefile", err)
		return 1
	}
	return 0
}

// runBundle generates args[1] from args[0] declaring package args[2] and
// variable args[3]. Success is silent; the generated file is the only output.
func runBundle(cfg *config.Config, args []string) error {
	_, err := generator.Generate(cfg, generator.Job{
		Input:    args[0],
		Output:   args[1],
		Package:  args[2],
		Variable: args[3],
	})
	return err
}

var printer = ui.New()
