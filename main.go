package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "yekwrap"

// version is the application version, set via ldflags.
var version string = "dev"

// flagKeys maps each flag to its viper key (snake_case, as used in the
// config file and after the YEKWRAP_ env prefix).
var flagKeys = map[string]string{
	"top-file-count":                 "top_file_count",
	"top-dir-count":                  "top_dir_count",
	"warn-large-files-by-line-count": "warn_large_files_by_line_count",
	"from-clipboard":                 "from_clipboard",
	"interactive":                    "interactive",
	"collector":                      "collector",
	"ignore-file":                    "ignore_file",
	"tokenizer":                      "tokenizer",
	"model":                          "model",
	"languages-file":                 "languages_file",
	"top-lang-count":                 "top_lang_count",
	"pdf":                            "pdf",
	"osc52":                          "osc52",
	"verbose":                        "verbose",
}

// newRootCmd builds the command with its own viper instance. env fills in
// any collaborator left nil with the real implementation.
func newRootCmd(v *viper.Viper, env Env) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   appName + " [PATH]",
		Short: "Run yek, report the largest files and directories, and copy the result to the clipboard.",
		Long: `yekwrap runs 'yek --json' (in PATH when given), prints approximate token,
file and line counts with the largest directories and files, and copies
every file, each preceded by a ">>>> <filename>" line, to the clipboard.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			opts := optionsFromViper(v, path)

			runEnv := env
			if runEnv.Logger == nil {
				logger, err := newLogger(opts.Verbose)
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				defer func() { _ = logger.Sync() }()
				runEnv.Logger = logger
			}
			if used := v.ConfigFileUsed(); used != "" {
				runEnv.Logger.Debug("using config file", zap.String("file", used))
			}
			completeEnv(&runEnv, opts, cmd)
			return Run(cmd.Context(), opts, runEnv)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/yekwrap/config.toml)")

	flags := cmd.Flags()
	flags.Int("top-file-count", 9, "Number of top files to display")
	flags.Int("top-dir-count", 6, "Number of top directories to display")
	flags.Int("warn-large-files-by-line-count", 300, "Highlight files with at least this many lines")
	flags.Bool("from-clipboard", false, "Read the target directory from the clipboard")
	flags.Bool("interactive", false, "Pick the target directory with a fuzzy finder")
	flags.String("collector", defaultCollector, "Collector binary to run with --json")
	flags.String("ignore-file", "", "Drop collected files matching this gitignore-style file")
	flags.String("tokenizer", "", "Also count tokens exactly: tiktoken or huggingface")
	flags.String("model", "", "Tokenizer model (e.g., gpt-4o, gpt2) or a local tokenizer.json for huggingface")
	flags.Int("top-lang-count", 0, "Number of top languages to display (0 to hide)")
	flags.String("languages-file", "", "Linguist-style languages.yml used for --top-lang-count")
	flags.String("pdf", "", "Also save the report and file contents as a PDF")
	flags.Bool("osc52", false, "Copy through the terminal with an OSC 52 escape (works over SSH)")
	flags.BoolP("verbose", "v", false, "Log diagnostics to stderr")

	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	v.SetDefault("top_file_count", 9)
	v.SetDefault("top_dir_count", 6)
	v.SetDefault("warn_large_files_by_line_count", 300)
	v.SetDefault("collector", defaultCollector)
	v.SetDefault("top_lang_count", 0)

	return cmd
}

// completeEnv fills in the real implementations for unset collaborators.
func completeEnv(env *Env, opts Options, cmd *cobra.Command) {
	if env.Out == nil {
		env.Out = cmd.OutOrStdout()
	}
	if env.Clipboard == nil {
		env.Clipboard = NewClipboard(opts.OSC52)
	}
	if env.NewTokenizer == nil {
		env.NewTokenizer = NewTokenizer
	}
	if env.NewCollector == nil {
		logger := env.Logger
		binary := opts.Collector
		env.NewCollector = func(dir string) *Collector {
			return &Collector{Binary: binary, Dir: dir, Logger: logger}
		}
	}
	if env.Resolver == nil {
		env.Resolver = &TargetResolver{
			Clipboard: env.Clipboard,
			Pick:      pickDirectory,
			Clone:     cloneGitRepo,
			Progress:  cmd.ErrOrStderr(),
			Logger:    env.Logger,
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("YEKWRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("%w: error reading config file: %v", ErrInvalidOption, err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(viper.New(), Env{})
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
