package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrUsage marks invalid command line arguments.
var ErrUsage = errors.New("invalid arguments")

// Execute runs the paca command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree with its own configuration registry.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "paca",
		Short: "GGUF model downloader",
		Long:  "Download GGUF models from a Hugging Face style registry into the llama.cpp cache.",

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ~/.config/paca/config.yaml)")
	root.PersistentFlags().String("cache-dir", "", "cache directory (default: <user cache dir>/llama.cpp)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	v.BindPFlag("cache_dir", root.PersistentFlags().Lookup("cache-dir"))
	v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	root.AddCommand(newDownloadCmd(v), newListCmd(v), newVersionCmd())
	return root
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfg, _ := cmd.Flags().GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PACA")
	v.AutomaticEnv()

	// Registry settings keep their unprefixed names shared with llama.cpp.
	v.BindEnv("model_endpoint", "MODEL_ENDPOINT")
	v.BindEnv("hf_endpoint", "HF_ENDPOINT")
	v.BindEnv("hf_token", "HF_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// envLookup resolves registry variables through v so config file values
// apply when the environment leaves them unset.
func envLookup(v *viper.Viper) func(string) string {
	return func(key string) string {
		return v.GetString(key)
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paca")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "paca")
	}
	return ".paca"
}

// exactArgs is cobra.ExactArgs with errors marked as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
