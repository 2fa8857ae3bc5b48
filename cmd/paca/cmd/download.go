package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paca-cli/paca"
)

func newDownloadCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "download <owner/model:tag>",
		Aliases: []string{"pull"},
		Short:   "Download a model into the cache",
		Long: "Resolve a model tag, bring every artifact file in the cache up to date " +
			"and print the local paths, one per line.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, v, args[0])
		},
	}

	cmd.Flags().Int("concurrency", paca.DefaultConcurrency, "number of files transferred in parallel")
	cmd.Flags().String("verify", string(paca.VerifyNone), "integrity check after transfer: none, size or sha256")
	cmd.Flags().BoolP("quiet", "q", false, "do not render progress")

	v.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))
	v.BindPFlag("verify", cmd.Flags().Lookup("verify"))

	return cmd
}

func runDownload(cmd *cobra.Command, v *viper.Viper, model string) error {
	mode, err := paca.ParseVerifyMode(v.GetString("verify"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if v.GetInt("concurrency") < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrUsage)
	}

	stderr := cmd.ErrOrStderr()
	opts := []paca.Option{
		paca.WithCacheDir(v.GetString("cache_dir")),
		paca.WithEnv(envLookup(v)),
		paca.WithConcurrency(v.GetInt("concurrency")),
		paca.WithVerify(mode),
		paca.WithLogger(newLogger(stderr, v.GetBool("verbose"))),
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	var bar *progressBar
	if !quiet {
		bar = newProgressBar(stderr)
		opts = append(opts, paca.WithProgress(bar.Update))
		fmt.Fprintf(stderr, "Resolving %s...\n", model)
	}

	paths, err := paca.Download(cmd.Context(), model, opts...)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", model, err)
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
