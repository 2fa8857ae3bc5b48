package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paca-cli/paca"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached models",
		Long:  "List the model references whose download completed in the cache directory.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := paca.ListCached(v.GetString("cache_dir"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no cached models)")
				return nil
			}
			for _, r := range refs {
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
}
