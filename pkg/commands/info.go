package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, v *viper.Viper) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the archive and where it is stored.",
		Example: `
logbook info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load(v)
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:      cfg,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
