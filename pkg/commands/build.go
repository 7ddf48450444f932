package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/commands/options"
	"tableflip.dev/logbook/pkg/runner/build"
)

func addBuild(topLevel *cobra.Command, v *viper.Viper) {
	bo := &options.BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the index fragments into the publish dir.",
		Long: options.Wrap80(`Build renders the timeline index and, for every month, the dayline,
the pagination strip and the day counters. Flags override .logbook.yaml and LOGBOOK_* settings.`),
		Example: `
logbook build
logbook build --publish-dir public --new-on-top --per-page 200
logbook build --watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load(v)
			if err != nil {
				return output.HandleError(err)
			}
			s := build.Build{
				Config:      cfg,
				Persistence: p,
				Watch:       bo.Watch,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	if err := options.AddBuildArgs(cmd, bo, v); err != nil {
		panic(err)
	}

	topLevel.AddCommand(cmd)
}
