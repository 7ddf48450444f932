package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/config"
)

// BuildOptions are build flags that are not config keys.
type BuildOptions struct {
	Watch bool
}

// AddBuildArgs registers the build flags. Flags that mirror config keys are
// bound to v so they override .logbook.yaml and LOGBOOK_* only when set.
func AddBuildArgs(cmd *cobra.Command, o *BuildOptions, v *viper.Viper) error {
	cmd.Flags().BoolVar(&o.Watch, "watch", false,
		"Keep rebuilding when the archive changes.")

	cmd.Flags().String("publish-dir", "", "Directory the fragments are written to.")
	cmd.Flags().Int("per-page", 0, "Messages per month page.")
	cmd.Flags().Bool("new-on-top", false, "Newest messages first on month pages.")
	cmd.Flags().Bool("script", false, "Write fragments as document.write scripts.")
	cmd.Flags().Bool("incremental", false, "Only rewrite the newest day counters.")
	cmd.Flags().Bool("day-index", false, "Write the dayline of every month.")

	for flag, key := range map[string]string{
		"publish-dir": config.KeyPublishDir,
		"per-page":    config.KeyPerPage,
		"new-on-top":  config.KeyNewOnTop,
		"script":      config.KeyScriptFragments,
		"incremental": config.KeyIncrementalBuilds,
		"day-index":   config.KeyShowDayIndex,
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
