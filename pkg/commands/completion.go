package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(logbook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(logbook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

func monthCompletions(v *viper.Viper, toComplete string) []string {
	cfg, p, err := load(v)
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range p.Months(context.Background(), cfg.NewOnTop) {
		if strings.HasPrefix(m.Slug, toComplete) {
			out = append(out, m.Slug)
		}
	}
	return out
}
