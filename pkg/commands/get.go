package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/commands/options"
	"tableflip.dev/logbook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command, v *viper.Viper) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the timeline or a month's dayline.",
		Example: `
logbook get timeline
logbook get dayline 2021-01 --html
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGetTimeline(cmd, v)
	addGetDayline(cmd, v)

	topLevel.AddCommand(cmd)
}

func addGetTimeline(topLevel *cobra.Command, v *viper.Viper) {
	ro := &options.RenderOptions{}

	cmd := &cobra.Command{
		Use:     "timeline",
		Short:   "Show every month of the archive grouped by year.",
		Aliases: []string{"months"},
		Args:    cobra.NoArgs,
		Example: `
logbook get timeline
logbook get timeline --reverse --window 1y
logbook get timeline --html
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, err := ro.GetWindow()
			if err != nil {
				return output.HandleError(err)
			}
			_, p, err := load(v)
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				Kind:        get.Timeline,
				Window:      window,
				Reverse:     ro.Reverse,
				HTML:        ro.HTML,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRenderArgs(cmd, ro)
	options.AddWindowArg(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addGetDayline(topLevel *cobra.Command, v *viper.Viper) {
	ro := &options.RenderOptions{}
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "dayline [YYYY-MM]",
		Short:   "Show the days of a month and the page each lands on.",
		Aliases: []string{"days"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("too many months, confused")
			}
			if len(args) == 1 {
				mo.MonthString = args[0]
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return monthCompletions(v, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		Example: `
logbook get dayline
logbook get dayline 2021-01 --calendar
logbook get dayline --month 3 --html
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			month, err := mo.GetMonth(time.Now().UTC())
			if err != nil {
				return output.HandleError(err)
			}
			cfg, p, err := load(v)
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				Kind:        get.Dayline,
				Month:       month,
				Reverse:     ro.Reverse,
				HTML:        ro.HTML,
				Calendar:    ro.Calendar,
				PerPage:     cfg.PerPage,
				NewOnTop:    cfg.NewOnTop,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRenderArgs(cmd, ro)
	options.AddCalendarArg(cmd, ro)
	options.AddMonthArgs(cmd, mo)
	_ = cmd.RegisterFlagCompletionFunc("month", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return monthCompletions(v, toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
