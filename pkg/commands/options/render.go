package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/logbook/pkg/timeutil"
)

// RenderOptions control how get shows an index.
type RenderOptions struct {
	Reverse  bool
	HTML     bool
	Calendar bool
	Window   string
}

func AddRenderArgs(cmd *cobra.Command, o *RenderOptions) {
	cmd.Flags().BoolVarP(&o.Reverse, "reverse", "r", false,
		"Show newest first.")
	cmd.Flags().BoolVar(&o.HTML, "html", false,
		"Print the HTML fragment instead of a table.")
}

func AddCalendarArg(cmd *cobra.Command, o *RenderOptions) {
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Also show the month as a calendar.")
}

func AddWindowArg(cmd *cobra.Command, o *RenderOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", "",
		`Only show months inside the window, example: --window=12w or --window=1y.`)
}

func (o *RenderOptions) GetWindow() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Window)
}
