package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/logbook/pkg/config"
	"tableflip.dev/logbook/pkg/store"
)

type Info struct {
	Config      *config.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}

	if n.Config == nil {
		return errors.New("can not show info, no config")
	}
	file := n.Config.File
	if file == "" {
		file = "none, using defaults"
	}
	_, _ = fmt.Fprintln(out, "Config.file:       ", file)
	_, _ = fmt.Fprintln(out, "Config.path:       ", n.Config.Path)
	_, _ = fmt.Fprintln(out, "Config.publish_dir:", n.Config.PublishDir)
	_, _ = fmt.Fprintln(out, "Config.per_page:   ", n.Config.PerPage)
	_, _ = fmt.Fprintln(out, "Config.new_on_top: ", n.Config.NewOnTop)

	if n.Persistence == nil {
		return errors.New("failed to create persistence object")
	}

	_, _ = fmt.Fprintf(out, "Months:\n")
	total := 0
	months := n.Persistence.Months(ctx, n.Config.NewOnTop)
	for _, m := range months {
		_, _ = fmt.Fprintf(out, "  %s  %d\n", m.Slug, m.Count)
		total += m.Count
	}
	if len(months) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no messages")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Total: %d messages in %d months\n", total, len(months))

	return nil
}
