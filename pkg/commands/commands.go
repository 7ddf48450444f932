package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/logbook/pkg/commands/options"
	"tableflip.dev/logbook/pkg/config"
	"tableflip.dev/logbook/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {
	return NewWithConfig(config.New())
}

// NewWithConfig builds the command tree on top of v.
func NewWithConfig(v *viper.Viper) *cobra.Command {
	verbose := false

	cmd := &cobra.Command{
		Use:   "logbook",
		Short: options.Wrap80("Publish a chat archive as static pages: the timeline, daylines and pagination indexes."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log what is being done.")
	options.AddOutputArg(cmd, output)

	AddCommands(cmd, v)
	return cmd
}

func AddCommands(topLevel *cobra.Command, v *viper.Viper) {
	addImport(topLevel, v)
	addBuild(topLevel, v)
	addGet(topLevel, v)
	addInfo(topLevel, v)
	addMCP(topLevel, v)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func load(v *viper.Viper) (*config.Config, store.Persistence, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}
