package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/commands/options"
	"tableflip.dev/logbook/pkg/runner/add"
)

func addImport(topLevel *cobra.Command, v *viper.Viper) {
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import JSON lines messages into the archive.",
		Long: options.Wrap80(`Import reads one JSON message per line, {"id":1,"date":"2021-01-05T10:00:00Z","user":"ada","content":"hi"},
from each file, or from stdin when the file is "-" or none is given. Messages with the same day and id replace each other.`),
		Example: `
logbook import export.jsonl
cat export.jsonl | logbook import
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, p, err := load(v)
			if err != nil {
				return output.HandleError(err)
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			s := add.Add{
				Inputs:      args,
				Stdin:       cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
