package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary through ldflags.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewRootCommand assembles the CLI: serve, migrate and version.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "sessionauth",
		Short:         "User registration and session token service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCommand(&envFile, info),
		newMigrateCommand(&envFile),
		newVersionCommand(info),
	)

	return root
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}

func (b BuildInfo) String() string {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`
	return fmt.Sprintf(tmpl, orNA(b.Version), orNA(b.Date), orNA(b.Commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
