package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
)

// NewDiscoverCmd creates the discover command
func NewDiscoverCmd(_ *env) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "discover [root]",
		Short: "List serverless manifests that declare cognitoClients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			paths, err := manifest.Discover(root, pattern)
			if err != nil {
				return fmt.Errorf("failed to discover manifests: %w", err)
			}

			out := cmd.OutOrStdout()
			found := 0
			for _, p := range paths {
				m, err := manifest.Load(p)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipping %s: %v\n", p, err)
					continue
				}
				if len(m.Clients) == 0 {
					continue
				}
				found++
				fmt.Fprintf(out, "%s\t%s\tclients=%d\tdomains=%d\n", p, m.Service, len(m.Clients), len(m.Domains()))
			}
			if found == 0 {
				fmt.Fprintln(out, "No manifests with cognitoClients found")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", manifest.DefaultPattern, "doublestar glob relative to root")
	return cmd
}
