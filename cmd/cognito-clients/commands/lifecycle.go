package commands

import (
	"github.com/spf13/cobra"

	"github.com/mikecbrant/cognito-userpool-clients/internal/plugin"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Sync client OAuth settings and reconcile custom domains",
		Long:  "Runs the deploy pass for every cognitoClients entry, the same pass the after-deploy hook runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.dispatch(cmd, plugin.EventManualDeploy)
		},
	}
}

// NewRemoveCmd creates the remove command
func NewRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete every declared custom domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.dispatch(cmd, plugin.EventBeforeRemove)
		},
	}
}

// NewPackageCmd creates the package command
func NewPackageCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Add user pool id outputs to a compiled CloudFormation template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.dispatch(cmd, plugin.EventAfterPackage)
		},
	}
	cmd.Flags().StringVarP(&e.flags.TemplatePath, "template", "t", "", "compiled template (default <manifest dir>/"+plugin.DefaultTemplatePath+")")
	return cmd
}

// NewHookCmd creates the hook command
func NewHookCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "hook <event>",
		Short:     "Run the capability bound to a lifecycle event",
		Long:      "Accepts a short event name or the host framework's hook name",
		Args:      cobra.ExactArgs(1),
		ValidArgs: validEvents(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := plugin.ParseEvent(args[0])
			if err != nil {
				return err
			}
			return e.dispatch(cmd, ev)
		},
	}
}

func validEvents() []string {
	var out []string
	for _, ev := range plugin.Events() {
		out = append(out, string(ev))
	}
	return out
}
