package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk"
	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/cognito"
	"github.com/mikecbrant/cognito-userpool-clients/internal/config"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/plugin"
	"github.com/mikecbrant/cognito-userpool-clients/internal/reconcile"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// PoolsFactory builds the Cognito surface for resolved settings.
type PoolsFactory func(ctx context.Context, s config.Settings, logger logging.Logger) (reconcile.UserPools, error)

// AWSPools is the default PoolsFactory, backed by the AWS SDK.
func AWSPools(ctx context.Context, s config.Settings, logger logging.Logger) (reconcile.UserPools, error) {
	cfg, err := awssdk.LoadDefault(ctx, s.Region, s.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cognito.NewFromConfig(cfg, logger), nil
}

type env struct {
	flags  config.Flags
	debug  bool
	dryRun bool

	pools  PoolsFactory
	logger logging.Logger
}

// Option customizes the root command.
type Option func(*env)

// WithPools replaces the AWS-backed Cognito surface.
func WithPools(f PoolsFactory) Option { return func(e *env) { e.pools = f } }

// WithLogger replaces the zap console logger.
func WithLogger(l logging.Logger) Option { return func(e *env) { e.logger = l } }

// NewRootCmd creates the cognito-clients command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	e := &env{pools: AWSPools}
	for _, opt := range opts {
		opt(e)
	}

	rootCmd := &cobra.Command{
		Use:           "cognito-clients",
		Short:         "Sync Cognito user pool client OAuth settings and custom domains",
		Long:          "Reads cognitoClients from a serverless manifest, pushes OAuth settings to each app client, and reconciles the user pool custom domain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&e.flags.ManifestPath, "config", "c", "", "path to the serverless manifest (default "+config.DefaultManifestPath+")")
	pf.StringVarP(&e.flags.Stage, "stage", "s", "", "deployment stage")
	pf.StringVarP(&e.flags.Region, "region", "r", "", "AWS region")
	pf.StringVar(&e.flags.Profile, "profile", "", "AWS shared config profile")
	pf.BoolVar(&e.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&e.dryRun, "dry-run", false, "log domain create/update/delete instead of executing them; client settings are still pushed")

	rootCmd.AddCommand(NewDeployCmd(e))
	rootCmd.AddCommand(NewRemoveCmd(e))
	rootCmd.AddCommand(NewPackageCmd(e))
	rootCmd.AddCommand(NewHookCmd(e))
	rootCmd.AddCommand(NewDiscoverCmd(e))

	return rootCmd
}

// settings resolves flags (only those explicitly set) over the environment.
func (e *env) settings(cmd *cobra.Command) config.Settings {
	f := e.flags
	if cmd.Flags().Changed("debug") {
		f.Debug = &e.debug
	}
	if cmd.Flags().Changed("dry-run") {
		f.DryRun = &e.dryRun
	}
	return config.Load(f)
}

// run holds what a lifecycle sub-command needs.
type run struct {
	plugin *plugin.Plugin
	sync   func()
}

func (e *env) setup(cmd *cobra.Command) (*run, error) {
	s := e.settings(cmd)
	m, err := manifest.Load(s.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	s.ApplyManifest(m.Provider)

	logger, sync, err := e.buildLogger(s.Debug)
	if err != nil {
		return nil, err
	}
	pools, err := e.pools(cmd.Context(), s, logger)
	if err != nil {
		sync()
		return nil, err
	}
	return &run{plugin: plugin.New(s, m, pools, logger), sync: sync}, nil
}

func (e *env) buildLogger(debug bool) (logging.Logger, func(), error) {
	if e.logger != nil {
		return e.logger, func() {}, nil
	}
	zl, err := logging.NewConsoleZap(debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logging.NewZap(zl), func() { syncZap(zl) }, nil
}

func syncZap(zl *zap.Logger) {
	// stderr sync fails on some terminals; nothing useful to do with that error
	_ = zl.Sync()
}

func (e *env) dispatch(cmd *cobra.Command, ev plugin.Event) error {
	r, err := e.setup(cmd)
	if err != nil {
		return err
	}
	defer r.sync()
	err = r.plugin.Dispatch(cmd.Context(), ev)
	if ev == plugin.EventAfterDeploy || ev == plugin.EventManualDeploy {
		printReport(cmd.OutOrStdout(), r.plugin.Report())
	}
	return err
}

func printReport(w io.Writer, report reconcile.Report) {
	for _, entry := range report.Entries {
		status := "ok"
		switch {
		case entry.Err != nil:
			status = "failed: " + entry.Err.Error()
		case entry.ClientErr != nil:
			status = "domain ok, client update failed: " + entry.ClientErr.Error()
		}
		kind := "-"
		if entry.Transition != nil {
			kind = string(entry.Transition.Kind())
		}
		fmt.Fprintf(w, "%s/%s\t%s\t%s\n", entry.UserPoolID, entry.ClientID, kind, status)
	}
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
