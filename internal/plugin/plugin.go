package plugin

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mikecbrant/cognito-userpool-clients/internal/config"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/reconcile"
	"github.com/mikecbrant/cognito-userpool-clients/internal/template"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// DefaultTemplatePath is where the host writes the compiled update-stack template,
// relative to the manifest directory.
const DefaultTemplatePath = ".serverless/cloudformation-template-update-stack.json"

// HookFunc is the capability bound to an event.
type HookFunc func(ctx context.Context) error

// Plugin binds lifecycle events to the deploy, removal, and packaging passes.
type Plugin struct {
	settings config.Settings
	manifest *manifest.Manifest
	pools    reconcile.UserPools
	logger   logging.Logger

	fired  map[Event]bool
	report reconcile.Report
}

// New builds a plugin over an explicit settings value and a Cognito surface.
// A nil manifest behaves like one without client entries.
func New(settings config.Settings, m *manifest.Manifest, pools reconcile.UserPools, logger logging.Logger) *Plugin {
	if m == nil {
		m = &manifest.Manifest{}
	}
	return &Plugin{
		settings: settings,
		manifest: m,
		pools:    pools,
		logger:   logging.OrNop(logger),
		fired:    map[Event]bool{},
	}
}

// Hooks returns the event-to-capability table.
func (p *Plugin) Hooks() map[Event]HookFunc {
	deploy := func(ctx context.Context) error {
		_, err := p.Deploy(ctx)
		return err
	}
	return map[Event]HookFunc{
		EventAfterPackage: p.Package,
		EventAfterDeploy:  deploy,
		EventManualDeploy: deploy,
		EventBeforeRemove: p.Remove,
	}
}

// Dispatch runs the hook bound to e. Each event runs at most once per plugin instance.
func (p *Plugin) Dispatch(ctx context.Context, e Event) error {
	hook, ok := p.Hooks()[e]
	if !ok {
		return fmt.Errorf("no hook registered for event %q", e)
	}
	if p.fired[e] {
		p.logger.Debug("plugin.hook.repeat", logging.Fields{"event": string(e)})
		return nil
	}
	p.fired[e] = true
	p.logger.Info("plugin.hook", p.fields().With("event", string(e)).With("hook", e.HostHook()))
	return hook(ctx)
}

// Deploy runs the deploy pass over every configured entry.
func (p *Plugin) Deploy(ctx context.Context) (reconcile.Report, error) {
	runner := reconcile.NewRunner(p.pools, p.options()...)
	report, err := runner.Deploy(ctx, p.manifest.Clients)
	p.report = report
	return report, err
}

// Report returns the result of the most recent deploy pass.
func (p *Plugin) Report() reconcile.Report { return p.report }

// Remove releases every declared custom domain.
func (p *Plugin) Remove(ctx context.Context) error {
	p.logger.Info("plugin.remove.start", p.fields())
	return reconcile.NewRemovalSweep(p.pools, p.options()...).Sweep(ctx, p.manifest.Clients)
}

// Package adds user pool id outputs to the compiled template.
func (p *Plugin) Package(_ context.Context) error {
	path := p.templatePath()
	names, err := template.AddUserPoolOutputsFile(path)
	if err != nil {
		return err
	}
	p.logger.Info("plugin.package.outputs", p.fields().With("template", path).With("outputs", names))
	return nil
}

func (p *Plugin) templatePath() string {
	if p.settings.TemplatePath != "" {
		return p.settings.TemplatePath
	}
	dir := "."
	if p.manifest.Path != "" {
		dir = filepath.Dir(p.manifest.Path)
	}
	return filepath.Join(dir, DefaultTemplatePath)
}

func (p *Plugin) options() []reconcile.Option {
	return []reconcile.Option{reconcile.WithLogger(p.logger), reconcile.WithDryRun(p.settings.DryRun)}
}

func (p *Plugin) fields() logging.Fields {
	return logging.Fields{"service": p.manifest.Service, "stage": p.settings.Stage, "region": p.settings.Region}
}
