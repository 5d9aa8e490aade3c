package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// EntryResult records what happened to one configured entry during a deploy pass.
type EntryResult struct {
	Index      int
	UserPoolID string
	ClientID   string
	// Transition is nil when the entry failed before planning.
	Transition Transition
	// ClientErr is the non-fatal client attribute update failure, if any.
	ClientErr error
	// Err is the fatal failure for this entry: missing ids, an invalid customDomain, or a
	// failed domain call. Only missing ids skip the client update.
	Err error
}

// Report is the outcome of a deploy pass, one result per entry in manifest order.
type Report struct {
	Entries []EntryResult
}

// Failed returns the entries whose reconciliation failed fatally.
func (r Report) Failed() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Err joins the fatal entry failures, or returns nil when every entry converged.
func (r Report) Err() error {
	var errs []error
	for _, e := range r.Failed() {
		errs = append(errs, fmt.Errorf("entry %d (client %s): %w", e.Index, e.ClientID, e.Err))
	}
	return errors.Join(errs...)
}

// Runner executes a deploy pass: for each entry, client attribute sync then domain reconciliation.
type Runner struct {
	client  *ClientSync
	domains *DomainReconciler
	logger  logging.Logger
}

// NewRunner wires the per-entry steps over pools.
func NewRunner(pools UserPools, opts ...Option) *Runner {
	o := buildOptions(opts)
	return &Runner{
		client:  NewClientSync(pools, opts...),
		domains: NewDomainReconciler(pools, opts...),
		logger:  o.logger,
	}
}

// Deploy processes entries one at a time in order. A failing entry never stops the next one;
// the returned error joins every fatal entry failure.
func (r *Runner) Deploy(ctx context.Context, configs []manifest.ClientConfig) (Report, error) {
	report := Report{Entries: make([]EntryResult, 0, len(configs))}
	for i, cfg := range configs {
		res := r.deployEntry(ctx, i, cfg)
		report.Entries = append(report.Entries, res)
	}
	failed := len(report.Failed())
	r.logger.Info("deploy.done", logging.Fields{"entries": len(configs), "failed": failed})
	return report, report.Err()
}

func (r *Runner) deployEntry(ctx context.Context, i int, cfg manifest.ClientConfig) EntryResult {
	res := EntryResult{Index: i, UserPoolID: cfg.UserPoolID, ClientID: cfg.ClientID}
	fields := logging.Fields{"index": i, "userPoolId": cfg.UserPoolID, "clientId": cfg.ClientID}
	if err := cfg.ValidateIdentity(); err != nil {
		res.Err = fmt.Errorf("invalid entry: %w", err)
		r.logger.Error("deploy.entry.invalid", fields.With("error", err))
		return res
	}
	res.ClientErr = r.client.Sync(ctx, cfg)
	if err := cfg.ValidateDomain(); err != nil {
		res.Err = fmt.Errorf("invalid customDomain: %w", err)
		r.logger.Error("deploy.entry.invalid", fields.With("error", err))
		return res
	}
	res.Transition, res.Err = r.domains.Reconcile(ctx, cfg)
	if res.Err != nil {
		r.logger.Error("deploy.entry.failed", fields.With("error", res.Err))
		return res
	}
	r.logger.Info("deploy.entry.done", fields.With("transition", string(res.Transition.Kind())))
	return res
}
