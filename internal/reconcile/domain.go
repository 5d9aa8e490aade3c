package reconcile

import (
	"context"
	"fmt"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/cognito"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// UserPools is the remote surface driven by the reconciler. *cognito.Service implements it.
type UserPools interface {
	DescribeUserPool(ctx context.Context, userPoolID string) (cognito.UserPool, error)
	DescribeUserPoolDomain(ctx context.Context, domain string) (cognito.DomainDescription, error)
	CreateUserPoolDomain(ctx context.Context, userPoolID, domain, certificateARN string) error
	UpdateUserPoolDomain(ctx context.Context, userPoolID, domain, certificateARN string) error
	DeleteUserPoolDomain(ctx context.Context, userPoolID, domain string) error
	UpdateUserPoolClient(ctx context.Context, attrs cognito.ClientAttributes) error
}

var _ UserPools = (*cognito.Service)(nil)

// Option configures the reconcilers in this package.
type Option func(*options)

type options struct {
	logger logging.Logger
	dryRun bool
}

// WithLogger sets the logger; the default discards.
func WithLogger(l logging.Logger) Option { return func(o *options) { o.logger = logging.OrNop(l) } }

// WithDryRun makes domain create/update/delete calls log instead of execute. Describe calls
// and the client attribute update still run.
func WithDryRun(dryRun bool) Option { return func(o *options) { o.dryRun = dryRun } }

func buildOptions(opts []Option) options {
	o := options{logger: logging.NopLogger{}}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// DomainReconciler converges the custom domain of one user pool to its declared state.
type DomainReconciler struct {
	pools UserPools
	options
}

// NewDomainReconciler returns a reconciler issuing calls through pools.
func NewDomainReconciler(pools UserPools, opts ...Option) *DomainReconciler {
	return &DomainReconciler{pools: pools, options: buildOptions(opts)}
}

// Reconcile describes the pool fresh, plans the transition, and executes it. Any remote
// failure aborts this entry and is returned; the transition is returned whenever it was planned.
func (r *DomainReconciler) Reconcile(ctx context.Context, cfg manifest.ClientConfig) (Transition, error) {
	pool, err := r.pools.DescribeUserPool(ctx, cfg.UserPoolID)
	if err != nil {
		return nil, err
	}
	t := Plan(cfg.CustomDomain, pool.Domain())
	fields := logging.Fields{"userPoolId": pool.ID, "clientId": cfg.ClientID, "transition": string(t.Kind())}
	r.logger.Debug("domain.plan", fields)

	switch t := t.(type) {
	case NoDomain:
		return t, nil
	case DomainObservedOnly:
		return t, r.delete(ctx, pool.ID, t.Observed, fields)
	case DomainDeclaredOnly:
		return t, r.create(ctx, cfg.UserPoolID, t.Declared, fields)
	case DomainRenamed:
		// the pool can only hold one domain: release the old binding before creating the new one
		if err := r.delete(ctx, pool.ID, t.From, fields); err != nil {
			return t, err
		}
		return t, r.create(ctx, cfg.UserPoolID, t.To, fields)
	case DomainUnchanged:
		return t, r.rotateCertificate(ctx, cfg.UserPoolID, t.Declared, fields)
	default:
		return t, fmt.Errorf("unhandled domain transition %T", t)
	}
}

// rotateCertificate compares the bound certificate with the declared one; it never writes
// unless the remote description carries a custom domain config with a different ARN.
func (r *DomainReconciler) rotateCertificate(ctx context.Context, userPoolID string, declared manifest.CustomDomain, fields logging.Fields) error {
	desc, err := r.pools.DescribeUserPoolDomain(ctx, declared.Name)
	if err != nil {
		return err
	}
	if desc.CustomDomainConfig == nil || desc.CustomDomainConfig.CertificateARN == declared.CertificateARN {
		r.logger.Debug("domain.certificate.current", fields.With("domain", declared.Name))
		return nil
	}
	if declared.CertificateARN == "" {
		r.logger.Warn("domain.certificate.undeclared", fields.With("domain", declared.Name).With("observedCertificateArn", desc.CustomDomainConfig.CertificateARN))
		return nil
	}
	f := fields.With("domain", declared.Name).With("certificateArn", declared.CertificateARN).With("previousCertificateArn", desc.CustomDomainConfig.CertificateARN)
	return r.mutate("domain.certificate.rotate", f, func() error {
		return r.pools.UpdateUserPoolDomain(ctx, userPoolID, declared.Name, declared.CertificateARN)
	})
}

func (r *DomainReconciler) create(ctx context.Context, userPoolID string, d manifest.CustomDomain, fields logging.Fields) error {
	return r.mutate("domain.create", fields.With("domain", d.Name).With("certificateArn", d.CertificateARN), func() error {
		return r.pools.CreateUserPoolDomain(ctx, userPoolID, d.Name, d.CertificateARN)
	})
}

func (r *DomainReconciler) delete(ctx context.Context, userPoolID, domain string, fields logging.Fields) error {
	return r.mutate("domain.delete", fields.With("domain", domain), func() error {
		return r.pools.DeleteUserPoolDomain(ctx, userPoolID, domain)
	})
}

func (o *options) mutate(msg string, fields logging.Fields, call func() error) error {
	if o.dryRun {
		o.logger.Info(msg+".skipped", fields.With("dryRun", true))
		return nil
	}
	o.logger.Info(msg, fields)
	return call()
}
