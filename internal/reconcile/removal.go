package reconcile

import (
	"context"
	"errors"
	"fmt"

	awserrors "github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/errors"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// RemovalSweep releases every declared custom domain ahead of stack removal.
type RemovalSweep struct {
	pools UserPools
	options
}

// NewRemovalSweep returns a sweep issuing calls through pools.
func NewRemovalSweep(pools UserPools, opts ...Option) *RemovalSweep {
	return &RemovalSweep{pools: pools, options: buildOptions(opts)}
}

// Sweep deletes each declared domain without checking for it first. Deleting a domain that
// is already gone is not an error. Other failures are collected and the sweep moves on.
func (s *RemovalSweep) Sweep(ctx context.Context, configs []manifest.ClientConfig) error {
	s.logger.Info("removal.start", logging.Fields{"entries": len(configs)})
	var errs []error
	deleted := 0
	for i, cfg := range configs {
		if cfg.CustomDomain == nil {
			continue
		}
		fields := logging.Fields{"index": i, "userPoolId": cfg.UserPoolID, "domain": cfg.CustomDomain.Name}
		err := s.mutate("removal.domain.delete", fields, func() error {
			return s.pools.DeleteUserPoolDomain(ctx, cfg.UserPoolID, cfg.CustomDomain.Name)
		})
		switch {
		case err == nil:
			deleted++
		case awserrors.IsNotFound(err):
			s.logger.Info("removal.domain.absent", fields)
		default:
			s.logger.Error("removal.domain.failed", fields.With("error", err))
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, cfg.CustomDomain.Name, err))
		}
	}
	s.logger.Info("removal.done", logging.Fields{"deleted": deleted, "failed": len(errs)})
	return errors.Join(errs...)
}
