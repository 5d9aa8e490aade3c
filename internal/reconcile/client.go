package reconcile

import (
	"context"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/cognito"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// ClientSync overwrites an app client's OAuth attributes with the declared values.
type ClientSync struct {
	pools UserPools
	options
}

// NewClientSync returns a ClientSync issuing calls through pools.
func NewClientSync(pools UserPools, opts ...Option) *ClientSync {
	return &ClientSync{pools: pools, options: buildOptions(opts)}
}

// Sync pushes the declared attributes without reading first, dry-run or not. A failure is
// logged and returned for reporting only; callers carry on with domain reconciliation.
func (s *ClientSync) Sync(ctx context.Context, cfg manifest.ClientConfig) error {
	fields := logging.Fields{"userPoolId": cfg.UserPoolID, "clientId": cfg.ClientID}
	s.logger.Info("client.update", fields)
	err := s.pools.UpdateUserPoolClient(ctx, Attributes(cfg))
	if err != nil {
		s.logger.Warn("client.update.failed", fields.With("error", err))
	}
	return err
}

// Attributes maps a declared entry to the exact attribute set sent to Cognito.
func Attributes(cfg manifest.ClientConfig) cognito.ClientAttributes {
	return cognito.ClientAttributes{
		UserPoolID:                      cfg.UserPoolID,
		ClientID:                        cfg.ClientID,
		CallbackURLs:                    cfg.CallbackURLs,
		LogoutURLs:                      cfg.LogoutURLs,
		AllowedOAuthFlows:               cfg.AllowedOAuthFlows,
		AllowedOAuthScopes:              cfg.AllowedOAuthScopes,
		SupportedIdentityProviders:      cfg.SupportedIdentityProviders,
		AllowedOAuthFlowsUserPoolClient: cfg.AllowedOAuthFlowsUserPoolClient,
	}
}
