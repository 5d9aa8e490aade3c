package cognito

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	awserrors "github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/errors"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// Service issues Cognito calls on behalf of the reconciler. Every error it returns has been
// passed through awserrors.Classify.
type Service struct {
	api    API
	logger logging.Logger
}

// NewService wraps an API implementation (usually *cognitoidentityprovider.Client).
func NewService(api API, logger logging.Logger) *Service {
	return &Service{api: api, logger: logging.OrNop(logger)}
}

// NewFromConfig builds a Service from a loaded AWS config. Retry and backoff are owned by
// the SDK client built here.
func NewFromConfig(cfg awsv2.Config, logger logging.Logger) *Service {
	return NewService(cip.NewFromConfig(cfg), logger)
}

// DescribeUserPool fetches the pool and the custom domain currently bound to it.
func (s *Service) DescribeUserPool(ctx context.Context, userPoolID string) (UserPool, error) {
	out, err := s.api.DescribeUserPool(ctx, &cip.DescribeUserPoolInput{UserPoolId: &userPoolID})
	if err != nil {
		return UserPool{}, fmt.Errorf("describe user pool %s: %w", userPoolID, awserrors.Classify(err))
	}
	if out == nil || out.UserPool == nil {
		return UserPool{}, fmt.Errorf("describe user pool %s: response has no user pool", userPoolID)
	}
	pool := UserPool{
		ID:           awsv2.ToString(out.UserPool.Id),
		CustomDomain: awsv2.ToString(out.UserPool.CustomDomain),
		PrefixDomain: awsv2.ToString(out.UserPool.Domain),
	}
	if pool.PrefixDomain == pool.CustomDomain {
		pool.PrefixDomain = ""
	}
	if pool.ID == "" {
		return UserPool{}, fmt.Errorf("describe user pool %s: user pool has no id", userPoolID)
	}
	s.logger.Debug("cognito.userpool.describe", logging.Fields{"userPoolId": pool.ID, "domain": pool.Domain()})
	return pool, nil
}

// DescribeUserPoolDomain fetches the description of a domain by name. Unknown domains yield
// an empty description rather than an error, mirroring the service.
func (s *Service) DescribeUserPoolDomain(ctx context.Context, domain string) (DomainDescription, error) {
	out, err := s.api.DescribeUserPoolDomain(ctx, &cip.DescribeUserPoolDomainInput{Domain: &domain})
	if err != nil {
		return DomainDescription{}, fmt.Errorf("describe user pool domain %s: %w", domain, awserrors.Classify(err))
	}
	if out == nil || out.DomainDescription == nil {
		return DomainDescription{}, nil
	}
	d := out.DomainDescription
	desc := DomainDescription{
		Domain:     awsv2.ToString(d.Domain),
		UserPoolID: awsv2.ToString(d.UserPoolId),
		Status:     string(d.Status),
	}
	if d.CustomDomainConfig != nil {
		desc.CustomDomainConfig = &CustomDomainConfig{CertificateARN: awsv2.ToString(d.CustomDomainConfig.CertificateArn)}
	}
	s.logger.Debug("cognito.domain.describe", logging.Fields{"domain": domain, "status": desc.Status})
	return desc, nil
}

// CreateUserPoolDomain binds domain to the pool. An empty certificateARN creates a prefix domain.
func (s *Service) CreateUserPoolDomain(ctx context.Context, userPoolID, domain, certificateARN string) error {
	in := &cip.CreateUserPoolDomainInput{
		Domain:             &domain,
		UserPoolId:         &userPoolID,
		CustomDomainConfig: customDomainConfig(certificateARN),
	}
	if _, err := s.api.CreateUserPoolDomain(ctx, in); err != nil {
		return fmt.Errorf("create user pool domain %s: %w", domain, awserrors.Classify(err))
	}
	s.logger.Info("cognito.domain.created", logging.Fields{"userPoolId": userPoolID, "domain": domain, "certificateArn": certificateARN})
	return nil
}

// UpdateUserPoolDomain points an existing custom domain at a new certificate.
func (s *Service) UpdateUserPoolDomain(ctx context.Context, userPoolID, domain, certificateARN string) error {
	in := &cip.UpdateUserPoolDomainInput{
		Domain:             &domain,
		UserPoolId:         &userPoolID,
		CustomDomainConfig: &ciptypes.CustomDomainConfigType{CertificateArn: &certificateARN},
	}
	if _, err := s.api.UpdateUserPoolDomain(ctx, in); err != nil {
		return fmt.Errorf("update user pool domain %s: %w", domain, awserrors.Classify(err))
	}
	s.logger.Info("cognito.domain.updated", logging.Fields{"userPoolId": userPoolID, "domain": domain, "certificateArn": certificateARN})
	return nil
}

// DeleteUserPoolDomain releases the domain binding.
func (s *Service) DeleteUserPoolDomain(ctx context.Context, userPoolID, domain string) error {
	in := &cip.DeleteUserPoolDomainInput{Domain: &domain, UserPoolId: &userPoolID}
	if _, err := s.api.DeleteUserPoolDomain(ctx, in); err != nil {
		return fmt.Errorf("delete user pool domain %s: %w", domain, awserrors.Classify(err))
	}
	s.logger.Info("cognito.domain.deleted", logging.Fields{"userPoolId": userPoolID, "domain": domain})
	return nil
}

// UpdateUserPoolClient overwrites the client's OAuth settings with exactly the given values.
func (s *Service) UpdateUserPoolClient(ctx context.Context, attrs ClientAttributes) error {
	if _, err := s.api.UpdateUserPoolClient(ctx, updateClientInput(attrs)); err != nil {
		return fmt.Errorf("update user pool client %s: %w", attrs.ClientID, awserrors.Classify(err))
	}
	s.logger.Info("cognito.client.updated", logging.Fields{"userPoolId": attrs.UserPoolID, "clientId": attrs.ClientID})
	return nil
}

func updateClientInput(attrs ClientAttributes) *cip.UpdateUserPoolClientInput {
	in := &cip.UpdateUserPoolClientInput{
		UserPoolId:                      awsv2.String(attrs.UserPoolID),
		ClientId:                        awsv2.String(attrs.ClientID),
		CallbackURLs:                    attrs.CallbackURLs,
		LogoutURLs:                      attrs.LogoutURLs,
		AllowedOAuthScopes:              attrs.AllowedOAuthScopes,
		SupportedIdentityProviders:      attrs.SupportedIdentityProviders,
		AllowedOAuthFlowsUserPoolClient: awsv2.ToBool(attrs.AllowedOAuthFlowsUserPoolClient),
	}
	if attrs.AllowedOAuthFlows != nil {
		in.AllowedOAuthFlows = make([]ciptypes.OAuthFlowType, 0, len(attrs.AllowedOAuthFlows))
		for _, f := range attrs.AllowedOAuthFlows {
			in.AllowedOAuthFlows = append(in.AllowedOAuthFlows, ciptypes.OAuthFlowType(f))
		}
	}
	return in
}

func customDomainConfig(certificateARN string) *ciptypes.CustomDomainConfigType {
	if certificateARN == "" {
		return nil
	}
	return &ciptypes.CustomDomainConfigType{CertificateArn: &certificateARN}
}
