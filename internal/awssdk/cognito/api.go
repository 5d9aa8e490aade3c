// Package cognito wraps the Cognito identity provider client with the handful of
// user pool, user pool client, and user pool domain calls the reconciler needs.
// Each interface wraps exactly one SDK method so tests can inject fakes.
package cognito

import (
	"context"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// DescribeUserPoolAPI reads a user pool, including the custom domain bound to it.
type DescribeUserPoolAPI interface {
	DescribeUserPool(ctx context.Context, params *cip.DescribeUserPoolInput, optFns ...func(*cip.Options)) (*cip.DescribeUserPoolOutput, error)
}

// DescribeUserPoolDomainAPI reads a domain description, including its certificate.
type DescribeUserPoolDomainAPI interface {
	DescribeUserPoolDomain(ctx context.Context, params *cip.DescribeUserPoolDomainInput, optFns ...func(*cip.Options)) (*cip.DescribeUserPoolDomainOutput, error)
}

// CreateUserPoolDomainAPI binds a new domain to a user pool.
type CreateUserPoolDomainAPI interface {
	CreateUserPoolDomain(ctx context.Context, params *cip.CreateUserPoolDomainInput, optFns ...func(*cip.Options)) (*cip.CreateUserPoolDomainOutput, error)
}

// UpdateUserPoolDomainAPI swaps the certificate of a bound custom domain.
type UpdateUserPoolDomainAPI interface {
	UpdateUserPoolDomain(ctx context.Context, params *cip.UpdateUserPoolDomainInput, optFns ...func(*cip.Options)) (*cip.UpdateUserPoolDomainOutput, error)
}

// DeleteUserPoolDomainAPI releases a domain binding.
type DeleteUserPoolDomainAPI interface {
	DeleteUserPoolDomain(ctx context.Context, params *cip.DeleteUserPoolDomainInput, optFns ...func(*cip.Options)) (*cip.DeleteUserPoolDomainOutput, error)
}

// UpdateUserPoolClientAPI overwrites an app client's settings.
type UpdateUserPoolClientAPI interface {
	UpdateUserPoolClient(ctx context.Context, params *cip.UpdateUserPoolClientInput, optFns ...func(*cip.Options)) (*cip.UpdateUserPoolClientOutput, error)
}

// API is the full surface used by Service.
type API interface {
	DescribeUserPoolAPI
	DescribeUserPoolDomainAPI
	CreateUserPoolDomainAPI
	UpdateUserPoolDomainAPI
	DeleteUserPoolDomainAPI
	UpdateUserPoolClientAPI
}

var (
	_ DescribeUserPoolAPI       = (*cip.Client)(nil)
	_ DescribeUserPoolDomainAPI = (*cip.Client)(nil)
	_ CreateUserPoolDomainAPI   = (*cip.Client)(nil)
	_ UpdateUserPoolDomainAPI   = (*cip.Client)(nil)
	_ DeleteUserPoolDomainAPI   = (*cip.Client)(nil)
	_ UpdateUserPoolClientAPI   = (*cip.Client)(nil)
	_ API                       = (*cip.Client)(nil)
)
