package cognito

import (
	"context"
	"errors"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	awserrors "github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/errors"
)

// fakeAPI records inputs and returns canned outputs.
type fakeAPI struct {
	pool   *ciptypes.UserPoolType
	domain *ciptypes.DomainDescriptionType
	err    error

	createIn *cip.CreateUserPoolDomainInput
	updateIn *cip.UpdateUserPoolDomainInput
	deleteIn *cip.DeleteUserPoolDomainInput
	clientIn *cip.UpdateUserPoolClientInput
}

func (f *fakeAPI) DescribeUserPool(_ context.Context, _ *cip.DescribeUserPoolInput, _ ...func(*cip.Options)) (*cip.DescribeUserPoolOutput, error) {
	return &cip.DescribeUserPoolOutput{UserPool: f.pool}, f.err
}

func (f *fakeAPI) DescribeUserPoolDomain(_ context.Context, _ *cip.DescribeUserPoolDomainInput, _ ...func(*cip.Options)) (*cip.DescribeUserPoolDomainOutput, error) {
	return &cip.DescribeUserPoolDomainOutput{DomainDescription: f.domain}, f.err
}

func (f *fakeAPI) CreateUserPoolDomain(_ context.Context, in *cip.CreateUserPoolDomainInput, _ ...func(*cip.Options)) (*cip.CreateUserPoolDomainOutput, error) {
	f.createIn = in
	return &cip.CreateUserPoolDomainOutput{}, f.err
}

func (f *fakeAPI) UpdateUserPoolDomain(_ context.Context, in *cip.UpdateUserPoolDomainInput, _ ...func(*cip.Options)) (*cip.UpdateUserPoolDomainOutput, error) {
	f.updateIn = in
	return &cip.UpdateUserPoolDomainOutput{}, f.err
}

func (f *fakeAPI) DeleteUserPoolDomain(_ context.Context, in *cip.DeleteUserPoolDomainInput, _ ...func(*cip.Options)) (*cip.DeleteUserPoolDomainOutput, error) {
	f.deleteIn = in
	return &cip.DeleteUserPoolDomainOutput{}, f.err
}

func (f *fakeAPI) UpdateUserPoolClient(_ context.Context, in *cip.UpdateUserPoolClientInput, _ ...func(*cip.Options)) (*cip.UpdateUserPoolClientOutput, error) {
	f.clientIn = in
	return &cip.UpdateUserPoolClientOutput{}, f.err
}

var _ API = (*fakeAPI)(nil)

type apiErr struct{ code string }

func (e apiErr) Error() string                 { return e.code }
func (e apiErr) ErrorCode() string             { return e.code }
func (e apiErr) ErrorMessage() string          { return e.code }
func (e apiErr) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestDescribeUserPool(t *testing.T) {
	api := &fakeAPI{pool: &ciptypes.UserPoolType{Id: awsv2.String("us-east-1_abc"), CustomDomain: awsv2.String("auth.example.com")}}
	pool, err := NewService(api, nil).DescribeUserPool(context.Background(), "us-east-1_abc")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pool.ID != "us-east-1_abc" || pool.CustomDomain != "auth.example.com" || !pool.HasDomain() {
		t.Fatalf("unexpected pool: %#v", pool)
	}
}

func TestDescribeUserPool_PrefixDomain(t *testing.T) {
	api := &fakeAPI{pool: &ciptypes.UserPoolType{Id: awsv2.String("us-east-1_abc"), Domain: awsv2.String("myprefix")}}
	pool, err := NewService(api, nil).DescribeUserPool(context.Background(), "us-east-1_abc")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pool.CustomDomain != "" || pool.PrefixDomain != "myprefix" || pool.Domain() != "myprefix" || !pool.HasDomain() {
		t.Fatalf("prefix domain not reported as bound: %#v", pool)
	}
}

func TestDescribeUserPool_MissingIDIsError(t *testing.T) {
	api := &fakeAPI{pool: &ciptypes.UserPoolType{}}
	if _, err := NewService(api, nil).DescribeUserPool(context.Background(), "p"); err == nil {
		t.Fatalf("expected error for pool without id")
	}
	api = &fakeAPI{}
	if _, err := NewService(api, nil).DescribeUserPool(context.Background(), "p"); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestDescribeUserPool_ClassifiesErrors(t *testing.T) {
	api := &fakeAPI{err: apiErr{"ResourceNotFoundException"}}
	_, err := NewService(api, nil).DescribeUserPool(context.Background(), "p")
	if !awserrors.IsNotFound(err) {
		t.Fatalf("expected classified not-found error, got %v", err)
	}
}

func TestDescribeUserPoolDomain(t *testing.T) {
	api := &fakeAPI{domain: &ciptypes.DomainDescriptionType{
		Domain:             awsv2.String("auth.example.com"),
		UserPoolId:         awsv2.String("p"),
		Status:             ciptypes.DomainStatusTypeActive,
		CustomDomainConfig: &ciptypes.CustomDomainConfigType{CertificateArn: awsv2.String("arn:A")},
	}}
	desc, err := NewService(api, nil).DescribeUserPoolDomain(context.Background(), "auth.example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if desc.CustomDomainConfig == nil || desc.CustomDomainConfig.CertificateARN != "arn:A" || desc.Status != "ACTIVE" {
		t.Fatalf("unexpected description: %#v", desc)
	}

	api = &fakeAPI{domain: &ciptypes.DomainDescriptionType{Domain: awsv2.String("myprefix")}}
	desc, err = NewService(api, nil).DescribeUserPoolDomain(context.Background(), "myprefix")
	if err != nil || desc.CustomDomainConfig != nil {
		t.Fatalf("prefix domain should have no custom config: %#v err=%v", desc, err)
	}
}

func TestCreateUserPoolDomain_CertificateOptional(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)
	if err := svc.CreateUserPoolDomain(context.Background(), "p", "auth.example.com", "arn:cert"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if api.createIn.CustomDomainConfig == nil || awsv2.ToString(api.createIn.CustomDomainConfig.CertificateArn) != "arn:cert" {
		t.Fatalf("expected custom domain config with certificate, got %#v", api.createIn.CustomDomainConfig)
	}
	if err := svc.CreateUserPoolDomain(context.Background(), "p", "myprefix", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if api.createIn.CustomDomainConfig != nil {
		t.Fatalf("prefix domain must not carry a custom domain config")
	}
}

func TestUpdateAndDeleteUserPoolDomain(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)
	if err := svc.UpdateUserPoolDomain(context.Background(), "p", "auth.example.com", "arn:B"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if awsv2.ToString(api.updateIn.CustomDomainConfig.CertificateArn) != "arn:B" || awsv2.ToString(api.updateIn.Domain) != "auth.example.com" {
		t.Fatalf("unexpected update input: %#v", api.updateIn)
	}
	if err := svc.DeleteUserPoolDomain(context.Background(), "p", "old.example.com"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if awsv2.ToString(api.deleteIn.Domain) != "old.example.com" || awsv2.ToString(api.deleteIn.UserPoolId) != "p" {
		t.Fatalf("unexpected delete input: %#v", api.deleteIn)
	}
}

func TestUpdateUserPoolClient_PassesAbsentFieldsThrough(t *testing.T) {
	api := &fakeAPI{}
	err := NewService(api, nil).UpdateUserPoolClient(context.Background(), ClientAttributes{
		UserPoolID:        "p",
		ClientID:          "c",
		CallbackURLs:      []string{"https://app.example.com/cb"},
		AllowedOAuthFlows: []string{"code"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	in := api.clientIn
	if len(in.AllowedOAuthFlows) != 1 || in.AllowedOAuthFlows[0] != ciptypes.OAuthFlowTypeCode {
		t.Fatalf("unexpected flows: %v", in.AllowedOAuthFlows)
	}
	if in.LogoutURLs != nil || in.AllowedOAuthScopes != nil || in.SupportedIdentityProviders != nil {
		t.Fatalf("absent fields must stay nil: %#v", in)
	}
}

func TestUpdateUserPoolClient_ErrorNamesClient(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	err := NewService(api, nil).UpdateUserPoolClient(context.Background(), ClientAttributes{UserPoolID: "p", ClientID: "c-123"})
	if err == nil || !strings.Contains(err.Error(), "c-123") {
		t.Fatalf("expected error naming the client, got %v", err)
	}
}
