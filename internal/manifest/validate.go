package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk"
)

var (
	certificateResourceRe = regexp.MustCompile(`^certificate/[A-Za-z0-9-]+$`)
	accountIDRe           = regexp.MustCompile(`^[0-9]{12}$`)
	userPoolIDRe          = regexp.MustCompile(`^([a-z]{2}(?:-gov)?-[a-z]+-[0-9])_[0-9A-Za-z]+$`)
	prefixDomainRe        = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)
)

var (
	// ErrMissingUserPoolID is returned for entries without a userPoolId.
	ErrMissingUserPoolID = errors.New("userPoolId is required")
	// ErrMissingClientID is returned for entries without a clientId.
	ErrMissingClientID = errors.New("clientId is required")
)

// Validate checks one entry. Errors are scoped to the entry; callers keep processing the rest.
func (c ClientConfig) Validate() error {
	if err := c.ValidateIdentity(); err != nil {
		return err
	}
	return c.ValidateDomain()
}

// ValidateIdentity checks the user pool and client ids every remote call needs.
func (c ClientConfig) ValidateIdentity() error {
	if strings.TrimSpace(c.UserPoolID) == "" {
		return ErrMissingUserPoolID
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return ErrMissingClientID
	}
	return nil
}

// ValidateDomain checks the declared custom domain, if any.
func (c ClientConfig) ValidateDomain() error {
	if c.CustomDomain == nil {
		return nil
	}
	return c.CustomDomain.validate(RegionOfUserPool(c.UserPoolID))
}

func (d CustomDomain) validate(poolRegion string) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return fmt.Errorf("customDomain.name is required when customDomain is set")
	}
	if d.CertificateARN == "" {
		if !prefixDomainRe.MatchString(name) {
			return fmt.Errorf("customDomain.name %q is not a valid prefix domain; set customDomain.certificateArn to use a custom domain", name)
		}
		return nil
	}
	if !strings.Contains(name, ".") {
		return fmt.Errorf("customDomain.name %q must be a fully qualified domain when certificateArn is set", name)
	}
	return validateCertificateArn(d.CertificateARN, poolRegion)
}

func validateCertificateArn(arn, poolRegion string) error {
	parsed, err := awsarn.Parse(arn)
	if err != nil || parsed.Service != "acm" || !accountIDRe.MatchString(parsed.AccountID) || !certificateResourceRe.MatchString(parsed.Resource) {
		return fmt.Errorf("customDomain.certificateArn must be an ACM certificate ARN (arn:<partition>:acm:<region>:<account>:certificate/<id>), got %q", arn)
	}
	partition, certRegion := parsed.Partition, parsed.Region
	if poolRegion == "" {
		return nil
	}
	if want := awssdk.PartitionForRegion(poolRegion); partition != want {
		return fmt.Errorf("customDomain.certificateArn partition (%s) is incompatible with user pool region %s", partition, poolRegion)
	}
	if want := awssdk.CertificateRegionForPartition(partition); certRegion != want {
		return fmt.Errorf("customDomain.certificateArn region (%s) must be %s; Cognito custom domains only accept certificates from that region", certRegion, want)
	}
	return nil
}

// RegionOfUserPool extracts the region prefix from a user pool id (`us-east-1_AbC123`).
// It returns an empty string when the id does not carry one.
func RegionOfUserPool(id string) string {
	m := userPoolIDRe.FindStringSubmatch(id)
	if m == nil {
		return ""
	}
	return m[1]
}
