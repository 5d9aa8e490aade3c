package cognito

// UserPool is the observed state of a user pool relevant to domain reconciliation.
type UserPool struct {
	ID string
	// CustomDomain is the bound custom (certificate-backed) domain, if any.
	CustomDomain string
	// PrefixDomain is the bound Cognito prefix domain, if any. Cognito reports it in
	// UserPoolType.Domain and leaves CustomDomain unset.
	PrefixDomain string
}

// Domain returns the domain bound to the pool, custom or prefix; empty when none is bound.
func (p UserPool) Domain() string {
	if p.CustomDomain != "" {
		return p.CustomDomain
	}
	return p.PrefixDomain
}

// HasDomain reports whether a domain is currently bound.
func (p UserPool) HasDomain() bool { return p.Domain() != "" }

// CustomDomainConfig carries the certificate of a custom (non-prefix) domain.
type CustomDomainConfig struct {
	CertificateARN string
}

// DomainDescription is the observed state of one user pool domain.
type DomainDescription struct {
	Domain     string
	UserPoolID string
	Status     string
	// CustomDomainConfig is nil for prefix domains and for unknown domains.
	CustomDomainConfig *CustomDomainConfig
}

// ClientAttributes are the OAuth settings written to an app client. Nil slices are sent as absent.
type ClientAttributes struct {
	UserPoolID                      string
	ClientID                        string
	CallbackURLs                    []string
	LogoutURLs                      []string
	AllowedOAuthFlows               []string
	AllowedOAuthScopes              []string
	SupportedIdentityProviders      []string
	AllowedOAuthFlowsUserPoolClient *bool
}
