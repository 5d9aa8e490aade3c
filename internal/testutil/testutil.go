package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/cognito"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// Operation names recorded by FakeUserPools.
const (
	OpDescribeUserPool = "DescribeUserPool"
	OpDescribeDomain   = "DescribeUserPoolDomain"
	OpCreateDomain     = "CreateUserPoolDomain"
	OpUpdateDomain     = "UpdateUserPoolDomain"
	OpDeleteDomain     = "DeleteUserPoolDomain"
	OpUpdateClient     = "UpdateUserPoolClient"
)

// Call is one recorded remote call.
type Call struct {
	Op             string
	UserPoolID     string
	Domain         string
	CertificateARN string
	ClientID       string
}

// FakeUserPools is an in-memory, stateful stand-in for the Cognito service. Mutations are
// applied to its state so a second pass observes the result of the first.
type FakeUserPools struct {
	// Pools holds observed pools keyed by id; unknown ids describe as a pool with no domain.
	Pools map[string]cognito.UserPool
	// Domains holds domain descriptions keyed by domain name.
	Domains map[string]cognito.DomainDescription
	// Fail injects errors keyed by "<Op>" or "<Op>:<target>" where target is the domain,
	// the client id, or the user pool id depending on the operation.
	Fail  map[string]error
	Calls []Call
}

// NewFakeUserPools returns an empty fake.
func NewFakeUserPools() *FakeUserPools {
	return &FakeUserPools{
		Pools:   map[string]cognito.UserPool{},
		Domains: map[string]cognito.DomainDescription{},
		Fail:    map[string]error{},
	}
}

// Bind seeds a pool with a bound domain. An empty certificateARN seeds a prefix domain,
// reported in PrefixDomain the way DescribeUserPool reports it.
func (f *FakeUserPools) Bind(userPoolID, domain, certificateARN string) {
	pool := cognito.UserPool{ID: userPoolID}
	if certificateARN == "" {
		pool.PrefixDomain = domain
	} else {
		pool.CustomDomain = domain
	}
	f.Pools[userPoolID] = pool
	f.Domains[domain] = describe(userPoolID, domain, certificateARN)
}

func describe(userPoolID, domain, certificateARN string) cognito.DomainDescription {
	d := cognito.DomainDescription{Domain: domain, UserPoolID: userPoolID, Status: "ACTIVE"}
	if certificateARN != "" {
		d.CustomDomainConfig = &cognito.CustomDomainConfig{CertificateARN: certificateARN}
	}
	return d
}

func (f *FakeUserPools) fail(op, target string) error {
	if err, ok := f.Fail[op+":"+target]; ok {
		return err
	}
	return f.Fail[op]
}

// DescribeUserPool returns the seeded pool.
func (f *FakeUserPools) DescribeUserPool(_ context.Context, userPoolID string) (cognito.UserPool, error) {
	f.Calls = append(f.Calls, Call{Op: OpDescribeUserPool, UserPoolID: userPoolID})
	if err := f.fail(OpDescribeUserPool, userPoolID); err != nil {
		return cognito.UserPool{}, err
	}
	if p, ok := f.Pools[userPoolID]; ok {
		return p, nil
	}
	return cognito.UserPool{ID: userPoolID}, nil
}

// DescribeUserPoolDomain returns the seeded description or an empty one.
func (f *FakeUserPools) DescribeUserPoolDomain(_ context.Context, domain string) (cognito.DomainDescription, error) {
	f.Calls = append(f.Calls, Call{Op: OpDescribeDomain, Domain: domain})
	if err := f.fail(OpDescribeDomain, domain); err != nil {
		return cognito.DomainDescription{}, err
	}
	return f.Domains[domain], nil
}

// CreateUserPoolDomain binds domain to the pool.
func (f *FakeUserPools) CreateUserPoolDomain(_ context.Context, userPoolID, domain, certificateARN string) error {
	f.Calls = append(f.Calls, Call{Op: OpCreateDomain, UserPoolID: userPoolID, Domain: domain, CertificateARN: certificateARN})
	if err := f.fail(OpCreateDomain, domain); err != nil {
		return err
	}
	if p, ok := f.Pools[userPoolID]; ok && p.HasDomain() {
		return fmt.Errorf("fake: user pool %s already has domain %s", userPoolID, p.Domain())
	}
	f.Bind(userPoolID, domain, certificateARN)
	return nil
}

// UpdateUserPoolDomain swaps the certificate of a bound domain.
func (f *FakeUserPools) UpdateUserPoolDomain(_ context.Context, userPoolID, domain, certificateARN string) error {
	f.Calls = append(f.Calls, Call{Op: OpUpdateDomain, UserPoolID: userPoolID, Domain: domain, CertificateARN: certificateARN})
	if err := f.fail(OpUpdateDomain, domain); err != nil {
		return err
	}
	f.Domains[domain] = describe(userPoolID, domain, certificateARN)
	return nil
}

// DeleteUserPoolDomain releases the binding.
func (f *FakeUserPools) DeleteUserPoolDomain(_ context.Context, userPoolID, domain string) error {
	f.Calls = append(f.Calls, Call{Op: OpDeleteDomain, UserPoolID: userPoolID, Domain: domain})
	if err := f.fail(OpDeleteDomain, domain); err != nil {
		return err
	}
	delete(f.Domains, domain)
	if p, ok := f.Pools[userPoolID]; ok && p.Domain() == domain {
		p.CustomDomain, p.PrefixDomain = "", ""
		f.Pools[userPoolID] = p
	}
	return nil
}

// UpdateUserPoolClient records the client update.
func (f *FakeUserPools) UpdateUserPoolClient(_ context.Context, attrs cognito.ClientAttributes) error {
	f.Calls = append(f.Calls, Call{Op: OpUpdateClient, UserPoolID: attrs.UserPoolID, ClientID: attrs.ClientID})
	return f.fail(OpUpdateClient, attrs.ClientID)
}

// Ops returns the recorded operation names, optionally filtered to the given set.
func (f *FakeUserPools) Ops(only ...string) []string {
	var out []string
	for _, c := range f.Calls {
		if len(only) == 0 || contains(only, c.Op) {
			out = append(out, c.Op)
		}
	}
	return out
}

// DomainMutations returns the recorded create/update/delete domain calls in order.
func (f *FakeUserPools) DomainMutations() []Call {
	var out []Call
	for _, c := range f.Calls {
		switch c.Op {
		case OpCreateDomain, OpUpdateDomain, OpDeleteDomain:
			out = append(out, c)
		}
	}
	return out
}

// Reset clears recorded calls but keeps state.
func (f *FakeUserPools) Reset() { f.Calls = nil }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// BufferLogger is a buffer-backed logger that records calls for assertions.
type BufferLogger struct {
	Calls   []string
	Entries []string
}

// Debug records a debug-level log entry.
func (l *BufferLogger) Debug(msg string, ctx logging.Fields) { l.record("debug", msg, ctx) }

// Info records an info-level log entry.
func (l *BufferLogger) Info(msg string, ctx logging.Fields) { l.record("info", msg, ctx) }

// Warn records a warn-level log entry.
func (l *BufferLogger) Warn(msg string, ctx logging.Fields) { l.record("warn", msg, ctx) }

// Error records an error-level log entry.
func (l *BufferLogger) Error(msg string, ctx logging.Fields) { l.record("error", msg, ctx) }

func (l *BufferLogger) record(level, msg string, ctx logging.Fields) {
	l.Calls = append(l.Calls, level)
	// simple human-readable capture for assertions; not a JSON serializer
	l.Entries = append(l.Entries, fmt.Sprintf("%s: %s ctx=%v", level, msg, ctx))
}

// Has reports whether any entry at level contains sub.
func (l *BufferLogger) Has(level, sub string) bool {
	for _, e := range l.Entries {
		if strings.HasPrefix(e, level+": ") && strings.Contains(e, sub) {
			return true
		}
	}
	return false
}

var _ logging.Logger = (*BufferLogger)(nil)
