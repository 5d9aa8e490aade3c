package reconcile

import "github.com/mikecbrant/cognito-userpool-clients/internal/manifest"

// Kind names a domain transition for logs and reports.
type Kind string

// Transition kinds.
const (
	KindNoDomain     Kind = "no-domain"
	KindObservedOnly Kind = "observed-only"
	KindDeclaredOnly Kind = "declared-only"
	KindRenamed      Kind = "renamed"
	KindUnchanged    Kind = "unchanged"
)

// Transition is the decision computed once from (declared, observed) for one entry.
// The concrete types below are the only implementations.
type Transition interface {
	Kind() Kind
	isTransition()
}

// NoDomain: nothing declared, nothing bound.
type NoDomain struct{}

// DomainObservedOnly: a domain is bound remotely but none is declared; it gets deleted.
type DomainObservedOnly struct {
	Observed string
}

// DomainDeclaredOnly: a domain is declared but none is bound; it gets created.
type DomainDeclaredOnly struct {
	Declared manifest.CustomDomain
}

// DomainRenamed: the bound domain differs from the declared one; delete From, then create To.
type DomainRenamed struct {
	From string
	To   manifest.CustomDomain
}

// DomainUnchanged: names match; only the certificate may need rotating.
type DomainUnchanged struct {
	Declared manifest.CustomDomain
}

func (NoDomain) Kind() Kind           { return KindNoDomain }
func (DomainObservedOnly) Kind() Kind { return KindObservedOnly }
func (DomainDeclaredOnly) Kind() Kind { return KindDeclaredOnly }
func (DomainRenamed) Kind() Kind      { return KindRenamed }
func (DomainUnchanged) Kind() Kind    { return KindUnchanged }

func (NoDomain) isTransition()           {}
func (DomainObservedOnly) isTransition() {}
func (DomainDeclaredOnly) isTransition() {}
func (DomainRenamed) isTransition()      {}
func (DomainUnchanged) isTransition()    {}

// Plan decides the transition. observed is the domain currently bound to the pool ("" when none).
func Plan(declared *manifest.CustomDomain, observed string) Transition {
	switch {
	case declared == nil && observed == "":
		return NoDomain{}
	case declared == nil:
		return DomainObservedOnly{Observed: observed}
	case observed == "":
		return DomainDeclaredOnly{Declared: *declared}
	case declared.Name != observed:
		return DomainRenamed{From: observed, To: *declared}
	default:
		return DomainUnchanged{Declared: *declared}
	}
}
