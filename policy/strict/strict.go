// Package strict implements the no-eviction policy: the cache rejects any
// insertion that would exceed its size limit instead of evicting.
package strict

import "github.com/ahira-justice/caching/policy"

// Name is the identifier reported by the strict policy.
const Name = "none"

type strict struct{}

type strictPolicy struct{}

// New returns a Policy factory for the strict (reject-on-overflow) profile.
func New() policy.Policy { return strictPolicy{} }

func (strictPolicy) Name() string { return Name }

// New implements policy.Policy. The instance keeps no state, so the hooks
// are ignored.
func (strictPolicy) New(policy.Hooks) policy.Instance { return strict{} }

func (strict) OnInsert(string) {}
func (strict) OnUpdate(string) {}
func (strict) OnAccess(string) {}
func (strict) OnRemove(string) {}

// Victims never proposes anything; the cache turns that into ErrCapacityExceeded.
func (strict) Victims() []string { return nil }
