// Package random implements random eviction: each round removes one key
// chosen uniformly from the store's current key set.
package random

import (
	"math/rand/v2"

	"github.com/ahira-justice/caching/policy"
)

// Name is the identifier reported by the random policy.
const Name = "random"

// random keeps no bookkeeping; it samples the store through hooks.
type random struct {
	h policy.Hooks
	r *rand.Rand
}

type randomPolicy struct {
	seeded bool
	seed   uint64
}

// New returns a Policy factory whose instances draw from independently
// seeded generators.
func New() policy.Policy { return randomPolicy{} }

// NewSeeded returns a Policy factory whose instances are deterministic:
// every instance starts from the same seed. Useful for reproducible tests.
func NewSeeded(seed uint64) policy.Policy { return randomPolicy{seeded: true, seed: seed} }

func (randomPolicy) Name() string { return Name }

// New implements policy.Policy. Each instance owns its generator, so two
// caches built from one factory never share mutable state.
func (p randomPolicy) New(h policy.Hooks) policy.Instance {
	s1, s2 := p.seed, p.seed^0x9e3779b97f4a7c15
	if !p.seeded {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	return &random{h: h, r: rand.New(rand.NewPCG(s1, s2))}
}

func (*random) OnInsert(string) {}
func (*random) OnUpdate(string) {}
func (*random) OnAccess(string) {}
func (*random) OnRemove(string) {}

// Victims picks exactly one key. The cost is O(n) in the number of keys
// because the store exposes iteration only.
func (p *random) Victims() []string {
	n := p.h.Len()
	if n == 0 {
		return nil
	}
	target := p.r.IntN(n)
	var victim string
	found := false
	i := 0
	p.h.Range(func(k string) bool {
		if i == target {
			victim, found = k, true
			return false
		}
		i++
		return true
	})
	if !found {
		return nil
	}
	return []string{victim}
}
