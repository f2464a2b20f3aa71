// Package ratelimit keeps the table of per-service, per-level rate-limit
// policies. Policies are configuration only; nothing enforces them.
package ratelimit

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gatewayd/internal/common/apierr"
	"gatewayd/pkg/types"
)

// Levels are the accepted service levels, highest priority first.
var Levels = []string{"L0", "L1", "L2", "L3"}

// DefaultPolicies returns the policy table the gateway starts with.
func DefaultPolicies() []types.RateLimitPolicy {
	return []types.RateLimitPolicy{
		{ID: "1", ServiceName: "deepseek-chat", Level: "L0", RPM: 1000, TPM: 200000},
		{ID: "2", ServiceName: "deepseek-chat", Level: "L1", RPM: 500, TPM: 100000},
		{ID: "3", ServiceName: "deepseek-chat", Level: "L2", RPM: 200, TPM: 40000},
		{ID: "4", ServiceName: "qwen-plus", Level: "L0", RPM: 800, TPM: 160000},
		{ID: "5", ServiceName: "qwen-plus", Level: "L1", RPM: 400, TPM: 80000},
	}
}

type Store struct {
	mu       sync.RWMutex
	policies []types.RateLimitPolicy
}

// NewStore returns a store seeded with seed (DefaultPolicies when nil).
func NewStore(seed []types.RateLimitPolicy) *Store {
	if seed == nil {
		seed = DefaultPolicies()
	}
	return &Store{policies: slices.Clone(seed)}
}

func (s *Store) List() []types.RateLimitPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.policies)
}

// Add validates in and appends it under a fresh id.
func (s *Store) Add(in types.RateLimitPolicy) (types.RateLimitPolicy, error) {
	p, err := normalize(in)
	if err != nil {
		return p, err
	}
	p.ID = uuid.NewString()
	s.mu.Lock()
	s.policies = append(s.policies, p)
	s.mu.Unlock()
	return p, nil
}

// Update replaces every field of the policy with id.
func (s *Store) Update(id string, in types.RateLimitPolicy) (types.RateLimitPolicy, error) {
	p, err := normalize(in)
	if err != nil {
		return p, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.policies, func(x types.RateLimitPolicy) bool { return x.ID == id })
	if i < 0 {
		return types.RateLimitPolicy{}, apierr.NotFound("rate limit policy", id)
	}
	p.ID = id
	s.policies[i] = p
	return p, nil
}

func normalize(in types.RateLimitPolicy) (types.RateLimitPolicy, error) {
	p := types.RateLimitPolicy{
		ServiceName: strings.TrimSpace(in.ServiceName),
		Level:       strings.ToUpper(strings.TrimSpace(in.Level)),
		RPM:         in.RPM,
		TPM:         in.TPM,
	}
	switch {
	case p.ServiceName == "":
		return p, apierr.Invalid("service_name", "is required")
	case !slices.Contains(Levels, p.Level):
		return p, apierr.Invalid("level", "must be one of "+strings.Join(Levels, ", "))
	case p.RPM < 1:
		return p, apierr.Invalid("rpm", "must be at least 1")
	case p.TPM < 1:
		return p, apierr.Invalid("tpm", "must be at least 1")
	}
	return p, nil
}
