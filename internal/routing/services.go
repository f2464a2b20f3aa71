// Package routing keeps the unified services that expose several
// registered models behind one external name.
package routing

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gatewayd/internal/common/apierr"
	"gatewayd/pkg/types"
)

// ModelLookup resolves an exposed model name to its registered service.
type ModelLookup interface {
	Lookup(name string) (types.ModelService, bool)
}

// Input is the payload for Add and Update.
type Input struct {
	ServiceName string               `json:"service_name"`
	Models      []types.ServiceModel `json:"models"`
}

// DefaultServices returns the unified services the gateway starts with.
func DefaultServices() []types.UnifiedService {
	both := []types.ServiceModel{
		{ModelID: "deepseek-chat", DisplayName: "DeepSeek-V3"},
		{ModelID: "qwen-plus", DisplayName: "Qwen2.5-72B"},
	}
	return []types.UnifiedService{
		{ID: "1", ServiceName: "deepseek-chat", Models: slices.Clone(both)},
		{ID: "2", ServiceName: "qwen-plus", Models: slices.Clone(both)},
	}
}

type Store struct {
	mu       sync.RWMutex
	models   ModelLookup
	services []types.UnifiedService
}

// NewStore returns a store validating against models and seeded with seed
// (DefaultServices when nil).
func NewStore(models ModelLookup, seed []types.UnifiedService) *Store {
	if seed == nil {
		seed = DefaultServices()
	}
	s := &Store{models: models, services: make([]types.UnifiedService, 0, len(seed))}
	for _, svc := range seed {
		s.services = append(s.services, clone(svc))
	}
	return s
}

func (s *Store) List() []types.UnifiedService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.UnifiedService, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, clone(svc))
	}
	return out
}

// Add validates in and appends it under a fresh id.
func (s *Store) Add(in Input) (types.UnifiedService, error) {
	svc, err := s.resolve(in)
	if err != nil {
		return svc, err
	}
	svc.ID = uuid.NewString()
	s.mu.Lock()
	s.services = append(s.services, svc)
	s.mu.Unlock()
	return clone(svc), nil
}

// Update replaces the service with id.
func (s *Store) Update(id string, in Input) (types.UnifiedService, error) {
	svc, err := s.resolve(in)
	if err != nil {
		return svc, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.services, func(x types.UnifiedService) bool { return x.ID == id })
	if i < 0 {
		return types.UnifiedService{}, apierr.NotFound("unified service", id)
	}
	svc.ID = id
	s.services[i] = svc
	return clone(svc), nil
}

// resolve checks names against the registry and fills display names from
// each model's spec. Entries without a model id are dropped.
func (s *Store) resolve(in Input) (types.UnifiedService, error) {
	svc := types.UnifiedService{ServiceName: strings.TrimSpace(in.ServiceName)}
	if svc.ServiceName == "" {
		return svc, apierr.Invalid("service_name", "is required")
	}
	if _, ok := s.models.Lookup(svc.ServiceName); !ok {
		return svc, apierr.Invalid("service_name", "no registered model service named "+svc.ServiceName)
	}
	for _, m := range in.Models {
		id := strings.TrimSpace(m.ModelID)
		if id == "" {
			continue
		}
		reg, ok := s.models.Lookup(id)
		if !ok {
			return svc, apierr.Invalid("models", "no registered model service named "+id)
		}
		if slices.ContainsFunc(svc.Models, func(x types.ServiceModel) bool { return x.ModelID == id }) {
			continue
		}
		svc.Models = append(svc.Models, types.ServiceModel{ModelID: id, DisplayName: reg.Spec})
	}
	if len(svc.Models) == 0 {
		return svc, apierr.Invalid("models", "at least one model is required")
	}
	return svc, nil
}

func clone(svc types.UnifiedService) types.UnifiedService {
	svc.Models = slices.Clone(svc.Models)
	return svc
}
