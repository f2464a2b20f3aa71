package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gatewayd/internal/common/apierr"
	"gatewayd/pkg/types"
)

// Accepted values for model service fields.
var (
	ModelTypes   = []string{"Chat", "Embedding", "Rerank", "Image"}
	Vendors      = []string{"DeepSeek", "Qwen", "OpenAI", "Anthropic", "智谱", "百川"}
	Capabilities = []string{"多轮对话", "长文本", "代码生成", "函数调用", "流式输出", "视觉"}
)

// DefaultModels returns the services the registry starts with.
func DefaultModels() []types.ModelService {
	return []types.ModelService{
		{
			ID: "1", Name: "deepseek-chat", Type: "Chat", Vendor: "DeepSeek",
			ContextLength: 128000, Spec: "DeepSeek-V3",
			Capabilities: []string{"多轮对话", "长文本", "代码生成", "流式输出"},
		},
		{
			ID: "2", Name: "qwen-plus", Type: "Chat", Vendor: "Qwen",
			ContextLength: 32000, Spec: "Qwen2.5-72B",
			Capabilities: []string{"多轮对话", "函数调用", "流式输出"},
		},
	}
}

// Store holds the registered model services. The name of each service is
// the model name the gateway exposes, so names are unique.
type Store struct {
	mu     sync.RWMutex
	models []types.ModelService
}

// NewStore returns a store seeded with seed (DefaultModels when nil).
func NewStore(seed []types.ModelService) *Store {
	if seed == nil {
		seed = DefaultModels()
	}
	s := &Store{models: make([]types.ModelService, 0, len(seed))}
	for _, m := range seed {
		s.models = append(s.models, clone(m))
	}
	return s
}

// List returns copies of all services in insertion order.
func (s *Store) List() []types.ModelService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ModelService, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, clone(m))
	}
	return out
}

// Get returns the service with the given id.
func (s *Store) Get(id string) (types.ModelService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return types.ModelService{}, apierr.NotFound("model service", id)
}

// Lookup returns the service exposed under name.
func (s *Store) Lookup(name string) (types.ModelService, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.Name == name {
			return clone(m), true
		}
	}
	return types.ModelService{}, false
}

// Names returns the exposed model names in insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m.Name)
	}
	return out
}

// Add validates in and appends it under a fresh id.
func (s *Store) Add(in types.ModelService) (types.ModelService, error) {
	m, err := normalize(in)
	if err != nil {
		return types.ModelService{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.models {
		if existing.Name == m.Name {
			return types.ModelService{}, apierr.Conflict("model service %q already registered", m.Name)
		}
	}
	m.ID = uuid.NewString()
	s.models = append(s.models, m)
	return clone(m), nil
}

func normalize(in types.ModelService) (types.ModelService, error) {
	m := types.ModelService{
		Name:          strings.TrimSpace(in.Name),
		Type:          strings.TrimSpace(in.Type),
		Vendor:        strings.TrimSpace(in.Vendor),
		ContextLength: in.ContextLength,
		Spec:          strings.TrimSpace(in.Spec),
		Capabilities:  []string{},
	}
	switch {
	case m.Name == "":
		return m, apierr.Invalid("name", "is required")
	case !slices.Contains(ModelTypes, m.Type):
		return m, apierr.Invalid("type", "must be one of "+strings.Join(ModelTypes, ", "))
	case !slices.Contains(Vendors, m.Vendor):
		return m, apierr.Invalid("vendor", "must be one of "+strings.Join(Vendors, ", "))
	case m.ContextLength < 1:
		return m, apierr.Invalid("context_length", "must be at least 1")
	case m.Spec == "":
		return m, apierr.Invalid("spec", "is required")
	}
	for _, c := range in.Capabilities {
		if !slices.Contains(Capabilities, c) {
			return m, apierr.Invalid("capabilities", "unknown capability "+c)
		}
		if !slices.Contains(m.Capabilities, c) {
			m.Capabilities = append(m.Capabilities, c)
		}
	}
	return m, nil
}

func clone(m types.ModelService) types.ModelService {
	m.Capabilities = append([]string{}, m.Capabilities...)
	return m
}
