// Package channel keeps the upstream channels behind each gateway service
// and their traffic weights. Weights are advisory; the gateway does not
// route traffic.
package channel

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gatewayd/internal/common/apierr"
	"gatewayd/pkg/types"
)

// DefaultWeight is applied to new channels that omit a weight.
const DefaultWeight = 50

// Input is the payload for Add and Update. Weight is a pointer so that an
// omitted weight can be told apart from zero.
type Input struct {
	ServiceName string `json:"service_name"`
	ChannelName string `json:"channel_name"`
	ModelID     string `json:"model_id"`
	Weight      *int   `json:"weight"`
}

// DefaultChannels returns the channels the gateway starts with.
func DefaultChannels() []types.ChannelModel {
	return []types.ChannelModel{
		{ID: "1", ServiceName: "DeepSeek 统一服务", ChannelName: "官方渠道", ModelID: "deepseek-chat-official", Weight: 60},
		{ID: "2", ServiceName: "DeepSeek 统一服务", ChannelName: "备用渠道A", ModelID: "deepseek-chat-backup-a", Weight: 25},
		{ID: "3", ServiceName: "DeepSeek 统一服务", ChannelName: "备用渠道B", ModelID: "deepseek-chat-backup-b", Weight: 15},
		{ID: "4", ServiceName: "Qwen 统一服务", ChannelName: "阿里云", ModelID: "qwen-dashscope", Weight: 70},
		{ID: "5", ServiceName: "Qwen 统一服务", ChannelName: "自建", ModelID: "qwen-self", Weight: 30},
	}
}

type Store struct {
	mu       sync.RWMutex
	channels []types.ChannelModel
}

// NewStore returns a store seeded with seed (DefaultChannels when nil).
func NewStore(seed []types.ChannelModel) *Store {
	if seed == nil {
		seed = DefaultChannels()
	}
	return &Store{channels: slices.Clone(seed)}
}

func (s *Store) List() []types.ChannelModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.channels)
}

// Add validates in and appends it under a fresh id.
func (s *Store) Add(in Input) (types.ChannelModel, error) {
	if in.Weight == nil {
		w := DefaultWeight
		in.Weight = &w
	}
	c, err := normalize(in)
	if err != nil {
		return c, err
	}
	c.ID = uuid.NewString()
	s.mu.Lock()
	s.channels = append(s.channels, c)
	s.mu.Unlock()
	return c, nil
}

// Update replaces the channel with id. An omitted weight keeps the current one.
func (s *Store) Update(id string, in Input) (types.ChannelModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.channels, func(c types.ChannelModel) bool { return c.ID == id })
	if i < 0 {
		return types.ChannelModel{}, apierr.NotFound("channel", id)
	}
	if in.Weight == nil {
		w := s.channels[i].Weight
		in.Weight = &w
	}
	c, err := normalize(in)
	if err != nil {
		return c, err
	}
	c.ID = id
	s.channels[i] = c
	return c, nil
}

// Weights totals channel weights per service, in first-seen order.
func (s *Store) Weights() []types.ChannelWeightSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.ChannelWeightSummary
	pos := make(map[string]int)
	for _, c := range s.channels {
		i, ok := pos[c.ServiceName]
		if !ok {
			i = len(out)
			pos[c.ServiceName] = i
			out = append(out, types.ChannelWeightSummary{ServiceName: c.ServiceName})
		}
		out[i].Channels++
		out[i].TotalWeight += c.Weight
	}
	for i := range out {
		out[i].Balanced = out[i].TotalWeight == 100
	}
	return out
}

func normalize(in Input) (types.ChannelModel, error) {
	c := types.ChannelModel{
		ServiceName: strings.TrimSpace(in.ServiceName),
		ChannelName: strings.TrimSpace(in.ChannelName),
		ModelID:     strings.TrimSpace(in.ModelID),
	}
	if in.Weight != nil {
		c.Weight = *in.Weight
	}
	switch {
	case c.ServiceName == "":
		return c, apierr.Invalid("service_name", "is required")
	case c.ChannelName == "":
		return c, apierr.Invalid("channel_name", "is required")
	case c.ModelID == "":
		return c, apierr.Invalid("model_id", "is required")
	case c.Weight < 0 || c.Weight > 100:
		return c, apierr.Invalid("weight", "must be between 0 and 100")
	}
	return c, nil
}
