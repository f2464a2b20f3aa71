package types

// ModelService is a model exposed by the gateway under an external name.
type ModelService struct {
	// example: 1
	ID string `json:"id" example:"1"`
	// External model name.
	// example: deepseek-chat
	Name string `json:"name" example:"deepseek-chat"`
	// One of Chat, Embedding, Rerank, Image.
	// example: Chat
	Type string `json:"type" example:"Chat"`
	// example: DeepSeek
	Vendor string `json:"vendor" example:"DeepSeek"`
	// Context window in tokens.
	// example: 128000
	ContextLength int `json:"context_length" example:"128000"`
	// Underlying model specification.
	// example: DeepSeek-V3
	Spec string `json:"spec" example:"DeepSeek-V3"`
	// example: ["多轮对话","流式输出"]
	Capabilities []string `json:"capabilities"`
}

// RateLimitPolicy caps requests and tokens per minute for one service level.
type RateLimitPolicy struct {
	// example: 1
	ID string `json:"id" example:"1"`
	// example: deepseek-chat
	ServiceName string `json:"service_name" example:"deepseek-chat"`
	// Service level, L0 through L3.
	// example: L0
	Level string `json:"level" example:"L0"`
	// Requests per minute.
	// example: 1000
	RPM int `json:"rpm" example:"1000"`
	// Tokens per minute.
	// example: 200000
	TPM int `json:"tpm" example:"200000"`
}

// ChannelModel is one upstream channel serving a gateway service.
type ChannelModel struct {
	// example: 1
	ID string `json:"id" example:"1"`
	// example: DeepSeek 统一服务
	ServiceName string `json:"service_name" example:"DeepSeek 统一服务"`
	// example: 官方渠道
	ChannelName string `json:"channel_name" example:"官方渠道"`
	// example: deepseek-chat-official
	ModelID string `json:"model_id" example:"deepseek-chat-official"`
	// Share of the service's traffic, in percent.
	// example: 60
	Weight int `json:"weight" example:"60"`
}

// ChannelWeightSummary totals channel weights for one service.
type ChannelWeightSummary struct {
	ServiceName string `json:"service_name"`
	Channels    int    `json:"channels"`
	TotalWeight int    `json:"total_weight"`
	// True when the weights add up to exactly 100.
	Balanced bool `json:"balanced"`
}

// ServiceModel is one model reachable through a unified service.
type ServiceModel struct {
	// example: qwen-plus
	ModelID string `json:"model_id" example:"qwen-plus"`
	// example: Qwen2.5-72B
	DisplayName string `json:"display_name" example:"Qwen2.5-72B"`
}

// UnifiedService fronts several registered models behind one external name.
type UnifiedService struct {
	// example: 1
	ID string `json:"id" example:"1"`
	// example: deepseek-chat
	ServiceName string         `json:"service_name" example:"deepseek-chat"`
	Models      []ServiceModel `json:"models"`
}
