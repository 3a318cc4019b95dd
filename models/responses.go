package models

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ChatAnalysis 生成器给出的分析结果
type ChatAnalysis struct {
	Sentiment          Sentiment `json:"sentiment"`
	StressIndicators   []string  `json:"stressIndicators"`
	SuggestedExercises []string  `json:"suggestedExercises"`
	RequiresImmediate  bool      `json:"requiresImmediate"`
}

// ChatTurnResponse 聊天响应结构体
type ChatTurnResponse struct {
	UserMessage      Message      `json:"userMessage"`
	AssistantMessage Message      `json:"assistantMessage"`
	Analysis         ChatAnalysis `json:"analysis"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
