package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP 请求总数
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindfulchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// 请求耗时
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mindfulchat_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	ChatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindfulchat_chat_turns_total",
			Help: "Chat turns by outcome",
		},
		[]string{"outcome"}, // ok, invalid, not_found, error
	)

	CrisisFlags = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mindfulchat_crisis_flags_total",
			Help: "Responses flagged as requiring immediate help",
		},
	)

	// 上游模型调用失败次数, call = reply, classify, sentiment...
	UpstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindfulchat_llm_failures_total",
			Help: "Language model call failures absorbed by a fallback",
		},
		[]string{"call"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, ChatTurns, CrisisFlags, UpstreamFailures)
}
