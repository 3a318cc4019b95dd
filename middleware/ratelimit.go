package middleware

import (
	"fmt"
	"net/http"
	"time"

	"MindfulChatGo/config"
	"MindfulChatGo/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// 令牌桶: KEYS[1] bucket, ARGV = rate per second, burst, now (ms)
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local bucket = redis.call("HMGET", key, "tokens", "ts")
	local tokens = tonumber(bucket[1])
	local ts = tonumber(bucket[2])
	if tokens == nil then
		tokens = burst
		ts = now
	end

	local elapsed = math.max(0, now - ts)
	tokens = math.min(burst, tokens + elapsed * rate / 1000)

	local allowed = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	end

	redis.call("HSET", key, "tokens", tokens, "ts", now)
	redis.call("PEXPIRE", key, math.ceil(burst / rate * 1000) + 1000)
	return allowed
`)

// RateLimit throttles each user (or client IP before auth) to qps requests per second.
// A nil client or a redis failure lets the request through.
func RateLimit(client *redis.Client, qps int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || qps <= 0 {
			c.Next()
			return
		}

		subject, ok := UserIDFromContext(c)
		if !ok {
			subject = "ip:" + c.ClientIP()
		}
		key := fmt.Sprintf("ratelimit:%s", subject)
		burst := qps * 2

		allowed, err := tokenBucketScript.Run(c.Request.Context(), client, []string{key},
			qps, burst, time.Now().UnixMilli()).Int()
		if err != nil {
			config.Logger.Warnw("限流检查失败，放行请求", "error", err, "key", key)
			c.Next()
			return
		}
		if allowed == 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Message: "Too many requests, please slow down"})
			return
		}
		c.Next()
	}
}
