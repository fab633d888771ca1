package ratelimit

import (
	"context"
	"fmt"
	"log"

	"github.com/example/todo-app/config"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "todo:ratelimit:auth:"

// Module owns the Redis connection and hands out the auth rate limiter.
type Module struct {
	client  *redis.Client
	limiter *SlidingWindowLimiter
	redis   config.Redis
	config  Config
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new rate limiting module.
func NewModule(redisCfg config.Redis, limitCfg config.RateLimit) *Module {
	return &Module{
		redis: redisCfg,
		config: Config{
			RequestsPerWindow: limitCfg.Requests,
			WindowSize:        limitCfg.Window,
		},
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ratelimit"
}

// Start connects to Redis.
func (m *Module) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:     m.redis.Addr,
		Password: m.redis.Password,
		DB:       m.redis.DB,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.limiter = NewSlidingWindowLimiter(m.client, m.config, keyPrefix)
	log.Printf("[ratelimit] Module started (redis: %s, %d requests per %s)",
		m.redis.Addr, m.config.RequestsPerWindow, m.config.WindowSize)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[ratelimit] Error closing Redis connection: %v", err)
		}
	}
	log.Println("[ratelimit] Module stopped")
	return nil
}

// Health reports whether Redis answers.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{Healthy: false, Message: "redis client not initialized"}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"requests_per_window": m.config.RequestsPerWindow,
			"window":              m.config.WindowSize.String(),
		},
	}
}

// Middleware returns the per-IP limiter for auth routes, or nil before Start.
func (m *Module) Middleware() fiber.Handler {
	if m.limiter == nil {
		return nil
	}
	return IPRateLimit(m.limiter, m.config.RequestsPerWindow)
}
