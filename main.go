package main

import (
	"context"
	"log"
	"os"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/database"
	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/notification"
	"github.com/example/todo-app/modules/ratelimit"
	"github.com/example/todo-app/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== To-Do App ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	apiOpts := api.Options{
		Addr:      cfg.HTTPAddr,
		StaticDir: cfg.StaticDir,
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(cfg))
	app.Register(todo.NewModule(cfg.Database))
	app.Register(notification.NewModule())
	if cfg.RateLimitEnabled() {
		limiter := ratelimit.NewModule(cfg.Redis, cfg.RateLimit)
		app.Register(limiter)
		apiOpts.RateLimiter = limiter
	}
	app.Register(api.NewModule(apiOpts))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  Environment: %s", cfg.AppEnv)
	log.Printf("  Database:    %s", database.Describe(cfg.Database))
	if cfg.RateLimitEnabled() {
		log.Printf("  Rate limit:  %d requests per %s on /api/auth (redis %s)", cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.Redis.Addr)
	} else {
		log.Println("  Rate limit:  disabled (REDIS_ADDR not set)")
	}
	if cfg.IsDevelopment() {
		log.Printf("  Seed user:   %s / %s", auth.SeedEmail, auth.SeedPassword)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.HTTPAddr)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register  - Register a new user")
	log.Println("  POST   /api/auth/login     - Login and get a token")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/todo           - List your to-do items")
	log.Println("  GET    /api/todo/:id       - Get one item")
	log.Println("  POST   /api/todo           - Create an item")
	log.Println("  PUT    /api/todo/:id       - Update an item")
	log.Println("  DELETE /api/todo/:id       - Delete an item")
	log.Println("  GET    /api/activity       - Recent activity on your items")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
