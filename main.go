package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/configs"
	database "trainingcenter_backend/internals/databases"
	scheduler "trainingcenter_backend/internals/features/users/auth/scheduler"
	helper "trainingcenter_backend/internals/helpers"
	middlewares "trainingcenter_backend/internals/middlewares"
	routes "trainingcenter_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	// money goes out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               8 << 20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request id + timing, 5s budget per request
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	if err := database.ConnectDB(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	database.WarmUpQueries()

	cleanup, err := scheduler.StartTokenCleanupCron(database.DB, configs.TokenCleanupCron)
	if err != nil {
		log.Printf("[WARN] token cleanup not scheduled: %v", err)
	}

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[INFO] listening on :%s", configs.AppPort)
		if err := app.Listen("0.0.0.0:" + configs.AppPort); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	database.Close()
}
