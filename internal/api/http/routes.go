package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/travel-weather-agent/internal/agent"
)

const serviceName = "travel-weather-agent"

// ChatService handles one parsed chat request.
type ChatService interface {
	Handle(ctx context.Context, req agent.ChatRequest) (*agent.ChatResponse, error)
}

// NewApp creates the Fiber app with the JSON error handler and global middleware.
// Every unhandled error is rendered as {"error": "..."}.
func NewApp(accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          35 * time.Second, // model, geocoding and forecast each get 10s
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	if accessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(recover.New())
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service ChatService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	chat := chatHandler(service)
	app.Post("/chat", chat)

	v1 := app.Group("/api/v1")
	v1.Post("/chat", chat)
}

func chatHandler(service ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := agent.ParseChatRequest(c.Body())

		resp, err := service.Handle(c.UserContext(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Internal error: "+err.Error())
		}

		return c.JSON(resp)
	}
}
