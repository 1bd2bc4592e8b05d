package api

import (
	"helpdesk-agent/docs"
	"helpdesk-agent/internal/api/handlers"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/pkg/auth"
	"helpdesk-agent/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Chat      *handlers.ChatHandler
	Incident  *handlers.IncidentHandler
	Knowledge *handlers.KnowledgeHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
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

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger document through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	chat := protected.Group("/chat")
	chat.Post("/sessions", h.Chat.StartSession)
	chat.Post("/:id/messages", h.Chat.SendMessage)
	chat.Get("/:id/messages", h.Chat.ListMessages)
	chat.Post("/:id/feedback", h.Chat.SubmitFeedback)
	chat.Get("/:id/stream", h.Chat.Stream)

	staff := middleware.RequireRole(string(models.RoleAdmin), string(models.RoleTechnician))

	incidents := protected.Group("/incidents", staff)
	incidents.Post("", h.Incident.CreateIncident)
	incidents.Get("", h.Incident.ListIncidents)
	incidents.Get("/:id", h.Incident.GetIncident)
	incidents.Put("/:id", h.Incident.UpdateIncident)
	incidents.Put("/:id/status", h.Incident.ChangeStatus)
	incidents.Post("/:id/attend", h.Incident.AttendIncident)
	incidents.Get("/:id/history", h.Incident.History)

	knowledge := protected.Group("/knowledge", staff)
	knowledge.Get("", h.Knowledge.ListEntries)
	knowledge.Get("/search", h.Knowledge.SearchEntries)
	knowledge.Get("/:id", h.Knowledge.GetEntry)
	knowledge.Delete("/:id", middleware.RequireRole(string(models.RoleAdmin)), h.Knowledge.DeleteEntry)

	return app
}
