// handlers/progression_routes.go
package handlers

import (
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/middleware"
	"sweat-battle-system/models"
	"sweat-battle-system/services"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string         `json:"username"`
	Class    game.UserClass `json:"class"`
}

type syncRequest struct {
	Date string `json:"date"`
}

func SetupProgressionRoutes(app *fiber.App, progression *services.ProgressionService, notifications *services.NotificationService) {
	user := app.Group("/user", middleware.UserContextMiddleware())

	user.Post("/register", func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		u, err := progression.RegisterPlayer(c.UserContext(), middleware.UserID(c), req.Username, req.Class)
		if err != nil {
			return writeError(c, "failed to register player", err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	})

	user.Get("/progress", func(c *fiber.Ctx) error {
		p, err := progression.GetProgress(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeError(c, "failed to load progress", err)
		}
		return c.JSON(p)
	})

	user.Patch("/profile", func(c *fiber.Ctx) error {
		var patch models.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		u, err := progression.UpdateProfile(c.UserContext(), middleware.UserID(c), patch)
		if err != nil {
			return writeError(c, "failed to update profile", err)
		}
		return c.JSON(u)
	})

	user.Post("/sync", func(c *fiber.Ctx) error {
		var req syncRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "invalid request body")
			}
		}
		var date time.Time
		if req.Date != "" {
			d, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				return badRequest(c, "date must be YYYY-MM-DD")
			}
			date = d
		}

		res, err := progression.SyncDailyActivity(c.UserContext(), middleware.UserID(c), date)
		if err != nil {
			return writeError(c, "failed to sync activity", err)
		}
		return c.JSON(res)
	})

	user.Get("/notifications", func(c *fiber.Ctx) error {
		list, err := notifications.List(c.UserContext(), middleware.UserID(c), c.QueryBool("unread", false), c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, "failed to list notifications", err)
		}
		return c.JSON(fiber.Map{"notifications": list})
	})

	user.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		if err := notifications.MarkRead(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeError(c, "failed to mark notification read", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	user.Get("/notifications/stream", notifications.StreamUserNotificationsSSE)
}
