// handlers/battle_routes.go
package handlers

import (
	"strings"

	"sweat-battle-system/middleware"
	"sweat-battle-system/services"

	"github.com/gofiber/fiber/v2"
)

type createBattleRequest struct {
	OpponentID string `json:"opponent_id"`
}

type submitActionRequest struct {
	AbilityID string `json:"ability_id"`
}

func SetupBattleRoutes(app *fiber.App, engine *services.BattleEngine) {
	battles := app.Group("/battles", middleware.UserContextMiddleware())

	battles.Post("/", func(c *fiber.Ctx) error {
		var req createBattleRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		req.OpponentID = strings.TrimSpace(req.OpponentID)
		if req.OpponentID == "" {
			return badRequest(c, "opponent_id is required")
		}
		userID := middleware.UserID(c)
		if req.OpponentID == userID {
			return badRequest(c, "cannot challenge yourself")
		}

		b, err := engine.CreateBattle(c.UserContext(), userID, req.OpponentID)
		if err != nil {
			return writeError(c, "failed to create battle", err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	})

	battles.Get("/", func(c *fiber.Ctx) error {
		list, err := engine.ListBattles(c.UserContext(), middleware.UserID(c), c.QueryInt("limit", 20))
		if err != nil {
			return writeError(c, "failed to list battles", err)
		}
		return c.JSON(fiber.Map{"battles": list})
	})

	battles.Get("/:id", func(c *fiber.Ctx) error {
		b, err := engine.GetBattleState(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, "battle not found", err)
		}
		return c.JSON(b)
	})

	battles.Post("/:id/actions", func(c *fiber.Ctx) error {
		var req submitActionRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "invalid request body")
			}
		}

		b, err := engine.SubmitAction(c.UserContext(), c.Params("id"), middleware.UserID(c), strings.TrimSpace(req.AbilityID))
		if err != nil {
			return writeError(c, "failed to submit action", err)
		}
		return c.JSON(b)
	})
}
