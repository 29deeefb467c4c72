package handler

import "github.com/gofiber/fiber/v3"

// Register mounts the health and recommendation routes. limit, when not
// nil, guards the generation route only.
func (h *RecommendationHandler) Register(app *fiber.App, limit fiber.Handler) {
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	if limit != nil {
		api.Post("/users/:id/recommendations", limit, h.Generate)
	} else {
		api.Post("/users/:id/recommendations", h.Generate)
	}
	api.Get("/users/:id/recommendations", h.Latest)
	api.Get("/users/:id/recommendations/history", h.History)
}
