package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/service"
)

const maxFeedbackLength = 500

// Recommender is the service behind the recommendation routes.
type Recommender interface {
	Generate(ctx context.Context, userID, feedback string, likedID int) ([]models.RecommendationResponse, error)
	Latest(ctx context.Context, userID string) ([]models.RecommendationResponse, error)
	History(ctx context.Context, userID string, params models.HistoryParams) (*models.RecommendationPage, error)
}

// RecommendationHandler handles HTTP requests for recommendations.
type RecommendationHandler struct {
	svc Recommender
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc Recommender) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerateRequest is the body of a generation request. Both fields are optional.
type GenerateRequest struct {
	Feedback string `json:"feedback"`
	LikedID  int    `json:"tmdb_id"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *RecommendationHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "recommender",
	})
}

// Generate produces a fresh list of recommendations for the user.
// @Summary Generate recommendations
// @Tags recommendations
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body GenerateRequest false "Feedback and liked title"
// @Success 200 {object} models.RecommendationListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{id}/recommendations [post]
func (h *RecommendationHandler) Generate(c fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("id"))
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
		}
	}
	if len([]rune(req.Feedback)) > maxFeedbackLength {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "feedback is too long"})
	}
	if req.LikedID < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid tmdb_id"})
	}

	recs, err := h.svc.Generate(c.Context(), userID, req.Feedback, req.LikedID)
	if err != nil {
		return h.fail(c, userID, "failed to generate recommendations", err)
	}

	return c.JSON(models.RecommendationListResponse{Recommendations: recs})
}

// Latest returns the user's most recent recommendations.
// @Summary Latest recommendations
// @Tags recommendations
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.RecommendationListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{id}/recommendations [get]
func (h *RecommendationHandler) Latest(c fiber.Ctx) error {
	userID := c.Params("id")

	recs, err := h.svc.Latest(c.Context(), userID)
	if err != nil {
		return h.fail(c, userID, "failed to retrieve recommendations", err)
	}

	return c.JSON(models.RecommendationListResponse{Recommendations: recs})
}

// History returns a page of everything recommended to the user.
// @Summary Recommendation history
// @Tags recommendations
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} models.RecommendationPage
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{id}/recommendations/history [get]
func (h *RecommendationHandler) History(c fiber.Ctx) error {
	userID := c.Params("id")
	params := models.HistoryParams{
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "page_size", 20),
	}

	page, err := h.svc.History(c.Context(), userID, params)
	if err != nil {
		return h.fail(c, userID, "failed to retrieve recommendation history", err)
	}

	return c.JSON(page)
}

// fail maps service errors to a status code. Only unexpected errors are
// hidden behind msg.
func (h *RecommendationHandler) fail(c fiber.Ctx, userID, msg string, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNoCandidates):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("request abandoned", "user_id", userID, "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "request cancelled"})
	}
	slog.Error(msg, "user_id", userID, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msg})
}
