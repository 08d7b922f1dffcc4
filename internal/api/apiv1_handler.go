package api

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

// APIV1Handler serves the token-authenticated JSON API. Unlike the
// gallery handlers it carries no session or flash state.
type APIV1Handler struct {
	creatureService *service.CreatureService
	feedbackService *service.FeedbackService
}

func NewAPIV1Handler(creatureService *service.CreatureService, feedbackService *service.FeedbackService) *APIV1Handler {
	return &APIV1Handler{creatureService: creatureService, feedbackService: feedbackService}
}

func (h *APIV1Handler) ListCreatures(c echo.Context) error {
	categoryID, _ := strconv.Atoi(c.QueryParam("category"))

	creatures, err := h.creatureService.GetAllCreatures(c.Request().Context(), categoryID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, map[string]any{"creatures": creatures})
}

func (h *APIV1Handler) GetCreature(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	ctx := c.Request().Context()
	creature, err := h.creatureService.GetCreatureByID(ctx, creatureID)
	if err != nil {
		return errorJSON(c, err)
	}
	avg, err := h.feedbackService.GetAverageRating(ctx, creatureID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]any{"creature": creature, "avg_rating": avg})
}

func (h *APIV1Handler) ListCategories(c echo.Context) error {
	categories, err := h.creatureService.GetAllCategories(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, map[string]any{"categories": categories})
}

// Me echoes back the token's identity claims.
func (h *APIV1Handler) Me(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Missing token"})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Invalid token"})
	}

	return c.JSON(200, map[string]any{
		"name":  claims["name"],
		"email": claims["email"],
		"admin": claims["admin"],
	})
}
