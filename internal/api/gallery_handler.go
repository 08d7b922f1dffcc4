package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type GalleryHandler struct {
	creatureService *service.CreatureService
	feedbackService *service.FeedbackService
}

func NewGalleryHandler(creatureService *service.CreatureService, feedbackService *service.FeedbackService) *GalleryHandler {
	return &GalleryHandler{creatureService: creatureService, feedbackService: feedbackService}
}

// Index lists categories and all creatures --> GET /
func (h *GalleryHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.creatureService.GetAllCategories(ctx)
	if err != nil {
		return errorJSON(c, err)
	}
	creatures, err := h.creatureService.GetAllCreatures(ctx, 0)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := map[string]any{
		"title":      "Animal & Bird Gallery",
		"categories": categories,
		"creatures":  creatures,
	}
	attachFlashes(c, resp)

	return c.JSON(200, resp)
}

// Category filters creatures by category, paginated --> GET /gallery/category/:id
func (h *GalleryHandler) Category(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid category ID"})
	}

	category, err := h.creatureService.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return errorJSON(c, err)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageData, err := h.creatureService.GetCreaturesByCategory(ctx, categoryID, page, 0)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]any{
		"title":     category.Name + " Gallery",
		"category":  category,
		"creatures": pageData.Creatures,
		"total":     pageData.Total,
		"pages":     pageData.Pages,
	})
}

// Detail shows one creature with feedback --> GET /gallery/creature/:id
func (h *GalleryHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()

	creatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid creature ID"})
	}

	creature, err := h.creatureService.GetCreatureByID(ctx, creatureID)
	if err != nil {
		return errorJSON(c, err)
	}

	feedback, err := h.feedbackService.GetFeedbackForCreature(ctx, creatureID)
	if err != nil {
		return errorJSON(c, err)
	}
	avgRating, err := h.feedbackService.GetAverageRating(ctx, creatureID)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := map[string]any{
		"creature":       creature,
		"feedback":       feedback,
		"feedback_count": len(feedback),
	}
	if avgRating != nil {
		resp["avg_rating"] = *avgRating
	}
	attachFlashes(c, resp)

	return c.JSON(200, resp)
}

// Search matches name, description or scientific name --> GET /search
func (h *GalleryHandler) Search(c echo.Context) error {
	creatures, err := h.creatureService.SearchCreatures(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, creatures)
}

// attachFlashes drains queued flash messages into the response body.
func attachFlashes(c echo.Context, resp map[string]any) {
	sess := CurrentSession(c)
	if sess == nil {
		return
	}
	flashes := sess.PopFlashes()
	if len(flashes) == 0 {
		return
	}
	if err := sess.Save(); err != nil {
		logger.Warn().Err(err).Msg("Error saving session after flash drain")
	}
	resp["flash"] = flashes
}
