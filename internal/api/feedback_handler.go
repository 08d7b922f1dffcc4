package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	activity        *service.ActivityService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, activity *service.ActivityService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, activity: activity}
}

// Create adds a comment and optional rating --> POST /feedback
func (h *FeedbackHandler) Create(c echo.Context) error {
	req := struct {
		CreatureID int    `json:"creature_id" form:"creature_id"`
		Comment    string `json:"comment" form:"comment"`
		Rating     *int   `json:"rating" form:"rating"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	sess := CurrentSession(c)
	created, err := h.feedbackService.CreateFeedback(c.Request().Context(), sess.Data.UserID, req.CreatureID, req.Comment, req.Rating)
	if err != nil {
		return errorJSON(c, err)
	}

	userID := sess.Data.UserID
	h.activity.Log(&userID, sess.Data.Username, "FEEDBACK_CREATE",
		fmt.Sprintf("Feedback on creature %d", req.CreatureID), c.RealIP(), c.Request().UserAgent())

	sess.Flash("success", "Thank you for your feedback!")
	if err := sess.Save(); err != nil {
		logger.Warn().Err(err).Msg("Error saving session flash")
	}

	return c.JSON(201, created)
}

// Delete removes feedback owned by the caller (admins may remove any)
// --> DELETE /feedback/:id
func (h *FeedbackHandler) Delete(c echo.Context) error {
	feedbackID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	sess := CurrentSession(c)
	creatureID, err := h.feedbackService.DeleteFeedback(c.Request().Context(), feedbackID, sess.Data.UserID, sess.Data.IsAdmin)
	if err != nil {
		return errorJSON(c, err)
	}

	userID := sess.Data.UserID
	h.activity.Log(&userID, sess.Data.Username, "FEEDBACK_DELETE",
		fmt.Sprintf("Deleted feedback %d", feedbackID), c.RealIP(), c.Request().UserAgent())

	return c.JSON(200, map[string]any{"message": "Feedback deleted", "creature_id": creatureID})
}

// ListForCreature returns all feedback for one creature --> GET /feedback/api/:creatureId
func (h *FeedbackHandler) ListForCreature(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("creatureId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid creature ID"})
	}

	feedback, err := h.feedbackService.GetFeedbackForCreature(c.Request().Context(), creatureID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, feedback)
}
