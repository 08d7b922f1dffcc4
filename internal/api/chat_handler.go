package api

import (
	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat forwards a message to the completion API --> POST /chat
func (h *ChatHandler) Chat(c echo.Context) error {
	req := struct {
		Message string `json:"message"`
		Context string `json:"context"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	reply, err := h.chatService.Chat(c.Request().Context(), req.Message, req.Context)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]string{"reply": reply})
}
