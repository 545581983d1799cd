package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codemorph-backend/internal/http/response"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/services"
)

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:  log.With("handler", "ChatHandler"),
		chat: chat,
	}
}

type ChatRequest struct {
	SessionID string               `json:"session_id"`
	Message   string               `json:"message"`
	Context   services.ChatContext `json:"context"`
}

// POST /api/chat (also mounted at /api/coach)
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	reply, err := h.chat.Chat(c.Request.Context(), req.SessionID, req.Message, req.Context)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("Chat failed", "session_id", req.SessionID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		return
	}
	response.RespondOK(c, reply)
}
