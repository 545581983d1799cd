package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codemorph-backend/internal/http/response"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/services"
)

type ProfileHandler struct {
	log      *logger.Logger
	profiles services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:      log.With("handler", "ProfileHandler"),
		profiles: profiles,
	}
}

type ProfileRequest struct {
	SessionID       string          `json:"session_id"`
	InteractionData InteractionData `json:"interaction_data"`
	Topic           string          `json:"topic"`
}

// InteractionData carries the skill signals of one interaction. Absent fields
// are excluded from inference entirely.
type InteractionData struct {
	CodeQualityScore *float64 `json:"code_quality_score"`
	Question         *string  `json:"question"`
	CodePatterns     []string `json:"code_patterns"`
}

// POST /api/learning-profile
func (h *ProfileHandler) UpdateLearningProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.SessionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("session_id is required"))
		return
	}

	signals := services.SkillSignals{
		CodeQualityScore: req.InteractionData.CodeQualityScore,
		Question:         req.InteractionData.Question,
		CodePatterns:     req.InteractionData.CodePatterns,
	}
	update, err := h.profiles.UpdateFromSignals(c.Request.Context(), req.SessionID, signals, req.Topic)
	if err != nil {
		h.log.Error("Learning profile update failed", "session_id", req.SessionID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "profile_update_failed", err)
		return
	}
	response.RespondOK(c, update)
}
