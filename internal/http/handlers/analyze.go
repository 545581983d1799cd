package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codemorph-backend/internal/http/response"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/services"
)

type AnalyzeHandler struct {
	log      *logger.Logger
	analysis services.AnalysisService
}

func NewAnalyzeHandler(log *logger.Logger, analysis services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		log:      log.With("handler", "AnalyzeHandler"),
		analysis: analysis,
	}
}

type AnalyzeRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// POST /api/analyze-code
func (h *AnalyzeHandler) AnalyzeCode(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.runAnalysis(c, req.SessionID, req.Content)
}

// POST /api/analyze-code-file  (multipart: file, session_id)
func (h *AnalyzeHandler) AnalyzeCodeFile(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	file, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	h.runAnalysis(c, sessionID, string(raw))
}

// runAnalysis is analysis-only: no conversion, no persistence, no profile
// writes. Profile reclassification happens only through the learning-profile
// flow. No pseudocode exists on this path; the code stands alone.
func (h *AnalyzeHandler) runAnalysis(c *gin.Context, sessionID, content string) {
	if sessionID == "" || content == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("session_id and content are required"))
		return
	}

	analysis := h.analysis.Analyze(c.Request.Context(), "", map[string]string{services.AnalysisLanguageKey: content})

	response.RespondOK(c, gin.H{
		"session_id":    sessionID,
		"input_type":    "code_analysis",
		"code_analysis": analysis,
		"original_code": content,
	})
}
