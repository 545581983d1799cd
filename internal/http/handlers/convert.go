package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/codemorph-backend/internal/http/response"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/services"
	"github.com/yungbote/codemorph-backend/internal/types"
)

type ConvertHandler struct {
	log        *logger.Logger
	conversion services.ConversionService
	analysis   services.AnalysisService
	results    services.ResultService
	speech     services.SpeechProviderService
}

// NewConvertHandler wires the conversion endpoints. speech may be nil; the
// audio upload endpoint then reports the provider as unavailable.
func NewConvertHandler(
	log *logger.Logger,
	conversion services.ConversionService,
	analysis services.AnalysisService,
	results services.ResultService,
	speech services.SpeechProviderService,
) *ConvertHandler {
	return &ConvertHandler{
		log:        log.With("handler", "ConvertHandler"),
		conversion: conversion,
		analysis:   analysis,
		results:    results,
		speech:     speech,
	}
}

type ProcessRequest struct {
	SessionID      string `json:"session_id"`
	InputType      string `json:"input_type"`
	Content        string `json:"content"`
	Description    string `json:"description"`
	TargetLanguage string `json:"target_language"`
}

// POST /api/process
func (h *ConvertHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.runConversion(c, req)
}

// POST /api/process-image  (multipart: file, session_id, description?)
func (h *ConvertHandler) ProcessImage(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("session_id is required"))
		return
	}
	raw, err := readUpload(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	h.runConversion(c, ProcessRequest{
		SessionID:   sessionID,
		InputType:   "image",
		Content:     base64.StdEncoding.EncodeToString(raw),
		Description: c.PostForm("description"),
	})
}

// POST /api/process-audio  (multipart: file, session_id)
func (h *ConvertHandler) ProcessAudio(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("session_id is required"))
		return
	}
	if h.speech == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "speech_unavailable", fmt.Errorf("speech provider not configured"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	raw, err := readFormFileBytes(file)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}

	transcript, err := h.speech.TranscribeAudioBytes(c.Request.Context(), raw, file.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("Audio transcription failed", "session_id", sessionID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "transcription_failed", err)
		return
	}

	h.runConversion(c, ProcessRequest{
		SessionID: sessionID,
		InputType: "audio",
		Content:   transcript,
	})
}

// GET /api/sessions/:session_id/history
func (h *ConvertHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")
	results, err := h.results.History(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("Session history lookup failed", "session_id", sessionID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "history_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"session_id": sessionID, "results": results})
}

func (h *ConvertHandler) runConversion(c *gin.Context, req ProcessRequest) {
	if req.SessionID == "" || req.InputType == "" || req.Content == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("session_id, input_type and content are required"))
		return
	}

	ctx := c.Request.Context()
	out, err := h.conversion.Convert(ctx, services.ConversionInput{
		SessionID:      req.SessionID,
		InputType:      req.InputType,
		Content:        req.Content,
		Description:    req.Description,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "processing_failed", err)
		return
	}

	analysis := h.analysis.Analyze(ctx, out.Pseudocode, out.CodeOutputs)

	result, err := composeResult(req.SessionID, req.InputType, out, analysis)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "processing_failed", err)
		return
	}
	if err := h.results.Save(ctx, result); err != nil {
		h.log.Error("Result persistence failed", "session_id", req.SessionID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "persistence_failed", err)
		return
	}

	response.RespondOK(c, result)
}

func composeResult(sessionID, inputType string, out *services.ConversionOutput, analysis types.CodeAnalysis) (*types.ConversionResult, error) {
	outputsRaw, err := json.Marshal(out.CodeOutputs)
	if err != nil {
		return nil, fmt.Errorf("encode code outputs: %w", err)
	}
	analysisRaw, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return &types.ConversionResult{
		ID:           uuid.New(),
		SessionID:    sessionID,
		InputType:    inputType,
		Pseudocode:   out.Pseudocode,
		Flowchart:    out.Flowchart,
		CodeOutputs:  datatypes.JSON(outputsRaw),
		CodeAnalysis: datatypes.JSON(analysisRaw),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func readUpload(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	return readFormFileBytes(file)
}

func readFormFileBytes(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
