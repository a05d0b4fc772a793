package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/transport/http/middleware"
	"docuchat/internal/transport/http/response"
)

type ChatHandler struct {
	sessionService *app.SessionService
}

type QueryRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewChatHandler(sessionService *app.SessionService) *ChatHandler {
	return &ChatHandler{sessionService: sessionService}
}

func (h *ChatHandler) SubmitQuery(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	turn, err := h.sessionService.SubmitQuery(c.Request.Context(), sess, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMessageEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSessionBusy):
			response.Error(c, http.StatusConflict, response.CodeSessionBusy, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit query failed")
		}
		return
	}

	response.OK(c, turn)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	limit := 200
	if raw := c.Query("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	history, err := h.sessionService.GetHistory(c.Request.Context(), sess, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get history failed")
		return
	}

	response.OK(c, history)
}

func (h *ChatHandler) ExportTranscript(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	transcript, err := h.sessionService.ExportTranscript(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "export transcript failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="docuchat-transcript.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript))
}
