package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/transport/http/middleware"
	"docuchat/internal/transport/http/response"
)

type AuthHandler struct {
	sessionService *app.SessionService
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(sessionService *app.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

func (h *AuthHandler) SubmitCredentials(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.sessionService.SubmitCredentials(c.Request.Context(), sess, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoPromptOpen):
			response.Error(c, http.StatusBadRequest, response.CodeNoPromptOpen, err.Error())
		case errors.Is(err, app.ErrSessionBusy):
			response.Error(c, http.StatusConflict, response.CodeSessionBusy, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "credential check failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *AuthHandler) State(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	response.OK(c, h.sessionService.AuthStatus(sess))
}

func (h *AuthHandler) CancelLogin(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	if err := h.sessionService.CancelLogin(sess); err != nil {
		if errors.Is(err, app.ErrSessionBusy) {
			response.Error(c, http.StatusConflict, response.CodeSessionBusy, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "cancel login failed")
		return
	}

	response.OK(c, h.sessionService.AuthStatus(sess))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), sess); err != nil {
		if errors.Is(err, app.ErrSessionBusy) {
			response.Error(c, http.StatusConflict, response.CodeSessionBusy, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
		return
	}

	response.OK(c, h.sessionService.AuthStatus(sess))
}
