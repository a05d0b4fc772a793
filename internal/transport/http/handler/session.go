package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/pkg/jwtutil"
	"docuchat/internal/transport/http/response"
)

type SessionHandler struct {
	sessions *app.SessionManager
	secret   []byte
	tokenTTL time.Duration
}

func NewSessionHandler(sessions *app.SessionManager, secret []byte, tokenTTL time.Duration) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Create opens a fresh session and mints its token. Sessions always start
// unverified.
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessions.Create()
	token, err := jwtutil.GenerateToken(h.secret, h.tokenTTL, sess.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		return
	}

	response.OK(c, gin.H{
		"session_id": sess.ID,
		"token":      token,
	})
}
