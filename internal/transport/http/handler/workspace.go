package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/model"
	"docuchat/internal/transport/http/response"
)

type WorkspaceHandler struct {
	documentService *app.DocumentService
}

func NewWorkspaceHandler(documentService *app.DocumentService) *WorkspaceHandler {
	return &WorkspaceHandler{documentService: documentService}
}

func (h *WorkspaceHandler) Export(c *gin.Context) {
	ws, err := h.documentService.ExportWorkspace()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "export workspace failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="docuchat-workspace.json"`)
	c.JSON(http.StatusOK, ws)
}

// Import replaces the registry with an uploaded workspace snapshot. A payload
// that fails validation is rejected before anything is touched.
func (h *WorkspaceHandler) Import(c *gin.Context) {
	var ws model.Workspace
	if err := c.ShouldBindJSON(&ws); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, response.CodeMalformedWorkspace, "malformed workspace payload")
		return
	}

	if err := h.documentService.ImportWorkspace(&ws); err != nil {
		switch {
		case errors.Is(err, app.ErrMalformedWorkspace):
			response.Error(c, http.StatusUnprocessableEntity, response.CodeMalformedWorkspace, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "import workspace failed")
		}
		return
	}

	response.OK(c, gin.H{
		"documents": len(ws.Documents),
		"folders":   len(ws.Folders),
	})
}
