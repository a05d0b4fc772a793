package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/transport/http/middleware"
	"docuchat/internal/transport/http/response"
)

const maxUploadBytes = 32 << 20 // per request

type DocumentHandler struct {
	documentService *app.DocumentService
	sessionService  *app.SessionService
}

type MoveDocumentRequest struct {
	FolderID string `json:"folder_id"`
}

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

func NewDocumentHandler(documentService *app.DocumentService, sessionService *app.SessionService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		sessionService:  sessionService,
	}
}

// Upload accepts a multipart batch under the "files" field; an optional
// "folder_id" field files every document in the batch.
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart payload")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "no files provided")
		return
	}
	folderID := c.PostForm("folder_id")

	files := make([]app.UploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read uploaded file failed")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read uploaded file failed")
			return
		}
		files = append(files, app.UploadFile{
			Name:     header.Filename,
			Data:     data,
			FolderID: folderID,
		})
	}

	result, err := h.documentService.Upload(files)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.documentService.Delete(id); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		}
		return
	}
	response.OK(c, gin.H{"deleted_document_id": id})
}

func (h *DocumentHandler) Move(c *gin.Context) {
	var req MoveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	doc, err := h.documentService.Move(c.Param("id"), req.FolderID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		case errors.Is(err, app.ErrFolderNotFound):
			response.Error(c, http.StatusNotFound, response.CodeFolderNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "move document failed")
		}
		return
	}
	response.OK(c, doc)
}

func (h *DocumentHandler) Summarize(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	turn, err := h.sessionService.Summarize(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		case errors.Is(err, app.ErrDocumentLocked):
			response.Error(c, http.StatusForbidden, response.CodeDocumentLocked, err.Error())
		case errors.Is(err, app.ErrSessionBusy):
			response.Error(c, http.StatusConflict, response.CodeSessionBusy, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "summarize failed")
		}
		return
	}
	response.OK(c, turn)
}

func (h *DocumentHandler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	folder, err := h.documentService.CreateFolder(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create folder failed")
		}
		return
	}
	response.OK(c, folder)
}

func (h *DocumentHandler) ListFolders(c *gin.Context) {
	folders, err := h.documentService.ListFolders()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list folders failed")
		return
	}
	response.OK(c, folders)
}

func (h *DocumentHandler) DeleteFolder(c *gin.Context) {
	id := c.Param("id")
	if err := h.documentService.DeleteFolder(id); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrFolderNotFound):
			response.Error(c, http.StatusNotFound, response.CodeFolderNotFound, err.Error())
		case errors.Is(err, app.ErrFolderReserved):
			response.Error(c, http.StatusForbidden, response.CodeFolderReserved, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete folder failed")
		}
		return
	}
	response.OK(c, gin.H{"deleted_folder_id": id})
}
