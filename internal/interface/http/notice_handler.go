package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-board/internal/application"
	"community-board/internal/domain/entity"
	"community-board/internal/domain/repository"
	"community-board/internal/interface/middleware"
	"community-board/pkg/response"
	"community-board/pkg/validation"
)

type NoticeHandler struct {
	Svc    *application.NoticeService
	Logger *logrus.Logger
}

func NewNoticeHandler(svc *application.NoticeService, logger *logrus.Logger) *NoticeHandler {
	return &NoticeHandler{Svc: svc, Logger: logger}
}

type noticeRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
	Date     string `json:"date" binding:"required"`
}

// parseDate accepts RFC3339 timestamps and plain calendar dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *NoticeHandler) input(c *gin.Context, req noticeRequest) (application.NoticeInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must be a valid date"})
		return application.NoticeInput{}, false
	}
	return application.NoticeInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: entity.Category(req.Category),
		Date:     date,
		PostedBy: c.GetString(middleware.CtxUserEmailKey),
	}, true
}

// Create POST /notices
func (h *NoticeHandler) Create(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}

	n, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCategory) {
			response.Error[any](c, http.StatusBadRequest, "invalid category", nil)
			return
		}
		h.logError(c, err, "create notice failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create notice", nil)
		return
	}
	response.Success(c, http.StatusOK, n, "notice created", nil)
}

// List GET /notices?category=
func (h *NoticeHandler) List(c *gin.Context) {
	category := entity.Category(c.Query("category"))

	notices, err := h.Svc.List(c.Request.Context(), category)
	if err != nil {
		h.logError(c, err, "list notices failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list notices", nil)
		return
	}
	response.Success(c, http.StatusOK, notices, "notices", nil)
}

// Get GET /notices/:id
func (h *NoticeHandler) Get(c *gin.Context) {
	n, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusBadRequest, "notice not found", nil)
			return
		}
		h.logError(c, err, "get notice failed")
		response.Error[any](c, http.StatusInternalServerError, "could not get notice", nil)
		return
	}
	response.Success(c, http.StatusOK, n, "notice", nil)
}

// Update PUT /notices/:id
func (h *NoticeHandler) Update(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}

	n, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Error[any](c, http.StatusBadRequest, "notice not found", nil)
		case errors.Is(err, application.ErrInvalidCategory):
			response.Error[any](c, http.StatusBadRequest, "invalid category", nil)
		default:
			h.logError(c, err, "update notice failed")
			response.Error[any](c, http.StatusInternalServerError, "could not update notice", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, n, "notice updated", nil)
}

// Delete DELETE /notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusBadRequest, "notice not found", nil)
			return
		}
		h.logError(c, err, "delete notice failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete notice", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "notice deleted", nil)
}

// Search GET /notices/search?q=
func (h *NoticeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}

	hits, err := h.Svc.Search(c.Request.Context(), q, 20)
	if err != nil {
		h.logError(c, err, "search notices failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// UploadAttachment POST /notices/:id/attachment (multipart field "file")
func (h *NoticeHandler) UploadAttachment(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAttachment(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusBadRequest, "notice not found", nil)
			return
		}
		h.logError(c, err, "upload attachment failed")
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attachment_url": url}, "attachment uploaded", nil)
}

func (h *NoticeHandler) logError(c *gin.Context, err error, msg string) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"ip":         c.GetString("real_ip"),
		"user_id":    c.GetString(middleware.CtxUserIDKey),
	}).Error(msg)
}
