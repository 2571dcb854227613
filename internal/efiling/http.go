package efiling

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("/drafts", h.create)
	rg.GET("/drafts", h.list)
	rg.GET("/drafts/:id", h.get)
	rg.PUT("/drafts/:id", h.update)
	rg.POST("/drafts/:id/submit", h.submit)
	rg.DELETE("/drafts/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Court) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	d, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, []Draft{})
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if errors.Is(err, ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	d, err := h.svc.Update(c.Request.Context(), auth.UserDBID(c), c.Param("id"), req)
	switch {
	case errors.Is(err, ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
	case errors.Is(err, ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "draft already submitted"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, d)
	}
}

func (h *Handler) submit(c *gin.Context) {
	d, err := h.svc.Submit(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	switch {
	case errors.Is(err, ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
	case errors.Is(err, ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "draft already submitted"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, d)
	}
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if errors.Is(err, ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted successfully"})
}
