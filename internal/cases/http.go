package cases

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusOK, []Case{})
		return
	}

	items, err := h.repo.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	d, err := h.repo.Get(c.Request.Context(), ownerID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) create(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	var f Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if f.CaseNumber == nil || strings.TrimSpace(*f.CaseNumber) == "" ||
		f.CaseTitle == nil || strings.TrimSpace(*f.CaseTitle) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "case_number and case_title are required"})
		return
	}
	if f.Status != nil && !ValidStatus(*f.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	cs, err := h.repo.Create(c.Request.Context(), ownerID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cs)
}

func (h *Handler) update(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	var f Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if f.Status != nil && !ValidStatus(*f.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	cs, err := h.repo.Update(c.Request.Context(), ownerID, c.Param("id"), f)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}
