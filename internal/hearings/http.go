package hearings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.list)
	rg.GET("/today", h.today)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusOK, []Hearing{})
		return
	}

	items, err := h.repo.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) today(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusOK, []Hearing{})
		return
	}

	items, err := h.repo.Today(c.Request.Context(), ownerID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
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
	if f.CaseID == nil || f.HearingDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "case_id and hearing_date are required"})
		return
	}

	hr, err := h.repo.Create(c.Request.Context(), ownerID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, hr)
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

	hr, err := h.repo.Update(c.Request.Context(), ownerID, c.Param("id"), f)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "hearing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, hr)
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
		c.JSON(http.StatusNotFound, gin.H{"error": "hearing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hearing deleted successfully"})
}
