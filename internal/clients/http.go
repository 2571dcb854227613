package clients

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
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusOK, []Client{})
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
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
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
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	cl, err := h.repo.Create(c.Request.Context(), ownerID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cl)
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

	cl, err := h.repo.Update(c.Request.Context(), ownerID, c.Param("id"), f)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cl)
}
