package notifications

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.list)
	rg.GET("/unread", h.unread)
	rg.PATCH("/read-all", h.readAll)
	rg.PATCH("/:id/read", h.read)
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, []Notification{})
		return
	}

	items, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		// Degrade to an empty list so the notification bell never blocks the UI.
		c.JSON(http.StatusOK, []Notification{})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) unread(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, []Notification{})
		return
	}

	items, err := h.repo.UnreadByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, []Notification{})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) read(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	n, err := h.repo.MarkRead(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) readAll(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	n, err := h.repo.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Marked %d notifications as read", n)})
}
