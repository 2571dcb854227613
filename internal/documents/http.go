package documents

import (
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
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.UserDBID(c)
	if ownerID == "" {
		c.JSON(http.StatusOK, []Document{})
		return
	}

	var caseID *string
	if v := strings.TrimSpace(c.Query("case_id")); v != "" {
		caseID = &v
	}

	items, err := h.repo.List(c.Request.Context(), ownerID, caseID)
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
	if f.CaseID == nil || f.Filename == nil || strings.TrimSpace(*f.Filename) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "case_id and filename are required"})
		return
	}

	d, err := h.repo.Create(c.Request.Context(), ownerID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
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
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
