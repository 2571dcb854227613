package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("/profile", h.syncProfile)
	rg.GET("/profile", h.getProfile)
}

type syncProfileReq struct {
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	BarCouncilNumber string `json:"barCouncilNumber"`
	PhotoURL         string `json:"photoURL"`
}

func (h *Handler) syncProfile(c *gin.Context) {
	var req syncProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.repo.Upsert(c.Request.Context(), UpsertProfile{
		FirebaseUID:      auth.SubjectUID(c),
		Email:            req.Email,
		FullName:         req.FullName,
		BarCouncilNumber: req.BarCouncilNumber,
		PhotoURL:         req.PhotoURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.repo.BySubject(c.Request.Context(), auth.SubjectUID(c))
	if errors.Is(err, auth.ErrNoProfile) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}
