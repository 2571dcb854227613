package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.GET("/stats", h.stats)
	rg.GET("/activity", h.activity)
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context(), auth.UserDBID(c)))
}

func (h *Handler) activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	c.JSON(http.StatusOK, h.svc.Activity(c.Request.Context(), auth.UserDBID(c), limit))
}
