package http

import (
	"net/http"
	"time"

	statService "anoa.com/postpilot/internal/modules/stat/service"
	"anoa.com/postpilot/pkg/phtime"
	"anoa.com/postpilot/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetPostStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.statService.GetPostStats(c.Request.Context(), userID, time.Now().In(phtime.Location))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
