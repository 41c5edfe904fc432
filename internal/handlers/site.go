package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseview-backend/internal/services"
)

type SiteHandler struct {
	announcements services.AnnouncementService
	stats         services.StatsService
}

func NewSiteHandler(announcements services.AnnouncementService, stats services.StatsService) *SiteHandler {
	return &SiteHandler{announcements: announcements, stats: stats}
}

// GET /api/announcement
func (h *SiteHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcements.ListAvailable(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{"announcements": announcements})
}

// GET /api/statistic
func (h *SiteHandler) GetStatistics(c *gin.Context) {
	stats, err := h.stats.GetSiteStats(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, stats)
}
