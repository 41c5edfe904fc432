package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseview-backend/internal/middleware"
	"github.com/yungbote/courseview-backend/internal/services"
)

type EnrollHandler struct {
	svc    services.EnrollSyncService
	client services.LessonClient
}

// NewEnrollHandler takes an optional LessonClient; when it is nil the caller
// must post the lesson entries directly.
func NewEnrollHandler(svc services.EnrollSyncService, client services.LessonClient) *EnrollHandler {
	return &EnrollHandler{svc: svc, client: client}
}

type syncEnrollmentsRequest struct {
	Token   string                 `json:"token"`
	Entries []services.LessonEntry `json:"entries"`
}

// POST /api/lesson/sync/:term
func (h *EnrollHandler) SyncEnrollments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	term := c.Param("term")

	var req syncEnrollmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}

	entries := req.Entries
	if len(entries) == 0 && h.client != nil && req.Token != "" {
		fetched, err := h.client.GetLessons(c.Request.Context(), req.Token, term)
		if err != nil {
			RespondError(c, http.StatusBadGateway, "upstream", err)
			return
		}
		entries = fetched
	}

	courseIDs, err := h.svc.SyncEnrollments(c.Request.Context(), user.ID, entries, term)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{"course_ids": courseIDs})
}
