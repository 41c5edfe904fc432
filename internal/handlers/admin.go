package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/courseview-backend/internal/middleware"
	"github.com/yungbote/courseview-backend/internal/services"
)

type AdminHandler struct {
	svc    services.AdminService
	export services.ExportService
}

func NewAdminHandler(svc services.AdminService, export services.ExportService) *AdminHandler {
	return &AdminHandler{svc: svc, export: export}
}

type mergeRequest struct {
	OldID uuid.UUID `json:"old_id" binding:"required"`
	NewID uuid.UUID `json:"new_id" binding:"required"`
}

type replaceCodeRequest struct {
	OldCode string `json:"old_code" binding:"required"`
	NewCode string `json:"new_code" binding:"required"`
}

func actorID(c *gin.Context) uuid.UUID {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return uuid.Nil
}

// POST /api/admin/course/merge
func (h *AdminHandler) MergeCourse(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	merged, err := h.svc.MergeCourse(c.Request.Context(), actorID(c), req.OldID, req.NewID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"merged": merged})
}

// POST /api/admin/teacher/merge
func (h *AdminHandler) MergeTeacher(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	merged, err := h.svc.MergeTeacher(c.Request.Context(), actorID(c), req.OldID, req.NewID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"merged": merged})
}

// POST /api/admin/course/replace-code
func (h *AdminHandler) ReplaceCourseCode(c *gin.Context) {
	var req replaceCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if err := h.svc.ReplaceCourseCode(c.Request.Context(), actorID(c), req.OldCode, req.NewCode); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"replaced": true})
}

// POST /api/admin/aggregates/recompute
func (h *AdminHandler) RecomputeAggregates(c *gin.Context) {
	if err := h.svc.RecomputeAggregates(c.Request.Context(), actorID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"recomputed": true})
}

// GET /api/admin/course/export
func (h *AdminHandler) ExportCourses(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="courses.csv"`)
	if err := h.export.ExportCoursesToCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be written; log-and-abort is the best we can do.
		_ = c.Error(err)
		c.Abort()
	}
}
