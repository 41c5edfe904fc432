package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

type ExportService interface {
	// ExportCoursesToCSV writes `code,name,main_teacher,id` plus one row per
	// course in (code, teacher name) order, CRLF-terminated.
	ExportCoursesToCSV(ctx context.Context, w io.Writer) error
}

type exportService struct {
	db      *gorm.DB
	log     *logger.Logger
	courses repos.CourseRepo
}

func NewExportService(db *gorm.DB, baseLog *logger.Logger, courses repos.CourseRepo) ExportService {
	return &exportService{
		db:      db,
		log:     baseLog.With("service", "ExportService"),
		courses: courses,
	}
}

func (s *exportService) ExportCoursesToCSV(ctx context.Context, w io.Writer) error {
	courses, err := s.courses.ListOrderedWithTeacher(ctx, nil)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write([]string{"code", "name", "main_teacher", "id"}); err != nil {
		return err
	}
	for _, c := range courses {
		teacherName := ""
		if c.MainTeacher != nil {
			teacherName = c.MainTeacher.Name
		}
		if err := cw.Write([]string{c.Code, c.Name, teacherName, c.ID.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
