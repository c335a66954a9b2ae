package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
)

type ownedClassRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
}

type studentFeedbackRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.FeedbackDetail, error)
}

// DashboardService assembles the role-specific landing page data.
type DashboardService struct {
	classes   ownedClassRepository
	feedbacks studentFeedbackRepository
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(classes ownedClassRepository, feedbacks studentFeedbackRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{classes: classes, feedbacks: feedbacks, logger: logger}
}

// TeacherHome lists the classes owned by a matched teacher principal.
func (s *DashboardService) TeacherHome(ctx context.Context, teacher models.TeacherPrincipal) ([]models.Class, error) {
	if !teacher.Matched() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher is not matched yet")
	}
	classes, err := s.classes.ListByTeacher(ctx, *teacher.TeacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// StudentHome lists the student's submitted feedback.
func (s *DashboardService) StudentHome(ctx context.Context, student models.StudentPrincipal) ([]models.FeedbackDetail, error) {
	feedbacks, err := s.feedbacks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return feedbacks, nil
}
