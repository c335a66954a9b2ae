package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
)

type feedbackRepository interface {
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.FeedbackDetail, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id string) error
}

type eligibleClassRepository interface {
	ListEligibleForStudent(ctx context.Context, studentID string) ([]models.Class, error)
}

// FeedbackRequest carries the feedback form values for create and edit.
type FeedbackRequest struct {
	ClassID     string `validate:"required"`
	Content     string `validate:"required"`
	IsAnonymous bool
}

// FeedbackService implements the student-owned feedback lifecycle.
type FeedbackService struct {
	feedbacks feedbackRepository
	classes   eligibleClassRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(feedbacks feedbackRepository, classes eligibleClassRepository, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{feedbacks: feedbacks, classes: classes, validator: validate, logger: logger}
}

// EligibleClasses returns the classes the student has not reviewed yet.
func (s *FeedbackService) EligibleClasses(ctx context.Context, student models.StudentPrincipal) ([]models.Class, error) {
	classes, err := s.classes.ListEligibleForStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible classes")
	}
	return classes, nil
}

// ListForStudent returns the student's own feedback with class names.
func (s *FeedbackService) ListForStudent(ctx context.Context, student models.StudentPrincipal) ([]models.FeedbackDetail, error) {
	feedbacks, err := s.feedbacks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return feedbacks, nil
}

// Create inserts a feedback row owned by the student. The class must
// still be in the student's eligible set and the content non-blank.
func (s *FeedbackService) Create(ctx context.Context, student models.StudentPrincipal, req FeedbackRequest) (*models.Feedback, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireEligible(ctx, student, req.ClassID, ""); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		StudentID:   student.ID,
		ClassID:     req.ClassID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.feedbacks.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
	}
	return feedback, nil
}

// GetOwned loads a feedback row, treating a missing row and a row owned
// by someone else identically.
func (s *FeedbackService) GetOwned(ctx context.Context, student models.StudentPrincipal, id string) (*models.Feedback, error) {
	feedback, err := s.feedbacks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}
	if feedback.StudentID != student.ID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "")
	}
	return feedback, nil
}

// Update overwrites class, content and anonymity of an owned row. The new
// class must be eligible or stay the row's current class.
func (s *FeedbackService) Update(ctx context.Context, student models.StudentPrincipal, id string, req FeedbackRequest) error {
	if err := s.validateRequest(req); err != nil {
		return err
	}

	feedback, err := s.GetOwned(ctx, student, id)
	if err != nil {
		return err
	}
	if err := s.requireEligible(ctx, student, req.ClassID, feedback.ClassID); err != nil {
		return err
	}

	feedback.ClassID = req.ClassID
	feedback.Content = req.Content
	feedback.IsAnonymous = req.IsAnonymous
	if err := s.feedbacks.Update(ctx, feedback); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update feedback")
	}
	return nil
}

// Delete removes an owned feedback row.
func (s *FeedbackService) Delete(ctx context.Context, student models.StudentPrincipal, id string) error {
	if _, err := s.GetOwned(ctx, student, id); err != nil {
		return err
	}
	if err := s.feedbacks.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete feedback")
	}
	return nil
}

func (s *FeedbackService) validateRequest(req FeedbackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "class and content are required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "content must not be blank")
	}
	return nil
}

// requireEligible checks classID against the student's eligible set,
// additionally allowing currentClassID when editing an existing row.
func (s *FeedbackService) requireEligible(ctx context.Context, student models.StudentPrincipal, classID, currentClassID string) error {
	if currentClassID != "" && classID == currentClassID {
		return nil
	}
	eligible, err := s.EligibleClasses(ctx, student)
	if err != nil {
		return err
	}
	for _, class := range eligible {
		if class.ID == classID {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "class is not available for feedback")
}
