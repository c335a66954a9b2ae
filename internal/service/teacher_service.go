package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
)

type matchTeacherRepository interface {
	ListUnlinked(ctx context.Context) ([]models.Teacher, error)
}

type matchUserRepository interface {
	SetTeacherID(ctx context.Context, userID, teacherID string) error
}

// TeacherService handles the one-time matching of a teacher account to
// its roster identity.
type TeacherService struct {
	teachers matchTeacherRepository
	users    matchUserRepository
	logger   *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(teachers matchTeacherRepository, users matchUserRepository, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{teachers: teachers, users: users, logger: logger}
}

// UnlinkedTeachers lists roster teachers not yet claimed by any account.
func (s *TeacherService) UnlinkedTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.teachers.ListUnlinked(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unlinked teachers")
	}
	return teachers, nil
}

// Match links the principal's account to the chosen roster teacher. The
// submitted ID must come from the unlinked set: an already-claimed or
// unknown teacher is rejected without mutating anything. The link is set
// once; an already-matched principal cannot rebind.
func (s *TeacherService) Match(ctx context.Context, principal models.TeacherPrincipal, teacherID string) error {
	if principal.Matched() {
		return appErrors.Clone(appErrors.ErrAlreadyMatched, "")
	}

	unlinked, err := s.UnlinkedTeachers(ctx)
	if err != nil {
		return err
	}
	available := false
	for _, teacher := range unlinked {
		if teacher.ID == teacherID {
			available = true
			break
		}
	}
	if !available {
		return appErrors.Clone(appErrors.ErrValidation, "teacher is not available for matching")
	}

	if err := s.users.SetTeacherID(ctx, principal.ID, teacherID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link teacher")
	}

	s.logger.Info("teacher matched",
		zap.String("user_id", principal.ID),
		zap.String("teacher_id", teacherID))

	return nil
}
