package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykps/feedback-portal/internal/models"
	"github.com/ykps/feedback-portal/internal/service"
	"github.com/ykps/feedback-portal/pkg/storage"
)

type exportRowsStub struct {
	rows []models.ExportRow
}

func (s *exportRowsStub) ExportRows(ctx context.Context, classIDs []string) ([]models.ExportRow, error) {
	return s.rows, nil
}

type ownedClassStub struct {
	classes []models.Class
}

func (s *ownedClassStub) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	return s.classes, nil
}

func newExportHandler(t *testing.T, rows *exportRowsStub, classes *ownedClassStub) *ExportHandler {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	exports := service.NewExportService(rows, store, nil, nil, nil)
	dashboard := service.NewDashboardService(classes, &feedbackRepoStub{}, nil)
	return NewExportHandler(exports, dashboard)
}

func TestExportDownloadsFile(t *testing.T) {
	rows := &exportRowsStub{rows: []models.ExportRow{
		{ClassID: "c1", ClassName: "Physics", StudentName: "Bob", Content: "Too fast", IsAnonymous: true},
	}}
	handler := newExportHandler(t, rows, &ownedClassStub{})

	c, rec := newTestContext(t, matchedTeacher(), url.Values{
		"classes":       {"c1"},
		"export-format": {"csv"},
	})
	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "feedbacks_")
	body := rec.Body.String()
	assert.Contains(t, body, "Physics,Anonymous,Too fast")
	assert.NotContains(t, body, "Bob")
}

func TestExportNoClassesSelected(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{})

	c, rec := newTestContext(t, matchedTeacher(), url.Values{"export-format": {"csv"}})
	handler.Export(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, exportPath, rec.Header().Get("Location"))
}

func TestExportUnknownFormat(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{})

	c, rec := newTestContext(t, matchedTeacher(), url.Values{
		"classes":       {"c1"},
		"export-format": {"pdf"},
	})
	handler.Export(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, exportPath, rec.Header().Get("Location"))
}

func TestExportRejectsStudents(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{})

	c, rec := newTestContext(t, testStudent, url.Values{
		"classes":       {"c1"},
		"export-format": {"csv"},
	})
	handler.Export(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, dashboardPath, rec.Header().Get("Location"))
}

func TestExportPageNoClassesRedirects(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{})

	c, rec := newTestContext(t, matchedTeacher(), nil)
	handler.ExportPage(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, dashboardPath, rec.Header().Get("Location"))
}

func TestExportPageUnmatchedTeacher(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{})

	c, rec := newTestContext(t, testTeacher, nil)
	handler.ExportPage(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, matchTeacherPath, rec.Header().Get("Location"))
}

func TestExportPageRendersForm(t *testing.T) {
	handler := newExportHandler(t, &exportRowsStub{}, &ownedClassStub{classes: []models.Class{{ID: "c1", Name: "Physics"}}})

	c, rec := newTestContext(t, matchedTeacher(), nil, "export-feedback.html")
	handler.ExportPage(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
