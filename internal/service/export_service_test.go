package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
	"github.com/ykps/feedback-portal/pkg/storage"
)

type exportRowsStub struct {
	rows []models.ExportRow
	err  error
}

func (s *exportRowsStub) ExportRows(ctx context.Context, classIDs []string) ([]models.ExportRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func newExportService(t *testing.T, rows *exportRowsStub) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(rows, store, nil, nil, nil)
}

func sampleExportRows() []models.ExportRow {
	return []models.ExportRow{
		{ClassID: "c1", ClassName: "Physics", StudentName: "Alice", Content: "Great pacing", IsAnonymous: false},
		{ClassID: "c1", ClassName: "Physics", StudentName: "Bob", Content: "Too fast", IsAnonymous: true},
		{ClassID: "c2", ClassName: "History", StudentName: "Alice", Content: "More sources please", IsAnonymous: false},
	}
}

func TestGenerateCSV(t *testing.T) {
	svc := newExportService(t, &exportRowsStub{rows: sampleExportRows()})

	result, err := svc.Generate(context.Background(), []string{"c1", "c2"}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowCount)
	assert.True(t, strings.HasPrefix(result.Filename, "feedbacks_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	data, err := os.ReadFile(result.AbsolutePath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Class,Student,Content")
	assert.Contains(t, content, "Physics,Alice,Great pacing")
	assert.Contains(t, content, "Physics,Anonymous,Too fast")
	assert.NotContains(t, content, "Bob")
}

func TestGenerateExcel(t *testing.T) {
	svc := newExportService(t, &exportRowsStub{rows: sampleExportRows()})

	result, err := svc.Generate(context.Background(), []string{"c1", "c2"}, FormatExcel)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Filename, ".xlsx"))

	file, err := os.Open(result.AbsolutePath)
	require.NoError(t, err)
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Feedbacks")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Class", "Student", "Content"}, rows[0])
	assert.Equal(t, "Anonymous", rows[2][1])
}

func TestGenerateNoClasses(t *testing.T) {
	svc := newExportService(t, &exportRowsStub{})

	_, err := svc.Generate(context.Background(), nil, FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestGenerateUnknownFormat(t *testing.T) {
	svc := newExportService(t, &exportRowsStub{})

	_, err := svc.Generate(context.Background(), []string{"c1"}, ExportFormat("pdf"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestGenerateRepositoryFailure(t *testing.T) {
	svc := newExportService(t, &exportRowsStub{err: errors.New("db down")})

	_, err := svc.Generate(context.Background(), []string{"c1"}, FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
}

func TestParseExportFormat(t *testing.T) {
	for raw, want := range map[string]ExportFormat{"excel": FormatExcel, "csv": FormatCSV} {
		format, ok := ParseExportFormat(raw)
		require.True(t, ok)
		assert.Equal(t, want, format)
	}
	for _, raw := range []string{"", "pdf", "xlsx", "Excel", "CSV"} {
		_, ok := ParseExportFormat(raw)
		assert.False(t, ok, "format %q should be rejected", raw)
	}
}
