package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
	"github.com/ykps/feedback-portal/pkg/export"
)

// AnonymousStudent replaces the student name on rows flagged anonymous.
const AnonymousStudent = "Anonymous"

// ExportFormat selects one of the two supported output encodings.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
)

// ParseExportFormat accepts exactly the two recognised format literals.
func ParseExportFormat(raw string) (ExportFormat, bool) {
	switch ExportFormat(raw) {
	case FormatExcel, FormatCSV:
		return ExportFormat(raw), true
	default:
		return "", false
	}
}

type exportFeedbackRepository interface {
	ExportRows(ctx context.Context, classIDs []string) ([]models.ExportRow, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult points at the generated file for the download response.
type ExportResult struct {
	Filename     string
	AbsolutePath string
	Format       ExportFormat
	RowCount     int
}

// ExportService snapshots feedback for chosen classes into a file.
type ExportService struct {
	feedbacks exportFeedbackRepository
	storage   exportStorage
	csv       datasetRenderer
	excel     datasetRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(feedbacks exportFeedbackRepository, storage exportStorage, csv, excel datasetRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if excel == nil {
		excel = export.NewExcelExporter("Feedbacks")
	}
	return &ExportService{feedbacks: feedbacks, storage: storage, csv: csv, excel: excel, logger: logger}
}

// Generate queries feedback for the requested classes, substitutes the
// anonymous placeholder, renders the requested format and stores the file.
func (s *ExportService) Generate(ctx context.Context, classIDs []string, format ExportFormat) (*ExportResult, error) {
	if len(classIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no classes selected")
	}
	if _, ok := ParseExportFormat(string(format)); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised export format")
	}

	rows, err := s.feedbacks.ExportRows(ctx, classIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query feedback")
	}

	dataset := buildDataset(rows)

	var payload []byte
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(dataset)
	case FormatExcel:
		payload, err = s.excel.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := buildFilename(format)
	if _, err := s.storage.Save(filename, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	s.logger.Info("feedback export generated",
		zap.Int("classes", len(classIDs)),
		zap.Int("rows", len(rows)),
		zap.String("format", string(format)))

	return &ExportResult{
		Filename:     filename,
		AbsolutePath: s.storage.Path(filename),
		Format:       format,
		RowCount:     len(rows),
	}, nil
}

func buildDataset(rows []models.ExportRow) export.Dataset {
	dataRows := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		student := row.StudentName
		if row.IsAnonymous {
			student = AnonymousStudent
		}
		dataRows = append(dataRows, map[string]string{
			"Class":   row.ClassName,
			"Student": student,
			"Content": row.Content,
		})
	}
	return export.Dataset{
		Headers: []string{"Class", "Student", "Content"},
		Rows:    dataRows,
	}
}

func buildFilename(format ExportFormat) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	ext := "csv"
	if format == FormatExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("feedbacks_%s.%s", timestamp, ext)
}
