package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Class", "Student", "Content"},
		Rows: []map[string]string{
			{"Class": "Biology", "Student": "Alice", "Content": "great labs"},
			{"Class": "Biology", "Student": "Anonymous", "Content": "too fast"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	expected := "Class,Student,Content\nBiology,Alice,great labs\nBiology,Anonymous,too fast\n"
	assert.Equal(t, expected, string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestExcelExporterRender(t *testing.T) {
	out, err := NewExcelExporter("Feedbacks").Render(sampleDataset())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Feedbacks")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Class", "Student", "Content"}, rows[0])
	assert.Equal(t, []string{"Biology", "Anonymous", "too fast"}, rows[2])
}
