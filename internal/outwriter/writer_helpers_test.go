package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		expected  string
	}{
		{2, 88.0, "88.00"},
		{1, 33.3333, "33.3"},
		{4, 0.987525, "0.9875"},
		{2, -47.24126803127043, "-47.24"},
	}
	for _, tt := range tests {
		fmtFloat, intFmt := createFormatters(tt.precision)
		assert.Equal(t, tt.expected, fmtFloat(tt.value))
		assert.Equal(t, "%d", intFmt)
	}
}

func TestFormatOptional(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	v := 25.0
	assert.Equal(t, "25.00", formatOptional(&v, fmtFloat, undefinedCell))
	assert.Equal(t, undefinedCell, formatOptional(nil, fmtFloat, undefinedCell))
	assert.Equal(t, "", formatOptional(nil, fmtFloat, ""))
}

func TestFormatExact(t *testing.T) {
	assert.Equal(t, "100", formatExact(100))
	assert.Equal(t, "0.125", formatExact(0.125))
	assert.Equal(t, "-2.5", formatExact(-2.5))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]float64{"ikk": 88}))
	assert.Equal(t, "{\n  \"ikk\": 88\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	assert.ErrorContains(t, err, "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"name", "note"}, func(w *csv.Writer) error {
		return w.Write([]string{"Penutup", "selesai, tepat waktu"})
	})
	require.NoError(t, err)
	assert.Equal(t, "name,note\nPenutup,\"selesai, tepat waktu\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"name"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("bab"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bab", string(content))

	err = writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote text")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "Wrote text")
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	sheets := []sheet{
		{name: "First", header: []string{"name", "value"}, rows: [][]any{{"a", 1.5}, {"b", nil}}},
		{name: "Second", header: []string{"only"}, rows: [][]any{{"x"}}},
	}
	require.NoError(t, writeXLSX(path, sheets, "Wrote XLSX"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"First", "Second"}, f.GetSheetList())
	rows, err := f.GetRows("First")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "value"}, rows[0])
	assert.Equal(t, []string{"a", "1.5"}, rows[1])
	assert.Equal(t, []string{"b"}, rows[2])

	assert.Error(t, writeXLSX("", sheets, "Wrote XLSX"))
}
