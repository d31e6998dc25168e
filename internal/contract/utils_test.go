package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	assert.Equal(t, schema.ExcellentValue, GetColorLabel(90))
	assert.Equal(t, schema.GoodValue, GetColorLabel(80))
	assert.Equal(t, schema.FairValue, GetColorLabel(70))
	assert.Equal(t, schema.PoorValue, GetColorLabel(10))

	ikk := 90.0
	assert.Equal(t, schema.ExcellentValue, GetResultColorLabel(&ikk))
	assert.Equal(t, schema.UndefinedValue, GetResultColorLabel(nil))
}

func TestResolveOutputFile(t *testing.T) {
	assert.Equal(t, "out.csv", ResolveOutputFile("out.csv", schema.CSVOut))
	assert.Equal(t, "analisis_program.csv", ResolveOutputFile(AutoOutputFile, schema.CSVOut))
	assert.Equal(t, "analisis_program.xlsx", ResolveOutputFile(AutoOutputFile, schema.XLSXOut))
	assert.Equal(t, "", ResolveOutputFile(AutoOutputFile, schema.TextOut))
	assert.Equal(t, "", ResolveOutputFile("", schema.JSONOut))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.FileExists(t, path)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		maxWidth int
		expected string
	}{
		{"Pendahuluan", 20, "Pendahuluan"},
		{"Pemeriksaan Dewasa", 10, "Pemerik..."},
		{"Bab", 2, "Bab"},
		{"Manajemen Farmasi", 4, "M..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TruncateName(tt.name, tt.maxWidth))
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}
