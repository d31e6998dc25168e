package algo

import (
	"testing"

	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(results []schema.ChapterResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestRankChapters(t *testing.T) {
	results := ScoreChapters(schema.ReferenceChapters(), schema.V2WithDiscipline, nil)

	tests := []struct {
		name     string
		metric   schema.RankMetric
		limit    int
		expected []string
	}{
		{
			name:     "by eor",
			metric:   schema.RankByEOR,
			limit:    0,
			expected: []string{"Pendahuluan", "Penutup", "Manajemen Farmasi", "Pemeriksaan Dewasa", "Alur Pengobatan"},
		},
		{
			name:     "by dk with limit",
			metric:   schema.RankByDK,
			limit:    2,
			expected: []string{"Alur Pengobatan", "Manajemen Farmasi"},
		},
		{
			name:     "by ikk keeps ties stable",
			metric:   schema.RankByIKK,
			limit:    3,
			expected: []string{"Pendahuluan", "Penutup", "Pemeriksaan Dewasa"},
		},
		{
			name:     "by ke",
			metric:   schema.RankByKE,
			limit:    10,
			expected: []string{"Pendahuluan", "Penutup", "Manajemen Farmasi", "Pemeriksaan Dewasa", "Alur Pengobatan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankChapters(results, tt.metric, tt.limit)
			assert.Equal(t, tt.expected, names(ranked))
		})
	}

	assert.Equal(t, "Pendahuluan", results[0].Name)
	assert.Equal(t, "Pemeriksaan Dewasa", results[1].Name)
}

func TestRankChaptersUndefinedLast(t *testing.T) {
	records := schema.ReferenceChapters()
	records[0].ComplexityPct = 0
	results := ScoreChapters(records, schema.V2WithDiscipline, nil)

	ranked := RankChapters(results, schema.RankByEOR, 0)
	require.Len(t, ranked, 5)
	assert.Equal(t, "Pendahuluan", ranked[4].Name)
	assert.Nil(t, ranked[4].EOR)
}
