package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		ikk      float64
		expected string
	}{
		{88, ExcellentValue},
		{85, ExcellentValue},
		{84, GoodValue},
		{75, GoodValue},
		{74, FairValue},
		{65, FairValue},
		{10, PoorValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetPlainLabel(tt.ikk), "ikk=%v", tt.ikk)
	}
}

func TestGetResultLabel(t *testing.T) {
	ikk := 70.0
	assert.Equal(t, FairValue, GetResultLabel(&ikk))
	assert.Equal(t, UndefinedValue, GetResultLabel(nil))
}

func TestEnrichChapters(t *testing.T) {
	high, low := 90.0, 70.0
	results := []ChapterResult{
		{ChapterRecord: ChapterRecord{Name: "A"}, IKK: &high},
		{ChapterRecord: ChapterRecord{Name: "B"}, IKK: &low, Issues: []error{&DomainError{Field: FieldTargetWeeks, Reason: "must be > 0"}}},
	}
	enriched := EnrichChapters(results)
	assert.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, ExcellentValue, enriched[0].Label)
	assert.Empty(t, enriched[0].Issues)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Len(t, enriched[1].Issues, 1)
}
