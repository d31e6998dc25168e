// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/mock"
)

// ChapterLoader reads chapter records from an external table.
// This allows configuration and command logic to be tested without real files.
type ChapterLoader interface {
	// LoadChapters parses the table at path into validated chapter records.
	LoadChapters(ctx context.Context, path string) ([]schema.ChapterRecord, error)
}

// MockChapterLoader is a testify mock of ChapterLoader.
type MockChapterLoader struct {
	mock.Mock
}

var _ ChapterLoader = &MockChapterLoader{} // Compile-time check

// LoadChapters implements the ChapterLoader interface.
func (m *MockChapterLoader) LoadChapters(ctx context.Context, path string) ([]schema.ChapterRecord, error) {
	ret := m.Called(ctx, path)
	records, _ := ret.Get(0).([]schema.ChapterRecord)
	return records, ret.Error(1)
}
