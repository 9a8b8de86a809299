package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kindness-wall/internal/domain"
)

// NoteRepository 是 repository.NoteRepository 的 mock 实现
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepository) FindByID(ctx context.Context, id uint) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if note, ok := args.Get(0).(*domain.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) List(ctx context.Context) ([]domain.NoteWithAuthor, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]domain.NoteWithAuthor); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) ListByMood(ctx context.Context, mood string) ([]domain.NoteWithAuthor, error) {
	args := m.Called(ctx, mood)
	if rows, ok := args.Get(0).([]domain.NoteWithAuthor); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) UpdateContent(ctx context.Context, id uint, text, mood string) error {
	args := m.Called(ctx, id, text, mood)
	return args.Error(0)
}

func (m *NoteRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
