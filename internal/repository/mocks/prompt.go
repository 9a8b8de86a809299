package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kindness-wall/internal/domain"
)

// LiftupRepository 是 repository.LiftupRepository 的 mock 实现
type LiftupRepository struct {
	mock.Mock
}

func (m *LiftupRepository) Random(ctx context.Context) (*domain.Liftup, error) {
	args := m.Called(ctx)
	if liftup, ok := args.Get(0).(*domain.Liftup); ok {
		return liftup, args.Error(1)
	}
	return nil, args.Error(1)
}

// PromptStateRepository 是 repository.PromptStateRepository 的 mock 实现
type PromptStateRepository struct {
	mock.Mock
}

func (m *PromptStateRepository) SetCurrent(ctx context.Context, prompt *domain.FeaturedPrompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *PromptStateRepository) GetCurrent(ctx context.Context) (*domain.FeaturedPrompt, error) {
	args := m.Called(ctx)
	if prompt, ok := args.Get(0).(*domain.FeaturedPrompt); ok {
		return prompt, args.Error(1)
	}
	return nil, args.Error(1)
}
