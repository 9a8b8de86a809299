package repository

import (
	"context"

	"kindness-wall/internal/domain"
)

// LiftupRepository 定义了预置鼓励语录的检索操作。
type LiftupRepository interface {
	// Random 等概率返回一条语录。候选集为空时返回 ErrLiftupNotFound。
	Random(ctx context.Context) (*domain.Liftup, error)
}
