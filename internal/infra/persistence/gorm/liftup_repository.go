package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"
)

// GormLiftupRepository 是 LiftupRepository 接口的 GORM 实现
type GormLiftupRepository struct {
	db *gorm.DB
}

// NewGormLiftupRepository 创建 GormLiftupRepository 实例
func NewGormLiftupRepository(db *gorm.DB) *GormLiftupRepository {
	if db == nil {
		panic("database connection cannot be nil for GormLiftupRepository")
	}
	return &GormLiftupRepository{db: db}
}

// Random 等概率返回一条语录。
// 候选集很小 (几十条预置语录)，让 MySQL 直接 ORDER BY RAND() 即可。
func (r *GormLiftupRepository) Random(ctx context.Context) (*domain.Liftup, error) {
	var liftup domain.Liftup
	err := r.db.WithContext(ctx).Order("RAND()").First(&liftup).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLiftupNotFound
		}
		return nil, fmt.Errorf("gorm: random liftup: %w", err)
	}
	return &liftup, nil
}
