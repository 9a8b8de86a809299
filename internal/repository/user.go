package repository

import (
	"context"

	"kindness-wall/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByEmail 根据邮箱查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save 保存用户信息。
	// 唯一约束冲突时返回 ErrDuplicateEmail / ErrDuplicateUsername，
	// 以便调用方区分到底是哪个字段冲突。
	Save(ctx context.Context, user *domain.User) error
}
