package repository

import (
	"context"

	"kindness-wall/internal/domain"
)

// NoteRepository 定义了留言数据的存储和检索操作。
// 列表查询统一按创建时间倒序 (最新的在前)。
type NoteRepository interface {
	// Create 插入一条新留言，created_at 由存储层填充。
	Create(ctx context.Context, note *domain.Note) error

	// FindByID 根据留言 ID 查找。不存在时返回 ErrNoteNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Note, error)

	// List 返回全部留言并关联作者用户名，按 created_at 倒序。
	List(ctx context.Context) ([]domain.NoteWithAuthor, error)

	// ListByMood 同 List，但只返回指定心情分类的留言。
	// mood 参数应已归一化为小写。
	ListByMood(ctx context.Context, mood string) ([]domain.NoteWithAuthor, error)

	// UpdateContent 只更新 text 和 mood 两个可变字段。
	// 不存在时返回 ErrNoteNotFound。
	UpdateContent(ctx context.Context, id uint, text, mood string) error

	// Delete 删除指定留言。不存在时返回 ErrNoteNotFound。
	Delete(ctx context.Context, id uint) error
}
