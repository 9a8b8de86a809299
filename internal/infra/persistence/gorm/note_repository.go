package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"
)

// GormNoteRepository 是 NoteRepository 接口的 GORM 实现
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository 创建 GormNoteRepository 实例
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	if db == nil {
		panic("database connection cannot be nil for GormNoteRepository")
	}
	return &GormNoteRepository{db: db}
}

// Create 插入一条新留言，created_at / updated_at 由 GORM 在插入时填充
func (r *GormNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("gorm: create note (author: %d): %w", note.AuthorID, err)
	}
	return nil
}

// FindByID 实现根据留言 ID 查找
func (r *GormNoteRepository) FindByID(ctx context.Context, id uint) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).First(&note, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoteNotFound
		}
		return nil, fmt.Errorf("gorm: find note by id %d: %w", id, err)
	}
	return &note, nil
}

// List 返回全部留言并关联作者用户名，最新的在前。
// created_at 相同时用 id 倒序兜底，保证排序稳定。
func (r *GormNoteRepository) List(ctx context.Context) ([]domain.NoteWithAuthor, error) {
	var rows []domain.NoteWithAuthor
	err := r.db.WithContext(ctx).
		Table("notes").
		Select("notes.*, users.username").
		Joins("JOIN users ON users.id = notes.author_id").
		Order("notes.created_at DESC, notes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list notes: %w", err)
	}
	return rows, nil
}

// ListByMood 同 List，但按心情分类过滤。
// mood 在服务层已归一化为小写，存储时也是小写，直接等值比较即可。
func (r *GormNoteRepository) ListByMood(ctx context.Context, mood string) ([]domain.NoteWithAuthor, error) {
	var rows []domain.NoteWithAuthor
	err := r.db.WithContext(ctx).
		Table("notes").
		Select("notes.*, users.username").
		Joins("JOIN users ON users.id = notes.author_id").
		Where("notes.mood = ?", mood).
		Order("notes.created_at DESC, notes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list notes by mood '%s': %w", mood, err)
	}
	return rows, nil
}

// UpdateContent 只更新 text 和 mood；author_id 等其余字段不可经此修改
func (r *GormNoteRepository) UpdateContent(ctx context.Context, id uint, text, mood string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "mood": mood})

	if result.Error != nil {
		return fmt.Errorf("gorm: update note %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// 没有行受影响说明记录不存在 (text/mood 未变化时 GORM 仍会更新 updated_at)
		return repository.ErrNoteNotFound
	}
	return nil
}

// Delete 删除指定留言
func (r *GormNoteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Note{}, id)

	if result.Error != nil {
		return fmt.Errorf("gorm: delete note %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}
	return nil
}
