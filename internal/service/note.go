package service

import (
	"context"
	"errors"
	"strings"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"

	"github.com/sirupsen/logrus"
)

// ImageRemover 是 NoteService 对媒体清理的最小依赖。
// 实现方保证幂等：目标文件不存在不算错误。
type ImageRemover interface {
	Remove(imageRef string) error
}

// NoteService 负责留言生命周期的业务逻辑：
// 创建、列表、修改、删除，以及贯穿修改/删除的作者所有权检查。
type NoteService struct {
	noteRepo repository.NoteRepository
	images   ImageRemover
}

// NewNoteService 创建 NoteService 实例。
func NewNoteService(noteRepo repository.NoteRepository, images ImageRemover) *NoteService {
	if noteRepo == nil {
		panic("NoteRepository cannot be nil for NoteService")
	}
	if images == nil {
		panic("ImageRemover cannot be nil for NoteService")
	}
	return &NoteService{
		noteRepo: noteRepo,
		images:   images,
	}
}

// Create 创建一条新留言。
// text 去除首尾空白后不能为空；mood 归一化为小写并校验枚举。
// created_at 由存储层在插入时填充，调用方无法指定。
func (s *NoteService) Create(ctx context.Context, authorID uint, text, mood, imageRef string) (*domain.Note, error) {
	logCtx := logrus.WithField("author_id", authorID)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	mood = domain.NormalizeMood(mood)
	if !domain.IsValidMood(mood) {
		return nil, ErrInvalidMood
	}

	note := &domain.Note{
		AuthorID: authorID,
		Text:     text,
		Mood:     mood,
		Image:    imageRef,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logCtx.WithError(err).Error("Database error during note creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("note_id", note.ID).Info("Note created successfully")
	return note, nil
}

// Get 返回指定留言。
func (s *NoteService) Get(ctx context.Context, id uint) (*domain.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		logrus.WithError(err).WithField("note_id", id).Error("Database error finding note")
		return nil, ErrInternalServer
	}
	return note, nil
}

// List 返回全部留言 (含作者用户名)，最新的在前。
func (s *NoteService) List(ctx context.Context) ([]domain.NoteWithAuthor, error) {
	rows, err := s.noteRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Database error listing notes")
		return nil, ErrInternalServer
	}
	return rows, nil
}

// ListByMood 返回指定心情分类的留言。分类比较不区分大小写。
func (s *NoteService) ListByMood(ctx context.Context, mood string) ([]domain.NoteWithAuthor, error) {
	mood = domain.NormalizeMood(mood)
	if !domain.IsValidMood(mood) {
		return nil, ErrInvalidMood
	}

	rows, err := s.noteRepo.ListByMood(ctx, mood)
	if err != nil {
		logrus.WithError(err).WithField("mood", mood).Error("Database error listing notes by mood")
		return nil, ErrInternalServer
	}
	return rows, nil
}

// Update 修改留言的 text 和 mood，仅作者本人可操作。
// 所有权检查在任何写操作之前完成。
func (s *NoteService) Update(ctx context.Context, id, requesterID uint, text, mood string) (*domain.Note, error) {
	logCtx := logrus.WithFields(logrus.Fields{"note_id": id, "requester_id": requesterID})

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	mood = domain.NormalizeMood(mood)
	if !domain.IsValidMood(mood) {
		return nil, ErrInvalidMood
	}

	note, err := s.loadOwned(ctx, id, requesterID, logCtx)
	if err != nil {
		return nil, err
	}

	if err := s.noteRepo.UpdateContent(ctx, id, text, mood); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			// 加载和更新之间被并发删除了
			return nil, ErrNoteNotFound
		}
		logCtx.WithError(err).Error("Database error updating note")
		return nil, ErrInternalServer
	}

	note.Text = text
	note.Mood = mood
	logCtx.Info("Note updated successfully")
	return note, nil
}

// Delete 删除留言，仅作者本人可操作。
// 记录删除成功后清理附图：文件删除是尽力而为的，失败只记日志，
// 绝不回滚已完成的记录删除 —— 宁可留下孤儿文件，不留指向缺失文件的记录。
func (s *NoteService) Delete(ctx context.Context, id, requesterID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"note_id": id, "requester_id": requesterID})

	note, err := s.loadOwned(ctx, id, requesterID, logCtx)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		logCtx.WithError(err).Error("Database error deleting note")
		return ErrInternalServer
	}

	// 没有附图的留言不触发任何文件操作
	if note.Image != "" {
		if err := s.images.Remove(note.Image); err != nil {
			logCtx.WithError(err).WithField("image", note.Image).
				Warn("Note deleted but image cleanup failed, leaving orphaned file")
		}
	}

	logCtx.Info("Note deleted successfully")
	return nil
}

// loadOwned 加载留言并校验请求者是作者本人。
// update/delete 共用这一个入口，所有权检查不在各个路由里重复散落。
func (s *NoteService) loadOwned(ctx context.Context, id, requesterID uint, logCtx *logrus.Entry) (*domain.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		logCtx.WithError(err).Error("Database error loading note for ownership check")
		return nil, ErrInternalServer
	}
	if note.AuthorID != requesterID {
		logCtx.WithField("author_id", note.AuthorID).Warn("Ownership check failed")
		return nil, ErrForbidden
	}
	return note, nil
}
