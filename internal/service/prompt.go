package service

import (
	"context"
	"errors"
	"time"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"

	"github.com/sirupsen/logrus"
)

// PromptService 负责精选语录的轮换和读取。
// 写入方只有后台轮换任务一个；请求处理方通过 Current 读取快照。
type PromptService struct {
	liftupRepo repository.LiftupRepository
	stateRepo  repository.PromptStateRepository
}

// NewPromptService 创建 PromptService 实例。
func NewPromptService(liftupRepo repository.LiftupRepository, stateRepo repository.PromptStateRepository) *PromptService {
	if liftupRepo == nil {
		panic("LiftupRepository cannot be nil for PromptService")
	}
	if stateRepo == nil {
		panic("PromptStateRepository cannot be nil for PromptService")
	}
	return &PromptService{
		liftupRepo: liftupRepo,
		stateRepo:  stateRepo,
	}
}

// Rotate 执行一次轮换：随机选一条语录，整体替换当前精选。
// 候选集为空或选取失败时保持当前值不变，只记日志，不把错误暴露给客户端。
func (s *PromptService) Rotate(ctx context.Context) error {
	liftup, err := s.liftupRepo.Random(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrLiftupNotFound) {
			logrus.Warn("Prompt rotation skipped: liftup set is empty, keeping current prompt")
			return nil
		}
		logrus.WithError(err).Error("Prompt rotation failed to pick a liftup, keeping current prompt")
		return err
	}

	prompt := &domain.FeaturedPrompt{
		ID:        liftup.ID,
		Text:      liftup.Text,
		Emoji:     liftup.Emoji,
		RotatedAt: time.Now(),
	}
	if err := s.stateRepo.SetCurrent(ctx, prompt); err != nil {
		logrus.WithError(err).Error("Prompt rotation failed to publish new prompt")
		return err
	}

	logrus.WithFields(logrus.Fields{"liftup_id": liftup.ID}).Debug("Featured prompt rotated")
	return nil
}

// Current 返回当前精选语录的快照。
// 进程启动后第一次轮换之前返回 ErrPromptNotReady。
func (s *PromptService) Current(ctx context.Context) (*domain.FeaturedPrompt, error) {
	prompt, err := s.stateRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPromptNotSet) {
			return nil, ErrPromptNotReady
		}
		logrus.WithError(err).Error("Failed to read current prompt")
		return nil, ErrInternalServer
	}
	return prompt, nil
}

// RandomLiftup 直接从候选集随机返回一条语录 (GET /api/liftup/random 变体)。
func (s *PromptService) RandomLiftup(ctx context.Context) (*domain.Liftup, error) {
	liftup, err := s.liftupRepo.Random(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrLiftupNotFound) {
			return nil, ErrPromptNotReady
		}
		logrus.WithError(err).Error("Failed to pick random liftup")
		return nil, ErrInternalServer
	}
	return liftup, nil
}
