package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"kindness-wall/internal/service"
)

// PromptRotateHandler 处理周期性的精选语录轮换任务
type PromptRotateHandler struct {
	promptService *service.PromptService
}

// NewPromptRotateHandler 创建 Handler 实例
func NewPromptRotateHandler(promptService *service.PromptService) *PromptRotateHandler {
	if promptService == nil {
		panic("PromptService cannot be nil for PromptRotateHandler")
	}
	return &PromptRotateHandler{promptService: promptService}
}

// ProcessTask 实现 asynq.Handler 接口。
// 轮换失败不让周期任务进入重试 —— 下一个 tick 很快就到，当前值保持不变即可。
func (h *PromptRotateHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())
	logCtx.Debug("Processing prompt rotation task...")

	// 使用带超时的 context，避免任务卡死
	rotateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := h.promptService.Rotate(rotateCtx); err != nil {
		logCtx.WithError(err).Error("Prompt rotation tick failed, current prompt left unchanged")
		return nil // 错误已记录，不触发 Asynq 重试
	}

	logCtx.Debug("Prompt rotation task completed")
	return nil
}
