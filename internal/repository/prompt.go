package repository

import (
	"context"

	"kindness-wall/internal/domain"
)

// PromptStateRepository 定义了共享的"当前精选语录"单元的访问操作。
// 该单元只有轮换任务一个写入方，请求处理方只读；
// 读取返回的是解码后的快照副本，绝不共享可变引用。
type PromptStateRepository interface {
	// SetCurrent 整体替换当前精选语录。
	SetCurrent(ctx context.Context, prompt *domain.FeaturedPrompt) error

	// GetCurrent 返回当前精选语录的快照。
	// 进程启动后尚未轮换过时返回 ErrPromptNotSet。
	GetCurrent(ctx context.Context) (*domain.FeaturedPrompt, error)
}
