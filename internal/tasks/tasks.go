package tasks

import (
	"encoding/json"
	"time"
)

// 定义任务类型常量
const (
	TypePromptRotate = "prompt:rotate" // 精选语录轮换任务类型
)

// PromptRotatePayload 定义了轮换任务的数据结构。
// 轮换本身不需要输入，只带上入队时间方便排查调度延迟。
type PromptRotatePayload struct {
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewPromptRotateTask 创建一个新的精选语录轮换任务 payload
func NewPromptRotateTask() ([]byte, error) {
	payload := PromptRotatePayload{
		EnqueuedAt: time.Now(),
	}
	// Asynq 的 NewTask 直接接受 []byte payload
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return payloadBytes, nil
}
