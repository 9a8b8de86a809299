package http

import (
	"net/http"

	"kindness-wall/internal/service"

	"github.com/gin-gonic/gin"
)

// PromptHandler 封装了精选语录的只读 HTTP 接口。任何访客无需认证即可读取。
type PromptHandler struct {
	promptService *service.PromptService
}

// NewPromptHandler 创建 PromptHandler 实例
func NewPromptHandler(promptService *service.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

// CurrentPrompt 返回当前精选语录的快照。
// 进程启动后第一次轮换之前返回 404 "not available"。
func (h *PromptHandler) CurrentPrompt(c *gin.Context) {
	prompt, err := h.promptService.Current(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, prompt)
}

// RandomLiftup 直接从候选集随机返回一条语录
func (h *PromptHandler) RandomLiftup(c *gin.Context) {
	liftup, err := h.promptService.RandomLiftup(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, liftup)
}
