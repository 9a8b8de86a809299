package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImageStore 是 NoteHandler 对上传存储的最小依赖
type ImageStore interface {
	Store(file *multipart.FileHeader) (string, error)
	Remove(imageRef string) error
}

// NoteHandler 封装了留言 CRUD 的 HTTP 处理逻辑
type NoteHandler struct {
	noteService *service.NoteService
	images      ImageStore
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(noteService *service.NoteService, images ImageStore) *NoteHandler {
	return &NoteHandler{noteService: noteService, images: images}
}

// ListNotes 返回全部留言 (含作者用户名)，最新的在前。只读路由，无需认证。
func (h *NoteHandler) ListNotes(c *gin.Context) {
	rows, err := h.noteService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rows)
}

// ListNotesByCategory 返回指定心情分类的留言。分类比较不区分大小写。
func (h *NoteHandler) ListNotesByCategory(c *gin.Context) {
	mood := c.Param("mood")
	rows, err := h.noteService.ListByMood(c.Request.Context(), mood)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rows)
}

// CreateNoteResponse 定义创建留言成功的响应结构体
type CreateNoteResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// CreateNote 处理发布留言的请求 (multipart 表单: text, mood, 可选 image)。
// 字段校验先于图片落盘，图片落盘先于记录插入。
func (h *NoteHandler) CreateNote(c *gin.Context) {
	requesterID, ok := requesterFromContext(c)
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", requesterID)

	// 1. 边界校验：先拒绝无效字段，再碰文件系统
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		logCtx.Warn("Handler.CreateNote: Empty text")
		ErrorResponse(c, http.StatusBadRequest, service.ErrEmptyText.Error())
		return
	}
	mood := domain.NormalizeMood(c.PostForm("mood"))
	if !domain.IsValidMood(mood) {
		logCtx.WithField("mood", mood).Warn("Handler.CreateNote: Invalid mood")
		ErrorResponse(c, http.StatusBadRequest, service.ErrInvalidMood.Error())
		return
	}

	// 2. 可选图片：存在才落盘。缺失文件是正常情况，其余表单解析错误按无效输入处理，
	// 不能悄悄降级成一条没有图片的留言
	var imageRef string
	if file, err := c.FormFile("image"); err == nil {
		imageRef, err = h.images.Store(file)
		if err != nil {
			logCtx.WithError(err).Warn("Handler.CreateNote: Image store failed")
			HandleServiceError(c, err)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		logCtx.WithError(err).Warn("Handler.CreateNote: Bad image part in form")
		ErrorResponse(c, http.StatusBadRequest, "invalid image upload")
		return
	}

	// 3. 插入记录。失败时回收刚落盘的图片，不留孤儿文件
	note, err := h.noteService.Create(c.Request.Context(), requesterID, text, mood, imageRef)
	if err != nil {
		if imageRef != "" {
			if cleanupErr := h.images.Remove(imageRef); cleanupErr != nil {
				logCtx.WithError(cleanupErr).Warn("Handler.CreateNote: Failed to clean up image after create failure")
			}
		}
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("note_id", note.ID).Info("Handler.CreateNote: Note created successfully")
	c.JSON(http.StatusCreated, CreateNoteResponse{
		Message: "Note created successfully",
		ID:      note.ID,
	})
}

// UpdateNoteRequest 定义修改留言请求的结构体。只有 text 和 mood 可改。
type UpdateNoteRequest struct {
	Text string `json:"text" binding:"required"`
	Mood string `json:"mood" binding:"required"`
}

// UpdateNote 处理修改留言的请求，仅作者本人可操作
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	requesterID, ok := requesterFromContext(c)
	if !ok {
		return
	}
	id, ok := noteIDFromPath(c)
	if !ok {
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": requesterID, "note_id": id})

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logCtx.WithError(err).Warn("Handler.UpdateNote: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: text and mood required")
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, requesterID, req.Text, req.Mood)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.UpdateNote: Update failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.Info("Handler.UpdateNote: Note updated successfully")
	c.JSON(http.StatusOK, gin.H{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// DeleteNote 处理删除留言的请求，仅作者本人可操作。
// 附图清理由 Service 在记录删除成功后完成。
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	requesterID, ok := requesterFromContext(c)
	if !ok {
		return
	}
	id, ok := noteIDFromPath(c)
	if !ok {
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": requesterID, "note_id": id})

	if err := h.noteService.Delete(c.Request.Context(), id, requesterID); err != nil {
		logCtx.WithError(err).Warn("Handler.DeleteNote: Delete failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.Info("Handler.DeleteNote: Note deleted successfully")
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// requesterFromContext 从 Gin 上下文取出 Auth 中间件写入的用户 ID。
// 取不到说明中间件缺失或失败，直接短路响应。
func requesterFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		logrus.Warn("Handler: User ID not found in context, middleware missing or failed?")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: User ID in context is not uint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error processing user ID"})
		return 0, false
	}
	return userID, true
}

// noteIDFromPath 解析路径参数中的留言 ID
func noteIDFromPath(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		logrus.WithField("id", idStr).Warn("Handler: Invalid note id in path")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note id"})
		return 0, false
	}
	return uint(id), true
}
