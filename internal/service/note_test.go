package service_test

import (
	"context"
	"errors"
	"testing"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"
	"kindness-wall/internal/repository/mocks"
	"kindness-wall/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// imageRemoverMock 是 service.ImageRemover 的 mock 实现
type imageRemoverMock struct {
	mock.Mock
}

func (m *imageRemoverMock) Remove(imageRef string) error {
	args := m.Called(imageRef)
	return args.Error(0)
}

func newNoteService(t *testing.T) (*service.NoteService, *mocks.NoteRepository, *imageRemoverMock) {
	t.Helper()
	mockNoteRepo := new(mocks.NoteRepository)
	mockRemover := new(imageRemoverMock)
	return service.NewNoteService(mockNoteRepo, mockRemover), mockNoteRepo, mockRemover
}

// --- 测试 Create 方法 ---

func TestNoteService_Create_NormalizesMoodAndTrimsText(t *testing.T) {
	// Arrange
	noteService, mockNoteRepo, _ := newNoteService(t)
	ctx := context.Background()

	// 设置 Mock 预期: 存入的应是归一化后的字段
	mockNoteRepo.On("Create", ctx, mock.MatchedBy(func(note *domain.Note) bool {
		assert.Equal(t, "be kind", note.Text, "text 应去除首尾空白")
		assert.Equal(t, "hope", note.Mood, "mood 应归一化为小写")
		assert.Equal(t, uint(7), note.AuthorID)
		return true
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Note).ID = 42
		}).
		Return(nil).
		Once()

	// Act: mood 大小写混合，text 带空白
	note, err := noteService.Create(ctx, 7, "  be kind  ", "Hope", "")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, uint(42), note.ID)

	mockNoteRepo.AssertExpectations(t)
}

func TestNoteService_Create_RejectsEmptyText(t *testing.T) {
	noteService, mockNoteRepo, _ := newNoteService(t)

	_, err := noteService.Create(context.Background(), 7, "   ", "joy", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrEmptyText))
	// 校验失败不应触碰存储层
	mockNoteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNoteService_Create_RejectsInvalidMood(t *testing.T) {
	noteService, mockNoteRepo, _ := newNoteService(t)

	_, err := noteService.Create(context.Background(), 7, "be kind", "rage", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidMood))
	mockNoteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- 测试 ListByMood 方法 ---

func TestNoteService_ListByMood_CaseInsensitive(t *testing.T) {
	// Arrange
	noteService, mockNoteRepo, _ := newNoteService(t)
	ctx := context.Background()
	rows := []domain.NoteWithAuthor{
		{Note: domain.Note{ID: 2, Mood: "joy"}, Username: "alice"},
		{Note: domain.Note{ID: 1, Mood: "joy"}, Username: "bob"},
	}

	// 大小写不同的查询都应落到同一个小写参数上
	mockNoteRepo.On("ListByMood", ctx, "joy").Return(rows, nil).Twice()

	// Act
	lower, err1 := noteService.ListByMood(ctx, "joy")
	upper, err2 := noteService.ListByMood(ctx, "JOY")

	// Assert: 两次查询结果一致
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, lower, upper)

	mockNoteRepo.AssertExpectations(t)
}

func TestNoteService_ListByMood_RejectsUnknownMood(t *testing.T) {
	noteService, mockNoteRepo, _ := newNoteService(t)

	_, err := noteService.ListByMood(context.Background(), "anger")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidMood))
	mockNoteRepo.AssertNotCalled(t, "ListByMood", mock.Anything, mock.Anything)
}

// --- 测试 Update 方法 ---

func TestNoteService_Update_Success(t *testing.T) {
	// Arrange
	noteService, mockNoteRepo, _ := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 10, AuthorID: 7, Text: "old", Mood: "joy"}

	mockNoteRepo.On("FindByID", ctx, uint(10)).Return(existing, nil).Once()
	mockNoteRepo.On("UpdateContent", ctx, uint(10), "new text", "gratitude").Return(nil).Once()

	// Act
	updated, err := noteService.Update(ctx, 10, 7, "new text", "Gratitude")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new text", updated.Text)
	assert.Equal(t, "gratitude", updated.Mood)
	assert.Equal(t, uint(7), updated.AuthorID, "作者不可因更新而变化")

	mockNoteRepo.AssertExpectations(t)
}

func TestNoteService_Update_ForbiddenForNonAuthor(t *testing.T) {
	// Arrange: 留言属于用户 7，请求者是用户 8
	noteService, mockNoteRepo, _ := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 10, AuthorID: 7, Text: "original", Mood: "joy"}

	mockNoteRepo.On("FindByID", ctx, uint(10)).Return(existing, nil).Once()

	// Act
	_, err := noteService.Update(ctx, 10, 8, "hijacked", "hope")

	// Assert: Forbidden，且没有任何写操作发生
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrForbidden))
	mockNoteRepo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	mockNoteRepo.AssertExpectations(t)
}

func TestNoteService_Update_NotFound(t *testing.T) {
	noteService, mockNoteRepo, _ := newNoteService(t)
	ctx := context.Background()

	mockNoteRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrNoteNotFound).Once()

	_, err := noteService.Update(ctx, 99, 7, "text", "joy")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoteNotFound))
	mockNoteRepo.AssertExpectations(t)
}

// --- 测试 Delete 方法 ---

func TestNoteService_Delete_WithImage_RemovesFile(t *testing.T) {
	// Arrange
	noteService, mockNoteRepo, mockRemover := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 10, AuthorID: 7, Text: "bye", Mood: "joy", Image: "/images/cat_123.png"}

	mockNoteRepo.On("FindByID", ctx, uint(10)).Return(existing, nil).Once()
	mockNoteRepo.On("Delete", ctx, uint(10)).Return(nil).Once()
	// 记录删除成功后必须尝试清理附图
	mockRemover.On("Remove", "/images/cat_123.png").Return(nil).Once()

	// Act
	err := noteService.Delete(ctx, 10, 7)

	// Assert
	assert.NoError(t, err)
	mockNoteRepo.AssertExpectations(t)
	mockRemover.AssertExpectations(t)
}

func TestNoteService_Delete_WithoutImage_NeverTouchesFiles(t *testing.T) {
	noteService, mockNoteRepo, mockRemover := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 11, AuthorID: 7, Text: "plain", Mood: "hope"}

	mockNoteRepo.On("FindByID", ctx, uint(11)).Return(existing, nil).Once()
	mockNoteRepo.On("Delete", ctx, uint(11)).Return(nil).Once()

	err := noteService.Delete(ctx, 11, 7)

	assert.NoError(t, err)
	// 没有附图时绝不触发文件删除
	mockRemover.AssertNotCalled(t, "Remove", mock.Anything)
}

func TestNoteService_Delete_FileRemovalFailureDoesNotFailDelete(t *testing.T) {
	// Arrange: 文件删除失败只记日志，记录删除已经生效
	noteService, mockNoteRepo, mockRemover := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 12, AuthorID: 7, Text: "bye", Mood: "joy", Image: "/images/dog_9.png"}

	mockNoteRepo.On("FindByID", ctx, uint(12)).Return(existing, nil).Once()
	mockNoteRepo.On("Delete", ctx, uint(12)).Return(nil).Once()
	mockRemover.On("Remove", "/images/dog_9.png").Return(errors.New("disk on fire")).Once()

	// Act
	err := noteService.Delete(ctx, 12, 7)

	// Assert: 调用方看到的仍是成功
	assert.NoError(t, err)
	mockRemover.AssertExpectations(t)
}

func TestNoteService_Delete_ForbiddenForNonAuthor(t *testing.T) {
	noteService, mockNoteRepo, mockRemover := newNoteService(t)
	ctx := context.Background()
	existing := &domain.Note{ID: 10, AuthorID: 7, Image: "/images/cat_123.png"}

	mockNoteRepo.On("FindByID", ctx, uint(10)).Return(existing, nil).Once()

	err := noteService.Delete(ctx, 10, 8)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrForbidden))
	// 所有权检查失败后记录和文件都必须原样保留
	mockNoteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRemover.AssertNotCalled(t, "Remove", mock.Anything)
}
