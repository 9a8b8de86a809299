package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "kindness-wall/internal/handler/http"
	"kindness-wall/internal/repository"
	"kindness-wall/internal/repository/mocks"
	"kindness-wall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kindness-wall/internal/domain"
)

// setupAuthRouter 构造挂好认证路由的测试引擎
func setupAuthRouter(t *testing.T, mockUserRepo *mocks.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService, err := service.NewAuthService(mockUserRepo, "test-secret", 1)
	require.NoError(t, err)
	authHandler := httpHandler.NewAuthHandler(authService)

	router := gin.New()
	router.POST("/api/auth/signup", authHandler.Signup)
	router.POST("/api/auth/login", authHandler.Login)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).
		Return(nil).Once()
	router := setupAuthRouter(t, mockUserRepo)

	// Act
	w := postJSON(router, "/api/auth/signup", `{"username":"alice","email":"alice@x.com","password":"secret1"}`)

	// Assert: 201，响应携带 id、token 和用户对象，且不含密码哈希
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
	assert.Contains(t, w.Body.String(), `"token":`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")

	mockUserRepo.AssertExpectations(t)
}

func TestSignup_ShortPassword(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := setupAuthRouter(t, mockUserRepo)

	w := postJSON(router, "/api/auth/signup", `{"username":"alice","email":"alice@x.com","password":"12345"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 6 characters")
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSignup_SingleCharUsernameAccepted(t *testing.T) {
	// Arrange: 用户名只要非空即可，没有额外的长度下限
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 2
		}).
		Return(nil).Once()
	router := setupAuthRouter(t, mockUserRepo)

	// Act
	w := postJSON(router, "/api/auth/signup", `{"username":"a","email":"a@x.com","password":"secret1"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"a"`)
	mockUserRepo.AssertExpectations(t)
}

func TestSignup_DuplicateEmailVsUsername_Distinguishable(t *testing.T) {
	// Arrange: 第一次邮箱撞，第二次用户名撞
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicateEmail).Once()
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicateUsername).Once()
	router := setupAuthRouter(t, mockUserRepo)

	// Act
	wEmail := postJSON(router, "/api/auth/signup", `{"username":"newname","email":"taken@x.com","password":"secret1"}`)
	wUsername := postJSON(router, "/api/auth/signup", `{"username":"taken","email":"new@x.com","password":"secret1"}`)

	// Assert: 都是 400，但错误信息指明各自冲突的字段
	assert.Equal(t, http.StatusBadRequest, wEmail.Code)
	assert.Contains(t, wEmail.Body.String(), "email already registered")
	assert.Equal(t, http.StatusBadRequest, wUsername.Code)
	assert.Contains(t, wUsername.Body.String(), "username already taken")

	mockUserRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: "alice", Email: "alice@x.com", Password: string(hashed)}
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(userInDb, nil).Once()
	mockUserRepo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrUserNotFound).Once()
	router := setupAuthRouter(t, mockUserRepo)

	// Act
	wWrongPass := postJSON(router, "/api/auth/login", `{"email":"alice@x.com","password":"wrong-pass"}`)
	wUnknown := postJSON(router, "/api/auth/login", `{"email":"ghost@x.com","password":"whatever"}`)

	// Assert: 两种失败返回完全相同的 401 响应体
	assert.Equal(t, http.StatusUnauthorized, wWrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, wWrongPass.Body.String(), wUnknown.Body.String(), "失败原因对客户端不可区分")

	mockUserRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: "alice", Email: "alice@x.com", Password: string(hashed)}
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(userInDb, nil).Once()
	router := setupAuthRouter(t, mockUserRepo)

	w := postJSON(router, "/api/auth/login", `{"email":"alice@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	mockUserRepo.AssertExpectations(t)
}
