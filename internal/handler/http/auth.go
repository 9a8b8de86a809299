package http

import (
	"errors"
	"net/http"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest 定义注册请求的结构体
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"` // 长度下限由 Service 校验，保证错误信息一致
}

// SignupResponse 定义注册成功的响应结构体
type SignupResponse struct {
	Message string       `json:"message"`
	ID      uint         `json:"id"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Signup 处理用户注册请求
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Signup: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required", "details": err.Error()})
		return
	}

	// 2. 调用 Service 层处理注册逻辑
	newUser, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)

	// 3. 处理 Service 返回的错误
	if err != nil {
		logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrUsernameTaken):
			// 冲突字段要可区分，客户端据此提示用户改哪一项
			logCtx.WithError(err).Warn("Handler.Signup: Duplicate field")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput),
			errors.Is(err, service.ErrPasswordTooShort):
			logCtx.WithError(err).Warn("Handler.Signup: Validation failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logCtx.WithError(err).Error("Handler.Signup: Internal error during registration")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed due to server error"})
		}
		return
	}

	// 4. 注册成功响应；响应中不包含密码哈希 (User 序列化时排除)
	logrus.WithField("user_id", newUser.ID).Info("Handler.Signup: User registered successfully")
	c.JSON(http.StatusCreated, SignupResponse{
		Message: "User registered successfully",
		ID:      newUser.ID,
		Token:   token,
		User:    newUser,
	})
}

// LoginRequest 定义登录请求的结构体。登录凭证是邮箱 + 密码。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 定义登录成功的响应结构体
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: email and password required"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)

	if err != nil {
		logCtx := logrus.WithField("email", req.Email)
		if errors.Is(err, service.ErrAuthenticationFailed) {
			logCtx.WithError(err).Warn("Handler.Login: Authentication failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()}) // 401 Unauthorized
		} else {
			logCtx.WithError(err).Error("Handler.Login: Internal error during login")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed due to server error"})
		}
		return
	}

	logrus.WithField("user_id", user.ID).Info("Handler.Login: User logged in successfully")
	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}
