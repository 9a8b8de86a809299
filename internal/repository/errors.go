package repository

import "errors"

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示尝试插入的数据违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrDuplicateEmail / ErrDuplicateUsername 细分唯一约束冲突，
	// 调用方据此告知用户究竟是哪个字段重复了
	ErrDuplicateEmail    = errors.New("repository: duplicate email")
	ErrDuplicateUsername = errors.New("repository: duplicate username")
)

// 特定资源的错误 (基于通用错误创建)
var (
	ErrUserNotFound   = ErrNotFound
	ErrNoteNotFound   = ErrNotFound
	ErrLiftupNotFound = ErrNotFound
	ErrPromptNotSet   = ErrNotFound
)
