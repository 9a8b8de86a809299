// Package media 负责留言附图的落盘存储和清理。
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnsupportedMediaType 表示上传内容声明的类型不是图片
var ErrUnsupportedMediaType = errors.New("media: unsupported media type, only images are accepted")

// URLPrefix 是图片对外暴露的静态路径前缀，与 /api 路径空间分开
const URLPrefix = "/images"

var whitespacePattern = regexp.MustCompile(`\s+`)

// DiskStore 把上传的图片保存到本地目录。
// 文件名由归一化的原始名 + 纳秒时间戳组成，避免同名并发上传互相覆盖。
type DiskStore struct {
	dir string
}

// NewDiskStore 创建 DiskStore 实例并确保目标目录存在
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		dir = "images"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create image directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Store 保存上传的图片并返回其对外引用 (如 "/images/cat_1712345678.png")。
// 只接受 Content-Type 声明为 image/* 的内容，其余一律拒绝。
func (s *DiskStore) Store(file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		logrus.WithFields(logrus.Fields{
			"filename":     file.Filename,
			"content_type": contentType,
		}).Warn("Media store: rejected non-image upload")
		return "", ErrUnsupportedMediaType
	}

	name := buildFilename(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("media: failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("media: failed to create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// 写入失败时清掉半截文件，不留垃圾
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("media: failed to write %s: %w", dstPath, err)
	}

	logrus.WithField("file", name).Debug("Media store: image saved")
	return URLPrefix + "/" + name, nil
}

// Remove 删除图片引用对应的文件。幂等：文件不存在视为成功。
func (s *DiskStore) Remove(imageRef string) error {
	if imageRef == "" {
		return nil
	}
	// 引用形如 "/images/<name>"，只取文件名部分，防止路径穿越
	name := filepath.Base(strings.TrimPrefix(imageRef, URLPrefix+"/"))
	if name == "." || name == string(filepath.Separator) {
		return nil
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("media: failed to remove %s: %w", path, err)
	}
	logrus.WithField("file", name).Debug("Media store: image removed")
	return nil
}

// buildFilename 生成防碰撞的存储文件名：
// 原始名去掉扩展名、空白折叠为下划线，再拼上纳秒时间戳和原扩展名。
func buildFilename(original string) string {
	original = filepath.Base(original) // 丢弃客户端可能带上的路径
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	base = whitespacePattern.ReplaceAllString(base, "_")
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)
}
