package media_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kindness-wall/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFileHeader 构造一个带指定 Content-Type 的 multipart.FileHeader
func buildFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestDiskStore_Store_SavesImageWithUniqueName(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir)
	require.NoError(t, err)

	file := buildFileHeader(t, "my cat.png", "image/png", []byte("png-bytes"))

	// Act
	ref, err := store.Store(file)

	// Assert: 引用在静态前缀下，原始名的空白折叠成下划线并带上时间戳
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, media.URLPrefix+"/"), "引用应位于 %s 前缀下", media.URLPrefix)
	name := strings.TrimPrefix(ref, media.URLPrefix+"/")
	assert.True(t, strings.HasPrefix(name, "my_cat_"), "空白应折叠为下划线: %s", name)
	assert.True(t, strings.HasSuffix(name, ".png"), "应保留原扩展名: %s", name)

	// 文件内容应完整落盘
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestDiskStore_Store_SameNameDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir)
	require.NoError(t, err)

	first := buildFileHeader(t, "photo.jpg", "image/jpeg", []byte("first"))
	second := buildFileHeader(t, "photo.jpg", "image/jpeg", []byte("second"))

	ref1, err := store.Store(first)
	require.NoError(t, err)
	ref2, err := store.Store(second)
	require.NoError(t, err)

	// 纳秒时间戳保证同名上传互不覆盖
	assert.NotEqual(t, ref1, ref2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDiskStore_Store_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir)
	require.NoError(t, err)

	file := buildFileHeader(t, "malware.exe", "application/octet-stream", []byte("MZ"))

	_, err = store.Store(file)

	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrUnsupportedMediaType)

	// 被拒绝的上传不应留下任何文件
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestDiskStore_Remove_Idempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir)
	require.NoError(t, err)

	file := buildFileHeader(t, "gone.png", "image/png", []byte("bytes"))
	ref, err := store.Store(file)
	require.NoError(t, err)

	// 第一次删除真正移除文件
	require.NoError(t, store.Remove(ref))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 第二次删除：文件已不存在，仍然成功
	assert.NoError(t, store.Remove(ref))

	// 空引用也是安全的
	assert.NoError(t, store.Remove(""))
}
