package protocol

import (
	"os"
	"path/filepath"
	"strings"
)

// UploadedFile 是上传文件的不透明句柄。
type UploadedFile interface {
	Size() int64
	Name() string
	// UploadError 返回上传失败的描述，成功时为空。
	UploadError() string
	// MoveTo 将文件移动到 path，返回最终路径。
	MoveTo(path string) (string, error)
}

// FileHandle 是基于临时文件的 UploadedFile 实现。
type FileHandle struct {
	FileName  string
	MediaType string
	TmpPath   string
	ErrorText string
	FileSize  int64

	movedPath string
}

var _ UploadedFile = (*FileHandle)(nil)

func (f *FileHandle) Size() int64         { return f.FileSize }
func (f *FileHandle) Name() string        { return f.FileName }
func (f *FileHandle) UploadError() string { return f.ErrorText }

// MovedPath 返回最近一次移动后的路径。
func (f *FileHandle) MovedPath() string { return f.movedPath }

// Extension 返回小写的文件扩展名，不含 '.'。
func (f *FileHandle) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.FileName), "."))
}

// MoveTo 将临时文件移动到 path，按需创建目录。
//
// path 的扩展名与原文件不同时，会追加原扩展名。
func (f *FileHandle) MoveTo(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return "", err
	}
	if ext := f.Extension(); ext != "" && strings.TrimPrefix(filepath.Ext(path), ".") != ext {
		path += "." + ext
	}
	if err := os.Rename(f.TmpPath, path); err != nil {
		return "", err
	}
	f.movedPath = path
	return path, nil
}
