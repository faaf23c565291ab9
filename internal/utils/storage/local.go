package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// localStorage keeps uploads on disk under dir and serves them below urlPrefix.
type localStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localStorage{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (l *localStorage) write(key string, file *multipart.FileHeader) error {
	dst := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (l *localStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowExt ...string) (string, error) {
	ext, err := CheckExtension(file.Filename, allowExt...)
	if err != nil {
		return "", err
	}
	key := objectKey(folder, fileName, ext)
	if err := l.write(key, file); err != nil {
		return "", err
	}
	return key, nil
}

func (l *localStorage) DeleteFile(key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *localStorage) GetPublicLinkKey(key string) string {
	return l.urlPrefix + "/" + key
}

func (l *localStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, l.urlPrefix+"/") {
		return ""
	}
	return strings.TrimPrefix(link, l.urlPrefix+"/")
}
