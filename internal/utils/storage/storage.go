package storage

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/utils"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var AllowImage = []string{".png", ".jpg", ".jpeg", ".gif"}

var ErrInvalidExtension = domain.ErrInvalidImageFormat

type ImageStorage interface {
	// UploadFile stores file under folder/fileName+ext and returns the object key.
	UploadFile(fileName string, file *multipart.FileHeader, folder string, allowExt ...string) (string, error)
	DeleteFile(objectKey string) error
	GetPublicLinkKey(objectKey string) string
	GetObjectKeyFromLink(link string) string
}

// New returns the sink selected by STORAGE_DRIVER.
func New() (ImageStorage, error) {
	switch strings.ToLower(utils.GetConfig("STORAGE_DRIVER")) {
	case "s3":
		return NewAwsS3()
	case "local", "":
		return NewLocalStorage(utils.GetConfig("UPLOAD_DIR"), "/static/images")
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + utils.GetConfig("STORAGE_DRIVER"))
	}
}

// CheckExtension returns the lowercased extension of name when it is allowed.
func CheckExtension(name string, allowExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if len(allowExt) == 0 {
		return ext, nil
	}
	for _, allowed := range allowExt {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
}

func objectKey(folder, fileName, ext string) string {
	if folder == "" {
		return fileName + ext
	}
	return strings.Trim(folder, "/") + "/" + fileName + ext
}
