package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/petchan-dev/petchan/internal/config"
	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/errlog"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/validation"
)

const (
	MsgFileTooLarge  = "ファイルサイズは5MB以下にしてください"
	MsgBadImageType  = "対応している画像形式: JPEG, PNG, WebP, GIF"
	MsgTooManyImages = "画像は最大3枚まで投稿できます"
	MsgUploadFailed  = "画像のアップロードに失敗しました"
)

// ObjectStorage is the external image store. Put returns the public
// URL of the stored object.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data io.Reader) (string, error)
}

type Upload struct {
	storage ObjectStorage
	cfg     config.Upload
	sink    *errlog.Sink
}

func NewUpload(storage ObjectStorage, cfg config.Upload, sink *errlog.Sink) *Upload {
	return &Upload{storage: storage, cfg: cfg, sink: sink}
}

var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Store validates and uploads up to MaxFiles images, returning their
// public URLs. Upload happens before submission; a failure surfaces
// with the underlying reason when known.
func (s *Upload) Store(ctx context.Context, folder string, fileHeaders []*multipart.FileHeader, client domain.Client) ([]string, error) {
	pending, err := validation.ValidateImages(fileHeaders, s.cfg.MaxFiles, s.cfg.MaxFileSizeBytes, s.cfg.AllowedMimeTypes)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrTooManyFiles):
			return nil, &internal_errors.ValidationError{Message: MsgTooManyImages}
		case errors.Is(err, validation.ErrPayloadTooLarge):
			return nil, &internal_errors.ValidationError{Message: MsgFileTooLarge}
		case errors.Is(err, validation.ErrInvalidMimeType):
			return nil, &internal_errors.ValidationError{Message: MsgBadImageType}
		}
		return nil, &internal_errors.ValidationError{Message: MsgUploadFailed}
	}

	defer func() {
		for _, img := range pending {
			img.Data.Close()
		}
	}()

	urls := make([]string, 0, len(pending))
	for _, img := range pending {
		key := folder + "/" + uuid.New().String() + "." + mimeExtensions[img.MimeType]

		url, err := s.storage.Put(ctx, key, img.MimeType, img.Data)
		if err != nil {
			s.sink.Log(ctx, domain.ErrorLogEntry{
				Message:      err.Error(),
				Kind:         string(internal_errors.KindUpload),
				FunctionName: "Upload.Store",
				UserAction:   "upload_image",
				Severity:     domain.SeverityError,
				ClientIP:     hashIP(client.IP),
				UserAgent:    client.UserAgent,
			})
			return nil, &internal_errors.ErrorWithStatusCode{Message: MsgUploadFailed, StatusCode: 502}
		}
		urls = append(urls, url)
	}

	return urls, nil
}
