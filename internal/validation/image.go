package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	_ "golang.org/x/image/webp"
)

// ErrPayloadTooLarge is returned when an uploaded file exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ErrTooManyFiles is returned when too many files are uploaded
var ErrTooManyFiles = errors.New("too many files")

type PendingImage struct {
	Filename    string
	SizeBytes   int64
	MimeType    string
	ImageWidth  int
	ImageHeight int
	Data        multipart.File
}

func ValidateImages(fileHeaders []*multipart.FileHeader, maxFiles int, maxSizeBytes int64, allowedMimeTypes []string) ([]*PendingImage, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}
	if len(fileHeaders) > maxFiles {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyFiles, len(fileHeaders), maxFiles)
	}

	allowed := make(map[string]bool, len(allowedMimeTypes))
	for _, m := range allowedMimeTypes {
		allowed[m] = true
	}

	var pending []*PendingImage
	closeAll := func() {
		for _, p := range pending {
			p.Data.Close()
		}
	}

	for _, fileHeader := range fileHeaders {
		if fileHeader.Size > maxSizeBytes {
			closeAll()
			return nil, fmt.Errorf("%w: %s (%d bytes)", ErrPayloadTooLarge, fileHeader.Filename, fileHeader.Size)
		}

		file, err := fileHeader.Open()
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		mimeType, err := detectMimeType(file)
		if err != nil {
			file.Close()
			closeAll()
			return nil, err
		}

		if !allowed[mimeType] {
			file.Close()
			closeAll()
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
		}

		width, height := extractImageDimensions(file)

		pending = append(pending, &PendingImage{
			Filename:    fileHeader.Filename,
			SizeBytes:   fileHeader.Size,
			MimeType:    mimeType,
			ImageWidth:  width,
			ImageHeight: height,
			Data:        file,
		})
	}

	return pending, nil
}

// detectMimeType sniffs content instead of trusting the declared header.
func detectMimeType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// extractImageDimensions is best-effort: (0, 0) when decoding fails.
func extractImageDimensions(file multipart.File) (int, int) {
	defer file.Seek(0, io.SeekStart)

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
