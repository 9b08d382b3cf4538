package llm

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidImage = errors.New("invalid image data")

type DataURL struct {
	MimeType string
	Data     []byte
	Filename string
}

// DecodeDataURL "data:<mime>;base64,<data>" 또는 순수 base64 문자열을 디코딩
// mime 정보가 없으면 내용으로 판별하고, 이미지가 아니면 image/jpeg로 간주
func DecodeDataURL(s string) (*DataURL, error) {
	mimeType := ""
	payload := s

	if idx := strings.Index(s, ","); idx >= 0 {
		meta := s[:idx]
		payload = s[idx+1:]
		if strings.HasPrefix(meta, "data:") {
			m := strings.TrimPrefix(meta, "data:")
			if semi := strings.Index(m, ";"); semi >= 0 {
				m = m[:semi]
			}
			if m != "" {
				mimeType = m
			}
		}
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 패딩 없이 전달되는 경우
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}

	if mimeType == "" {
		mimeType = sniffImageType(data)
	}

	return &DataURL{
		MimeType: mimeType,
		Data:     data,
		Filename: "input." + extensionFor(mimeType),
	}, nil
}

func sniffImageType(data []byte) string {
	if detected := http.DetectContentType(data); strings.HasPrefix(detected, "image/") {
		return detected
	}
	return "image/jpeg"
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
