// Package videourl проверяет ссылки на видео уроков.
// Разрешены только youtube.com и youtu.be, включая поддомены.
package videourl

import (
	"net/url"
	"strings"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
)

var allowedDomains = []string{
	"youtube.com",
	"www.youtube.com",
	"youtu.be",
	"m.youtube.com",
}

// Validate проверяет хост ссылки по списку разрешённых доменов.
// Пустое значение допустимо. Сравнение хоста регистронезависимое,
// поддомены разрешённых доменов проходят проверку.
func Validate(value string) error {
	if value == "" {
		return nil
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return apperror.NewFieldError("video_url", "некорректный URL")
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return apperror.NewFieldError("video_url", "некорректный URL")
	}

	for _, d := range allowedDomains {
		if hostname == d || strings.HasSuffix(hostname, "."+d) {
			return nil
		}
	}
	return apperror.NewFieldError("video_url", "разрешены ссылки только с youtube.com или youtu.be")
}
