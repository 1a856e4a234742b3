package usecase

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const (
	defaultScheme = "https://"
	maxURLLength  = 2048
)

var (
	schemePrefix   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)
	allowedSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}
	urlValidate    = validator.New()
)

// NormalizeURL prefixes https:// when rawURL has no scheme and checks that
// the result is an absolute http(s) or ftp(s) URL with a plausible host.
func NormalizeURL(rawURL string) (string, error) {
	const op = "usecase.NormalizeURL"

	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", fmt.Errorf("%s: %w: empty url", op, entity.ErrInvalidURL)
	}

	if !schemePrefix.MatchString(s) {
		s = defaultScheme + s
	}

	if len(s) > maxURLLength {
		return "", fmt.Errorf("%s: %w: longer than %d characters", op, entity.ErrInvalidURL, maxURLLength)
	}

	if err := urlValidate.Var(s, "url"); err != nil {
		return "", fmt.Errorf("%s: %w: %q", op, entity.ErrInvalidURL, rawURL)
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, entity.ErrInvalidURL, err)
	}

	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", fmt.Errorf("%s: %w: unsupported scheme %q", op, entity.ErrInvalidURL, u.Scheme)
	}

	if !isValidHost(u.Hostname()) {
		return "", fmt.Errorf("%s: %w: invalid host %q", op, entity.ErrInvalidURL, u.Hostname())
	}

	return s, nil
}

func isValidHost(host string) bool {
	if host == "" {
		return false
	}

	if strings.EqualFold(host, "localhost") || net.ParseIP(host) != nil {
		return true
	}

	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}

		for _, r := range label {
			if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
	}

	return true
}
