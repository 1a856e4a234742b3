package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const statusError = "error"

// urlRequest represents the structure for a request to shorten a URL.
// The scheme may be omitted, https is assumed then.
type urlRequest struct {
	OriginalURL string `json:"original_url" validate:"required,max=2048"`
}

// urlResponse represents the structure for a response containing shortened URL information.
type urlResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toURLResponse(url *entity.URL, shortURL string) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		ShortURL:    shortURL,
		OriginalURL: url.OriginalURL,
		CreatedAt:   url.CreatedAt,
	}
}

// urlStatsResponse represents the structure for a response containing URL statistics.
type urlStatsResponse struct {
	urlResponse
	Stats urlStats `json:"stats"`
}

type urlStats struct {
	AccessCount    int64      `json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
}

func toURLStatsResponse(url *entity.URL, shortURL string) urlStatsResponse {
	return urlStatsResponse{
		urlResponse: toURLResponse(url, shortURL),
		Stats: urlStats{
			AccessCount:    url.AccessCount,
			LastAccessedAt: url.LastAccessedAt,
		},
	}
}

type urlListResponse struct {
	URLs []urlStatsResponse `json:"urls"`
}

type accessEventResponse struct {
	ID         int64     `json:"id"`
	ShortCode  string    `json:"short_code"`
	AccessedAt time.Time `json:"accessed_at"`
	IP         string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Referer    string    `json:"referer,omitempty"`
}

type accessEventListResponse struct {
	Events []accessEventResponse `json:"events"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

func toAccessEventListResponse(events []entity.AccessEvent, page entity.Page) accessEventListResponse {
	resp := accessEventListResponse{
		Events: make([]accessEventResponse, 0, len(events)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	for _, e := range events {
		resp.Events = append(resp.Events, accessEventResponse{
			ID:         e.ID,
			ShortCode:  e.ShortCode,
			AccessedAt: e.AccessedAt,
			IP:         e.IP,
			UserAgent:  e.UserAgent,
			Referer:    e.Referer,
		})
	}

	return resp
}

// accountResponse reports the quota of the current UTC day.
type accountResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DailyLimit   int       `json:"daily_limit"`
	DailyUsage   int       `json:"daily_usage"`
	Remaining    int       `json:"remaining"`
	QuotaResetAt time.Time `json:"quota_reset_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAccountResponse(account *entity.Account, now time.Time) accountResponse {
	return accountResponse{
		ID:           account.ID,
		Name:         account.Name,
		DailyLimit:   account.DailyLimit,
		DailyUsage:   account.EffectiveUsage(now),
		Remaining:    account.RemainingQuota(now),
		QuotaResetAt: entity.QuotaResetAt(now),
		CreatedAt:    account.CreatedAt,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// quotaExceededResponse is returned with 429 when the daily quota is used up.
type quotaExceededResponse struct {
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	DailyLimit int       `json:"daily_limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

func toQuotaExceededResponse(err *entity.QuotaExceededError) quotaExceededResponse {
	return quotaExceededResponse{
		Status:     statusError,
		Message:    "daily quota exceeded",
		DailyLimit: err.DailyLimit,
		Remaining:  0,
		ResetAt:    err.ResetAt,
	}
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	invalidURLResponse = errorResponse{
		Status:  statusError,
		Message: "invalid url",
	}

	invalidQueryResponse = errorResponse{
		Status:  statusError,
		Message: "invalid query parameter",
	}

	unauthenticatedResponse = errorResponse{
		Status:  statusError,
		Message: "missing or invalid api key",
	}

	forbiddenResponse = errorResponse{
		Status:  statusError,
		Message: "url belongs to another account",
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "url not found",
	}

	accountNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "account not found",
	}

	serviceUnavailableResponse = errorResponse{
		Status:  statusError,
		Message: "service temporarily unavailable",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	case "url":
		return "invalid url"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
