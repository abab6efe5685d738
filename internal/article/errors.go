package article

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrArticleIDRequired   = errors.New("article: article id required")
	ErrOriginalLangInvalid = errors.New("article: original language is not supported")
	ErrTitleSeedRequired   = errors.New("article: title in original language is required")
	ErrContentSeedRequired = errors.New("article: content in original language is required")
	ErrUnknownLanguage     = errors.New("article: unknown language")
	ErrPageInvalid         = errors.New("article: page must be >= 1")
	ErrPageSizeInvalid     = errors.New("article: page size out of range")
	ErrNotAuthorized       = errors.New("article: mutation not authorized")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsValidation reports whether err is a caller-recoverable validation
// failure, either one of the package sentinels or an ozzo validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	for _, sentinel := range []error{
		ErrArticleIDRequired,
		ErrOriginalLangInvalid,
		ErrTitleSeedRequired,
		ErrContentSeedRequired,
		ErrUnknownLanguage,
		ErrPageInvalid,
		ErrPageSizeInvalid,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	var ozzoErrs validation.Errors
	if errors.As(err, &ozzoErrs) {
		return true
	}
	var ozzoErr validation.Error
	return errors.As(err, &ozzoErr)
}
