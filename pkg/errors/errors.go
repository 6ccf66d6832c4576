package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, grouped by category
const (
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrTypeMismatch   ErrorCode = "TYPE_MISMATCH"
	ErrMissingValue   ErrorCode = "MISSING_VALUE"
	ErrAnswersInvalid ErrorCode = "ANSWERS_INVALID"
	ErrSettingsLoad   ErrorCode = "SETTINGS_LOAD"
	ErrUsage          ErrorCode = "USAGE"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Render errors
	ErrRenderFailed      ErrorCode = "RENDER_FAILED"
	ErrUndefinedVariable ErrorCode = "UNDEFINED_VARIABLE"
	ErrNotText           ErrorCode = "NOT_TEXT"

	// Ignore errors
	ErrIgnorePattern ErrorCode = "IGNORE_PATTERN"

	// FileSystem errors
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrOutputExists ErrorCode = "OUTPUT_EXISTS"

	// Hook errors
	ErrHookFailed   ErrorCode = "HOOK_FAILED"
	ErrHookSpawn    ErrorCode = "HOOK_SPAWN"
	ErrHooksDecline ErrorCode = "HOOKS_DECLINED"

	// Template source errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateFetch    ErrorCode = "TEMPLATE_FETCH"
)

// Category is the user-facing error family a code belongs to.
type Category string

const (
	CategoryConfig         Category = "ConfigError"
	CategoryValidation     Category = "ValidationError"
	CategoryRender         Category = "RenderError"
	CategoryIgnoreSpec     Category = "IgnoreSpecError"
	CategoryIO             Category = "IOError"
	CategoryHook           Category = "HookError"
	CategoryTemplateSource Category = "TemplateSourceError"
	CategoryInternal       Category = "InternalError"
)

var categories = map[ErrorCode]Category{
	ErrConfigInvalid:     CategoryConfig,
	ErrConfigNotFound:    CategoryConfig,
	ErrTypeMismatch:      CategoryConfig,
	ErrMissingValue:      CategoryConfig,
	ErrAnswersInvalid:    CategoryConfig,
	ErrSettingsLoad:      CategoryConfig,
	ErrUsage:             CategoryConfig,
	ErrValidationFailed:  CategoryValidation,
	ErrRenderFailed:      CategoryRender,
	ErrUndefinedVariable: CategoryRender,
	ErrNotText:           CategoryRender,
	ErrIgnorePattern:     CategoryIgnoreSpec,
	ErrFileAccess:        CategoryIO,
	ErrFileWrite:         CategoryIO,
	ErrDirCreate:         CategoryIO,
	ErrOutputExists:      CategoryIO,
	ErrHookFailed:        CategoryHook,
	ErrHookSpawn:         CategoryHook,
	ErrHooksDecline:      CategoryHook,
	ErrTemplateNotFound:  CategoryTemplateSource,
	ErrTemplateFetch:     CategoryTemplateSource,
}

// CodeCategory returns the category for a code. Unregistered codes are internal.
func CodeCategory(code ErrorCode) Category {
	if c, ok := categories[code]; ok {
		return c
	}
	return CategoryInternal
}

// CutterError represents a structured error with code and details
type CutterError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CutterError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CutterError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CutterError) Is(target error) bool {
	var targetErr *CutterError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Category returns the error family of this error's code
func (e *CutterError) Category() Category {
	return CodeCategory(e.Code)
}

// New creates a new CutterError with the given code and message
func New(code ErrorCode, message string) *CutterError {
	return &CutterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CutterError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CutterError {
	return &CutterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CutterError
func Wrap(err error, code ErrorCode, message string) *CutterError {
	if err == nil {
		return nil
	}
	return &CutterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CutterError {
	if err == nil {
		return nil
	}
	return &CutterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CutterError) WithDetail(key string, value interface{}) *CutterError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cutterErr *CutterError
	if errors.As(err, &cutterErr) {
		return cutterErr.Code == code
	}
	return false
}

// IsCategory reports whether the outermost CutterError in err's chain is of category c.
func IsCategory(err error, c Category) bool {
	var cutterErr *CutterError
	if errors.As(err, &cutterErr) {
		return cutterErr.Category() == c
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CutterError
func GetErrorCode(err error) ErrorCode {
	var cutterErr *CutterError
	if errors.As(err, &cutterErr) {
		return cutterErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CutterError
func GetErrorDetails(err error) map[string]interface{} {
	var cutterErr *CutterError
	if errors.As(err, &cutterErr) {
		return cutterErr.Details
	}
	return nil
}

// ExitClass distinguishes success, user-correctable failures and
// environment or internal failures.
type ExitClass int

const (
	ExitOK       ExitClass = 0
	ExitUser     ExitClass = 1
	ExitInternal ExitClass = 2
)

// Classify maps an error to its exit class.
func Classify(err error) ExitClass {
	if err == nil {
		return ExitOK
	}
	var cutterErr *CutterError
	if !errors.As(err, &cutterErr) {
		return ExitInternal
	}
	switch cutterErr.Code {
	case ErrOutputExists, ErrHooksDecline, ErrTemplateNotFound:
		return ExitUser
	}
	switch cutterErr.Category() {
	case CategoryConfig, CategoryValidation, CategoryRender, CategoryIgnoreSpec:
		return ExitUser
	}
	return ExitInternal
}
