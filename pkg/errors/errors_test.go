// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, categories and exit classification

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_error",
			code:    errors.ErrConfigInvalid,
			message: "bad schema",
			wantStr: "[CONFIG_INVALID] bad schema",
		},
		{
			name:    "render_error",
			code:    errors.ErrRenderFailed,
			message: "cannot render",
			wantStr: "[RENDER_FAILED] cannot render",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMissingValue, "no value for %q", "name")
	assert.Equal(t, `no value for "name"`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "write failed")

		assert.Equal(t, errors.ErrFileWrite, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_WRITE] write failed: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRenderFailed, "render").
		WithDetail("path", "src/{{x}}").
		WithDetail("variable", "x")

	assert.Equal(t, "src/{{x}}", err.Details["path"])
	assert.Equal(t, "x", errors.GetErrorDetails(err)["variable"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrHookFailed, "error 1")
	err2 := errors.New(errors.ErrHookFailed, "error 2")
	err3 := errors.New(errors.ErrHookSpawn, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(fmt.Errorf("outer: %w", err1), err2))
}

func TestIsErrorCode(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied")

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrFileAccess))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrFileWrite))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrFileAccess))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want errors.Category
	}{
		{errors.ErrConfigInvalid, errors.CategoryConfig},
		{errors.ErrUsage, errors.CategoryConfig},
		{errors.ErrTypeMismatch, errors.CategoryConfig},
		{errors.ErrMissingValue, errors.CategoryConfig},
		{errors.ErrValidationFailed, errors.CategoryValidation},
		{errors.ErrUndefinedVariable, errors.CategoryRender},
		{errors.ErrNotText, errors.CategoryRender},
		{errors.ErrIgnorePattern, errors.CategoryIgnoreSpec},
		{errors.ErrOutputExists, errors.CategoryIO},
		{errors.ErrHooksDecline, errors.CategoryHook},
		{errors.ErrTemplateFetch, errors.CategoryTemplateSource},
		{errors.ErrInternal, errors.CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, errors.CodeCategory(tt.code))
			assert.True(t, errors.IsCategory(errors.New(tt.code, "x"), tt.want))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ExitClass
	}{
		{"nil_is_ok", nil, errors.ExitOK},
		{"config_is_user", errors.New(errors.ErrConfigInvalid, "x"), errors.ExitUser},
		{"validation_is_user", errors.New(errors.ErrValidationFailed, "x"), errors.ExitUser},
		{"render_is_user", errors.New(errors.ErrRenderFailed, "x"), errors.ExitUser},
		{"ignore_is_user", errors.New(errors.ErrIgnorePattern, "x"), errors.ExitUser},
		{"output_exists_is_user", errors.New(errors.ErrOutputExists, "x"), errors.ExitUser},
		{"declined_is_user", errors.New(errors.ErrHooksDecline, "x"), errors.ExitUser},
		{"missing_template_is_user", errors.New(errors.ErrTemplateNotFound, "x"), errors.ExitUser},
		{"write_is_internal", errors.New(errors.ErrFileWrite, "x"), errors.ExitInternal},
		{"hook_failure_is_internal", errors.New(errors.ErrHookFailed, "x"), errors.ExitInternal},
		{"fetch_is_internal", errors.New(errors.ErrTemplateFetch, "x"), errors.ExitInternal},
		{"plain_is_internal", stderrors.New("boom"), errors.ExitInternal},
		{"wrapped_keeps_class", fmt.Errorf("ctx: %w", errors.New(errors.ErrMissingValue, "x")), errors.ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, errors.Classify(tt.err))
		})
	}
}
