package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconCacheError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *IconCacheError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryValidation, SeverityFatal, "input invalid"),
			expected: "validation (fatal): input invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryFileSystem, SeverityFatal, "failed to read dmi file"),
			expected: "filesystem (fatal): failed to read dmi file: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestIconCacheError_WithContext(t *testing.T) {
	err := New(CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", "/tmp/out.json").
		WithContext("attempt", 1)

	require.NotNil(t, err.Context)
	assert.Equal(t, "/tmp/out.json", err.Context["path"])
	assert.Equal(t, 1, err.Context["attempt"])
}

func TestIsCategory(t *testing.T) {
	inputErr := InputNotDirectory("/x", nil)
	decodeErr := IconDecodeError(fmt.Errorf("bad crc"))
	wrapped := fmt.Errorf("run: %w", decodeErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"input error matches validation category", inputErr, CategoryValidation, true},
		{"input error doesn't match decode category", inputErr, CategoryDecode, false},
		{"decode error matches decode category", decodeErr, CategoryDecode, true},
		{"wrapped error is still classified", wrapped, CategoryDecode, true},
		{"standard error doesn't match any category", standardErr, CategoryValidation, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, IsCategory(test.err, test.category))
		})
	}

	assert.Equal(t, CategoryInternal, GetCategory(standardErr))
	assert.Equal(t, CategoryDecode, GetCategory(wrapped))
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("InputNotDirectory", func(t *testing.T) {
		cause := fmt.Errorf("not a dir")
		err := InputNotDirectory("/some/file", cause)
		assert.Equal(t, CategoryValidation, err.Category)
		assert.Equal(t, SeverityFatal, err.Severity)
		assert.Equal(t, "/some/file", err.Context["path"])
		assert.True(t, stdErrors.Is(err, cause))
	})

	t.Run("OutputError", func(t *testing.T) {
		err := OutputError("/out.json", fmt.Errorf("denied"))
		assert.Equal(t, CategoryFileSystem, err.Category)
		assert.Equal(t, "/out.json", err.Context["path"])
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("jobs", "must be positive")
		assert.Equal(t, CategoryValidation, err.Category)
		assert.Equal(t, "jobs", err.Context["field"])
		assert.Equal(t, "must be positive", err.Context["reason"])
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 1, a.ExitCodeFor(fmt.Errorf("plain")))
	assert.Equal(t, 2, a.ExitCodeFor(InputNotDirectory("/x", nil)))
	assert.Equal(t, 11, a.ExitCodeFor(IconDecodeError(nil)))
	assert.Equal(t, 11, a.ExitCodeFor(OutputError("/o", nil)))
	assert.Equal(t, 10, a.ExitCodeFor(InternalError("dup", nil)))
	assert.Equal(t, 12, a.ExitCodeFor(MetricsError("/m", nil)))
	assert.Equal(t, 1, a.ExitCodeFor(New(ErrorCategory("git"), SeverityError, "unknown category")))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	a.stderr = &stderr
	code := -1
	a.exit = func(c int) { code = c }

	a.HandleError(IconDecodeError(fmt.Errorf("extract /in/a.dmi: %w", fmt.Errorf("crc mismatch"))))

	assert.Equal(t, 11, code)
	assert.Equal(t, "Error: decode (fatal): failed to load dmi: extract /in/a.dmi: crc mismatch\n", stderr.String())
	assert.Empty(t, logs.String(), "decode errors are not logged twice outside verbose mode")

	a.HandleError(nil)
	assert.Equal(t, 11, code, "nil error must not exit")
}

func TestCLIErrorAdapter_VerboseLogs(t *testing.T) {
	var stderr, logs bytes.Buffer
	a := NewCLIErrorAdapter(true, slog.New(slog.NewTextHandler(&logs, nil)))
	a.stderr = &stderr
	a.exit = func(int) {}

	a.HandleError(OutputError("/out.json", fmt.Errorf("denied")))

	assert.Contains(t, logs.String(), "failed to write icon cache")
	assert.Contains(t, logs.String(), "category=filesystem")
	assert.Contains(t, logs.String(), "path=/out.json")
}
