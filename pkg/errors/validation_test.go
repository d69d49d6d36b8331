package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "fmt", false},
		{"valid nested", "net/http", false},
		{"valid hosted", "github.com/spf13/cobra", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if tt.wantErr {
				assert.Error(t, err, "ValidatePackageName(%q)", tt.input)
			} else {
				assert.NoError(t, err, "ValidatePackageName(%q)", tt.input)
			}
		})
	}
}

func TestValidateGoModulePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"github module", "github.com/user/repo", false},
		{"simple", "mymodule", false},
		{"major version", "example.com/mod/v2", false},
		{"trailing slash", "example.com/mod/", false},

		{"empty", "", true},
		{"starts with dot", ".module", true},
		{"starts with slash", "/module", true},
		{"version query", "module@latest", true},
		{"space", "example.com/my mod", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoModulePath(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err, "ValidateGoModulePath(%q)", tt.input)
				return
			}
			assert.True(t, Is(err, ErrCodeInvalidModule), "ValidateGoModulePath(%q) = %v, want %s", tt.input, err, ErrCodeInvalidModule)
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "docs/DEPENDENCIES.md", false},
		{"absolute", "/tmp/deps.md", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err, "ValidatePath(%q)", tt.input)
				return
			}
			assert.True(t, Is(err, ErrCodeInvalidPath), "ValidatePath(%q) = %v, want %s", tt.input, err, ErrCodeInvalidPath)
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidModule,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeDecode,
		ErrCodeGoList,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate error code %s", code)
		seen[code] = true
	}
}
