package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	const module = "example.com/mod"
	tests := []struct {
		id   string
		want Class
	}{
		{"example.com/mod", ClassInternal},
		{"example.com/mod/a", ClassInternal},
		{"example.com/mod/a/b/c", ClassInternal},
		{"example.com/mod2/a", ClassThirdParty},
		{"example.com/modx", ClassThirdParty},
		{"example.com/other", ClassThirdParty},
		{"github.com/x/y", ClassThirdParty},
		{"golang.org/x/mod/modfile", ClassThirdParty},
		{"gopkg.in/yaml.v3", ClassThirdParty},
		{"fmt", ClassStdLib},
		{"net/http", ClassStdLib},
		{"internal/abi", ClassStdLib},
		{"vendor/golang.org/x/net/dns/dnsmessage", ClassStdLib},
		{"corp/lib", ClassStdLib},
		{"C", ClassStdLib},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(module, tt.id))
		})
	}
}

func TestClassifier_InScope(t *testing.T) {
	tests := []struct {
		module string
		id     string
		want   bool
	}{
		{"foo", "foo", true},
		{"foo", "foo/x", true},
		{"foo", "foobar/x", false},
		{"foo", "foobar", false},
		{"foo/", "foo/x", true},
		{"foo", "", false},
		{"", "foo", false},
		{"", "", false},
		{"example.com/mod", "example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InScope(tt.module, tt.id), "InScope(%q, %q)", tt.module, tt.id)
	}
}

func TestNewClassifier_TrimsSlash(t *testing.T) {
	assert.Equal(t, "example.com/mod", NewClassifier("example.com/mod/").Module())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "internal", ClassInternal.String())
	assert.Equal(t, "stdlib", ClassStdLib.String())
	assert.Equal(t, "third-party", ClassThirdParty.String())
	assert.Equal(t, "unknown", Class(42).String())
}
