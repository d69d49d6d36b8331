// Package config loads depmap's optional project file, .depmap.toml.
//
// Every field is optional. Values left unset fall back to [Default], and
// command-line flags override whatever the file sets. String values may
// reference environment variables as ${VAR} or $VAR; unset variables are
// left as written.
//
//	module = "example.com/mod"
//	third_party_cap = 80
//	output = "docs/DEPENDENCIES.md"
//	format = "markdown"
//	patterns = ["./..."]
//
//	[neo4j]
//	uri = "bolt://localhost:7687"
//	user = "neo4j"
//	password = "${NEO4J_PASSWORD}"
//
//	[serve]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depmap/pkg/errors"
)

// FileName is the project file looked up by [Find].
const FileName = ".depmap.toml"

// Config is the decoded project file.
type Config struct {
	Module        string   `toml:"module"`
	ThirdPartyCap int      `toml:"third_party_cap"`
	Output        string   `toml:"output"`
	Format        string   `toml:"format"`
	Patterns      []string `toml:"patterns"`
	Neo4j         Neo4j    `toml:"neo4j"`
	Serve         Serve    `toml:"serve"`
}

// Neo4j holds connection settings for `depmap export neo4j`.
type Neo4j struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Serve holds settings for `depmap serve`.
type Serve struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ThirdPartyCap: 80,
		Format:        "markdown",
		Patterns:      []string{"./..."},
		Neo4j: Neo4j{
			URI:  "bolt://localhost:7687",
			User: "neo4j",
		},
		Serve: Serve{Addr: ":8080"},
	}
}

// Load reads the file at path on top of [Default]. Unknown keys are an error
// so that typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.expandEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from dir looking for [FileName] and returns its path, or ""
// when none exists up to the filesystem root.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Module != "" {
		if err := errors.ValidateGoModulePath(c.Module); err != nil {
			return err
		}
	}
	switch c.Format {
	case "", "markdown", "json":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "format must be markdown or json, got %q", c.Format)
	}
	if c.Output != "" {
		if err := errors.ValidatePath(c.Output); err != nil {
			return err
		}
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func (c *Config) expandEnv() {
	c.Module = expandEnvVar(c.Module)
	c.Output = expandEnvVar(c.Output)
	c.Neo4j.URI = expandEnvVar(c.Neo4j.URI)
	c.Neo4j.User = expandEnvVar(c.Neo4j.User)
	c.Neo4j.Password = expandEnvVar(c.Neo4j.Password)
	c.Serve.Addr = expandEnvVar(c.Serve.Addr)
}

// expandEnvVar expands ${VAR} and $VAR, leaving unset variables untouched.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}
