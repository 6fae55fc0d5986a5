package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// testCLI mirrors the shape of the top-level flags: a grouped, prefixed
// embed plus ungrouped flags.
type testCLI struct {
	Log struct {
		Level  string `default:"warn"`
		Pretty bool
	} `embed:"" group:"log" prefix:"log-"`

	Dir   string `default:"/aliases"`
	Shell string `default:"native"`
	Empty string
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli testCLI

	parser, err := kong.New(&cli,
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging"}}),
		kong.Vars{ConfigIdentifier: confPath},
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		force    bool
		existing bool
		wantErr  error
	}{
		{
			name: "create_new_config",
		},
		{
			name:     "overwrite_existing_with_force",
			force:    true,
			existing: true,
		},
		{
			name:     "fail_without_force",
			existing: true,
			wantErr:  ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.existing {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath)

			err := (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if tt.wantErr != nil {
				if string(content) != "existing: true\n" {
					t.Errorf("existing file was modified: %q", content)
				}

				return
			}

			var doc map[string]any
			if err := yaml.Unmarshal(content, &doc); err != nil {
				t.Errorf("generated config is not valid YAML: %v\n%s", err, content)
			}
		})
	}
}

// TestInitSettings tests that flag values are grouped and empty values
// omitted.
func TestInitSettings(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "config.yaml")
	ctx := initContext(t, confPath, "--log-level=debug", "--shell=virtual")

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatalf("Init.Run() error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Log struct {
			Level  string `yaml:"level"`
			Pretty bool   `yaml:"pretty"`
		} `yaml:"log"`
		Dir   string `yaml:"dir"`
		Shell string `yaml:"shell"`
	}

	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, content)
	}

	if doc.Log.Level != "debug" || doc.Dir != "/aliases" || doc.Shell != "virtual" {
		t.Errorf("unexpected settings: %+v\n%s", doc, content)
	}

	out := string(content)
	if strings.Contains(out, "empty") || strings.Contains(out, "help") {
		t.Errorf("config contains unset or ignored flags:\n%s", out)
	}

	if !strings.Contains(out, "log:\n  level: debug") {
		t.Errorf("log settings are not nested:\n%s", out)
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "/nonexistent/directory/config.yaml")

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want ErrWriteConfig", err)
	}
}
