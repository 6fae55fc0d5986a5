//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command name. It appears in help text, in the
	// default configuration path, and is the name under which shim dispatch
	// is disabled.
	Name = "aka"
	// Description is a short summary used in help output.
	Description = "Run alias bodies with argument, command and script expansion"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
