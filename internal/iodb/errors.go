package iodb

import (
	"fmt"

	"github.com/gnames/gnlib"
)

// ConnectionError is returned when a catalog connection cannot be
// opened or verified.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with a user-facing
// message for the CLI commands.
func NewConnectionError(server, catalog, user string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Catalog Connection Failed</title>

<warning>Could not connect to a Diversity catalog.</warning>

<em>Possible causes:</em>
  • The database server is not reachable
  • The credentials are wrong or lack access to the catalog
  • The catalog name is misspelled in the configuration

Server:  %s
Catalog: %s
User:    %s
`,
		Vars: []any{server, catalog, user},
	}

	return ConnectionError{
		error: fmt.Errorf(
			"failed to connect to %s/%s as %s: %w",
			server, catalog, user, cause,
		),
		MessageBase: msgBase,
	}
}

// UnknownRepositoryError is returned when a caller names a repository
// that is not configured.
type UnknownRepositoryError struct {
	error
	gnlib.MessageBase
}

// NewUnknownRepositoryError creates the error for an unconfigured
// repository name.
func NewUnknownRepositoryError(name string) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Unknown Repository</title>

<warning>The repository '%s' is not configured.</warning>

<em>How to fix:</em>
  1. List configured repositories: <em>divservice repositories</em>
  2. Check the 'repositories' section of the config file
`,
		Vars: []any{name},
	}

	return UnknownRepositoryError{
		error:       fmt.Errorf("repository %q does not exist", name),
		MessageBase: msgBase,
	}
}
