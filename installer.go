package jsonio

import (
	"context"

	"github.com/reoring/jsonio/codec"
)

// Installer makes a missing backend available, typically by registering its
// constructor. It is consulted only when RuntimeInstall is set.
type Installer interface {
	Install(ctx context.Context, id codec.ID) error
}

// InstallerFunc adapts a function to Installer.
type InstallerFunc func(ctx context.Context, id codec.ID) error

func (f InstallerFunc) Install(ctx context.Context, id codec.ID) error { return f(ctx, id) }
