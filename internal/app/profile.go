package app

import (
	"context"
	"fmt"
	"os"

	"github.com/varoOP/animetop/internal/domain"
)

// InitProfile writes the built-in transform profile so it can be edited.
// An existing file is only replaced with force.
func (a *App) InitProfile(ctx context.Context, force bool) (domain.DataPath, error) {
	path := a.paths.ProfilePath
	if _, err := os.Stat(string(path)); err == nil && !force {
		return "", fmt.Errorf("profile already exists at %s (use --force to overwrite)", path)
	}

	if err := a.profiles.StoreProfile(ctx, path, domain.DefaultProfile()); err != nil {
		return "", fmt.Errorf("failed to write profile: %w", err)
	}

	return path, nil
}
