package appupdate

import (
	"context"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
)

// Release describes a published release.
type Release interface {
	Version() string
	AssetURL() string
	AssetName() string
}

// Updater detects published releases. It exists as an interface so tests
// can run without network access.
type Updater interface {
	DetectLatest(ctx context.Context, repo string) (Release, bool, error)
}

// DefaultUpdater detects releases from GitHub via go-selfupdate.
type DefaultUpdater struct{}

type selfupdateRelease struct {
	release *selfupdate.Release
}

func (r selfupdateRelease) Version() string {
	return r.release.Version()
}

func (r selfupdateRelease) AssetURL() string {
	return r.release.AssetURL
}

func (r selfupdateRelease) AssetName() string {
	return r.release.AssetName
}

func (DefaultUpdater) DetectLatest(ctx context.Context, repo string) (Release, bool, error) {
	repository := selfupdate.ParseSlug(repo)
	release, found, err := selfupdate.DetectLatest(ctx, repository)
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || release == nil {
		return nil, false, nil
	}
	return selfupdateRelease{release: release}, true, nil
}
