// Package appupdate checks for newer plansh releases in the background and
// records the latest known version for a startup notice.
package appupdate

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/atinylittleshell/plansh/internal/core"
	"github.com/atinylittleshell/plansh/internal/filesystem"
	"go.uber.org/zap"
)

// githubRepo is the release source checked for updates.
const githubRepo = "atinylittleshell/plansh"

// HandleSelfUpdate starts a background check for a newer release. The
// returned channel yields the newer version string, if any, and is closed
// when the check finishes. Dev builds skip the check entirely.
func HandleSelfUpdate(
	currentVersion string,
	logger *zap.Logger,
	fs filesystem.FileSystem,
	updater Updater,
) chan string {
	// Buffered so the check completes even when the caller never reads.
	resultChannel := make(chan string, 1)

	currentSemVer, err := semver.NewVersion(currentVersion)
	if err != nil {
		logger.Debug("running a dev build, skipping self-update check")
		close(resultChannel)
		return resultChannel
	}

	go fetchAndSaveLatestVersion(resultChannel, logger, fs, updater, currentSemVer)

	return resultChannel
}

// ReadLatestVersion returns the newer version recorded by an earlier check,
// or empty when none is known.
func ReadLatestVersion(fs filesystem.FileSystem) string {
	file, err := fs.Open(core.LatestVersionFile())
	if err != nil {
		return ""
	}
	defer file.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, file)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(buf.String())
}

func fetchAndSaveLatestVersion(resultChannel chan string, logger *zap.Logger, fs filesystem.FileSystem, updater Updater, currentSemVer *semver.Version) {
	defer close(resultChannel)

	latest, found, err := updater.DetectLatest(context.Background(), githubRepo)
	if err != nil {
		logger.Warn("error occurred while getting latest version from remote", zap.Error(err))
		return
	}
	if !found {
		logger.Warn("latest version could not be found")
		return
	}

	latestSemVer, err := semver.NewVersion(latest.Version())
	if err != nil {
		logger.Error("failed to parse latest version", zap.Error(err))
		return
	}

	if latestSemVer.LessThanEqual(currentSemVer) {
		logger.Debug("already running the latest version")
		return
	}

	file, err := fs.Create(core.LatestVersionFile())
	if err != nil {
		logger.Error("failed to save latest version", zap.Error(err))
		return
	}
	defer file.Close()

	_, err = file.WriteString(latest.Version())
	if err != nil {
		logger.Error("failed to save latest version", zap.Error(err))
		return
	}

	logger.Info("new version available",
		zap.String("current", currentSemVer.String()),
		zap.String("latest", latest.Version()),
	)
	resultChannel <- latest.Version()
}
