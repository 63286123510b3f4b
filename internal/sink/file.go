package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/haxomatic/internal/analysis"
	"github.com/muurk/haxomatic/internal/logging"
)

// DissectSuffix is the file name ending used for decrypted application dumps.
const DissectSuffix = "app_1.00_decrypted.bin"

// FileSink writes artifacts as text files derived from the image path.
type FileSink struct {
	imagePath string
	outputDir string
}

// NewFileSink creates a sink for the image at imagePath. When outputDir is
// empty, artifacts are written next to the image.
func NewFileSink(imagePath, outputDir string) *FileSink {
	return &FileSink{imagePath: imagePath, outputDir: outputDir}
}

// ArtifactPath returns the path used for the named artifact.
func (s *FileSink) ArtifactPath(name string) string {
	base := s.imagePath
	if s.outputDir != "" {
		base = filepath.Join(s.outputDir, filepath.Base(s.imagePath))
	}
	if strings.HasSuffix(base, DissectSuffix) {
		return strings.TrimSuffix(base, DissectSuffix) + name
	}
	return base + "_" + name
}

// Exists implements analysis.Sink
func (s *FileSink) Exists() (bool, error) {
	_, err := os.Stat(s.ArtifactPath(FinishArtifact))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Emit implements analysis.Sink. Every artifact is staged before any is
// moved into place, and a failure removes whatever was already written.
func (s *FileSink) Emit(result *analysis.RunResult) error {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	artifacts := Artifacts(result)
	staged := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		tmpPath := s.ArtifactPath(a.Name) + ".tmp"
		if err := os.WriteFile(tmpPath, []byte(a.Content), 0644); err != nil {
			removeAll(staged)
			return fmt.Errorf("failed to write %s: %w", tmpPath, err)
		}
		staged = append(staged, tmpPath)
	}

	// The finish artifact is renamed last so it only exists once the
	// others are in place.
	written := make([]string, 0, len(artifacts))
	for i, a := range artifacts {
		path := s.ArtifactPath(a.Name)
		if err := os.Rename(staged[i], path); err != nil {
			removeAll(staged[i:])
			removeAll(written)
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
		logging.Info("Wrote artifact", zap.String("path", path), zap.String("value", a.Content))
	}
	return nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
