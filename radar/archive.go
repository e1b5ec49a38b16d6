package radar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MoveFileToDir moves a processed export into dstDir, creating the directory
// if needed. When a file with the same base name already sits in dstDir, the
// moved file gets a nanosecond suffix instead of clobbering it.
func MoveFileToDir(srcPath string, dstDir string) (string, error) {
	if strings.TrimSpace(dstDir) == "" {
		return "", fmt.Errorf("dstDir is empty")
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", err
	}

	dstPath := filepath.Join(dstDir, filepath.Base(srcPath))
	if _, err := os.Stat(dstPath); err == nil {
		dstPath = collisionFreePath(dstDir, filepath.Base(srcPath))
	}

	if err := os.Rename(srcPath, dstPath); err == nil {
		return dstPath, nil
	}

	// Rename fails across devices; fall back to copy + remove. Exports are
	// small enough to buffer whole.
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}
	if err := os.Remove(srcPath); err != nil {
		return "", err
	}
	return dstPath, nil
}

func collisionFreePath(dir string, base string) string {
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, time.Now().UnixNano(), ext))
}
