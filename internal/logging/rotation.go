package logging

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// filePrefix marks log files owned by alertdeck; rotation leaves every
// other file in the directory alone.
const filePrefix = "alertdeck_"

type logFile struct {
	path    string
	modTime time.Time
}

// rotate keeps the newest maxFiles alertdeck logs in dir and removes the
// rest. A maxFiles of zero or less keeps everything.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || filepath.Ext(name) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	if len(files) <= maxFiles {
		return nil
	}
	slices.SortFunc(files, func(a, b logFile) int {
		if c := b.modTime.Compare(a.modTime); c != 0 {
			return c
		}
		return strings.Compare(b.path, a.path)
	})
	var errs []error
	for _, f := range files[maxFiles:] {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
