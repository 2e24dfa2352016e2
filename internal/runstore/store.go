// Package runstore manages the per-run directory tree backing report
// generation. Every upload gets an isolated run directory keyed by a unique
// id, so concurrent requests never share mutable state. A sweep removes runs
// whose artifacts have outlived the retention window.
package runstore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open when a run id is unknown, malformed, or
// already swept.
var ErrNotFound = errors.New("run not found")

// DefaultRetention is how long idle runs are kept, measured from the run
// directory's last modification time.
const DefaultRetention = 6 * time.Hour

const (
	inputName    = "input.csv"
	reportName   = "report.pdf"
	workbookName = "results.xlsx"
	templateName = "template.csv"
)

// TemplateCSV is the canned example dataset served by the /template route.
const TemplateCSV = "sample_id,test_name,value,lower_limit,upper_limit,unit\n" +
	"DUT_001,Output Power,-12.4,-15,-10,dBm\n"

// Run ids look like 20250828_141503_1a2b3c4d. The pattern doubles as a path
// traversal guard for ids arriving from the URL.
var idPattern = regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{8}$`)

// Store owns a root directory of run directories.
type Store struct {
	root      string
	retention time.Duration
}

// Run is a handle to one run directory.
type Run struct {
	ID  string
	Dir string
}

// RunInfo describes a stored run for diagnostics.
type RunInfo struct {
	ID       string
	Modified time.Time
	Age      time.Duration
}

// New creates the root directory if needed and returns a Store. A zero or
// negative retention falls back to DefaultRetention.
func New(root string, retention time.Duration) (*Store, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create run root: %w", err)
	}
	return &Store{root: root, retention: retention}, nil
}

// Retention reports the configured retention window.
func (s *Store) Retention() time.Duration {
	return s.retention
}

// Create allocates a fresh run directory with a timestamp-plus-random id.
func (s *Store) Create() (Run, error) {
	u := uuid.New()
	id := time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(u[:])[:8]
	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Run{}, fmt.Errorf("create run dir: %w", err)
	}
	return Run{ID: id, Dir: dir}, nil
}

// Open returns a handle to an existing run, or ErrNotFound when the id is
// malformed or the directory no longer exists.
func (s *Store) Open(id string) (Run, error) {
	if !idPattern.MatchString(id) {
		return Run{}, ErrNotFound
	}
	dir := filepath.Join(s.root, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Run{}, ErrNotFound
	}
	return Run{ID: id, Dir: dir}, nil
}

// Sweep deletes run directories whose last modification time is older than
// the retention window and returns how many were removed. Files in the root
// (the template CSV) are left alone.
func (s *Store) Sweep() (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("read run root: %w", err)
	}

	cutoff := time.Now().Add(-s.retention)
	deleted := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			continue
		}
		deleted++
	}
	return deleted, nil
}

// Template returns the template CSV bytes, writing the file on first use so
// repeated requests serve identical content.
func (s *Store) Template() ([]byte, error) {
	path := filepath.Join(s.root, templateName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(TemplateCSV), 0o644); err != nil {
			return nil, fmt.Errorf("write template: %w", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return data, nil
}

// Snapshot lists the stored runs, newest first by id. Used by the debug page.
func (s *Store) Snapshot() []RunInfo {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	now := time.Now()
	infos := make([]RunInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !idPattern.MatchString(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, RunInfo{
			ID:       entry.Name(),
			Modified: fi.ModTime(),
			Age:      now.Sub(fi.ModTime()).Truncate(time.Second),
		})
	}
	return infos
}

// InputPath is where the uploaded CSV is stored.
func (r Run) InputPath() string { return filepath.Join(r.Dir, inputName) }

// ReportPath is where the generated PDF is stored.
func (r Run) ReportPath() string { return filepath.Join(r.Dir, reportName) }

// WorkbookPath is where the generated XLSX results workbook is stored.
func (r Run) WorkbookPath() string { return filepath.Join(r.Dir, workbookName) }
