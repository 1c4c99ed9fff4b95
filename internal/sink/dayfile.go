package sink

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/courtlivestream/boardwatch/internal/types"
)

const (
	dayLayout    = "2006_01_02"
	backupLayout = "2006_01_02_15_04"
)

// DayFile accumulates every cycle's records into one CSV per calendar day,
// laid out as <base>/<site>_<YYYY_MM_DD>/<site>_<YYYY_MM_DD>.csv. Each store
// reads the existing file back, appends the new rows and rewrites the whole
// file, so a crash mid-run never leaves a half-appended tail. Timestamped
// backup snapshots land next to the main file.
type DayFile struct {
	baseDir string
	site    string
	columns []string
	mu      sync.Mutex
	folder  string
	path    string
	rows    int
	logger  *slog.Logger
	now     func() time.Time
}

// NewDayFile creates a day-file sink for one site.
func NewDayFile(baseDir, site string, columns []string, logger *slog.Logger) *DayFile {
	s := &DayFile{
		baseDir: baseDir,
		site:    site,
		columns: columns,
		logger:  logger.With("component", "dayfile_sink", "site", site),
		now:     time.Now,
	}
	s.folder = s.folderFor(s.now())
	s.path = s.fileFor(s.folder)
	return s
}

func (s *DayFile) Name() string { return "dayfile" }

// Path returns the current main file path.
func (s *DayFile) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Rows returns how many data rows the current day file holds.
func (s *DayFile) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// Store appends a cycle's records to the day file.
func (s *DayFile) Store(records []*types.DisplayRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.folder, 0o755); err != nil {
		return &types.SinkError{Sink: s.Name(), Path: s.folder, Err: err}
	}

	existing, err := s.readRows(s.path)
	if err != nil {
		return &types.SinkError{Sink: s.Name(), Path: s.path, Err: err}
	}

	for _, rec := range records {
		existing = append(existing, rec.Row(s.columns))
	}

	if err := s.writeRows(s.path, existing); err != nil {
		return &types.SinkError{Sink: s.Name(), Path: s.path, Err: err}
	}

	s.rows = len(existing)
	s.logger.Debug("records appended",
		"added", len(records),
		"total", s.rows,
		"file", filepath.Base(s.path),
	)
	return nil
}

// Backup snapshots the current day file into a timestamped sibling. A missing
// or still-empty main file is not an error worth a cycle; the caller gets the
// sentinel and logs it.
func (s *DayFile) Backup() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return 0, types.ErrDayFileMissing
	}

	rows, err := s.readRows(s.path)
	if err != nil {
		return 0, &types.SinkError{Sink: s.Name(), Path: s.path, Err: err}
	}
	if len(rows) == 0 {
		return 0, types.ErrDayFileEmpty
	}

	name := fmt.Sprintf("%s_bk_%s.csv", s.site, s.now().Format(backupLayout))
	backupPath := filepath.Join(s.folder, name)
	if err := s.writeRows(backupPath, rows); err != nil {
		return 0, &types.SinkError{Sink: s.Name(), Path: backupPath, Err: err}
	}

	s.logger.Info("backup created", "file", name, "rows", len(rows))
	return len(rows), nil
}

// Rollover checks whether the calendar day changed since the last store and,
// if so, switches to the new day's folder and file. Returns true on a switch.
func (s *DayFile) Rollover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderFor(s.now())
	if folder == s.folder {
		return false
	}

	s.logger.Info("date changed, starting new day file",
		"old", filepath.Base(s.folder),
		"new", filepath.Base(folder),
	)
	s.folder = folder
	s.path = s.fileFor(folder)
	s.rows = 0
	return true
}

func (s *DayFile) Close() error {
	s.logger.Info("day file sink closing", "rows", s.rows, "file", filepath.Base(s.path))
	return nil
}

func (s *DayFile) folderFor(t time.Time) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_%s", s.site, t.Format(dayLayout)))
}

func (s *DayFile) fileFor(folder string) string {
	return filepath.Join(folder, filepath.Base(folder)+".csv")
}

// readRows loads the data rows of a day file, dropping the header. A missing
// file surfaces as os.IsNotExist for Backup; Store treats it as day one.
func (s *DayFile) readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read day file: %w", err)
	}
	if len(all) <= 1 {
		return nil, nil
	}
	return all[1:], nil
}

// writeRows rewrites a day file: header, then every data row.
func (s *DayFile) writeRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
