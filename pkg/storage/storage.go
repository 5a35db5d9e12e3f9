package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dtnitsch/sso-scraper/models"
)

var (
	StatutesHeader   = []string{"Statute Name"}
	ProvisionsHeader = []string{"Statute", "Number", "Title", "URL"}
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// ProvisionRow is one line of the provisions table.
type ProvisionRow struct {
	Statute   string
	Provision models.Provision
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	err := os.WriteFile(filePath, content, 0644)
	if err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}

// WriteStatutes writes the statute list: a header and one name per row.
func (s *Storage) WriteStatutes(filePath string, statutes []string) error {
	return writeCSV(filePath, func(w *csv.Writer) error {
		if err := w.Write(StatutesHeader); err != nil {
			return err
		}
		for _, name := range statutes {
			if err := w.Write([]string{name}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteProvisions writes the provisions table. Content is only written,
// as a fifth column, when includeContent is set.
func (s *Storage) WriteProvisions(filePath string, rows []ProvisionRow, includeContent bool) error {
	return writeCSV(filePath, func(w *csv.Writer) error {
		return encodeProvisions(w, rows, includeContent)
	})
}

// encodeProvisions writes the provisions header and rows to w without flushing.
func encodeProvisions(w *csv.Writer, rows []ProvisionRow, includeContent bool) error {
	header := ProvisionsHeader
	if includeContent {
		header = append(append([]string{}, ProvisionsHeader...), "Content")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Statute, r.Provision.Number, r.Provision.Title, r.Provision.URL}
		if includeContent {
			record = append(record, r.Provision.Content)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(filePath string, write func(w *csv.Writer) error) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", filePath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", filePath, cerr)
		}
	}()

	if err := encode(f, write); err != nil {
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	return nil
}

func encode(out io.Writer, write func(w *csv.Writer) error) error {
	w := csv.NewWriter(out)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
