package reading

import (
	"encoding/csv"
	"os"
	"path/filepath"
)

// ExportTitle opens the header row of every exported reading
const ExportTitle = "PyTarot reading"

const bom = "\ufeff"

// Rows returns the reading as export rows: a header with the spread name,
// timestamp and query, then one row per placement in deal order
func (s *Session) Rows() ([][]string, error) {
	if s.spread == nil {
		return nil, &ExportError{Err: ErrNoActiveSpread}
	}

	rows := make([][]string, 0, s.spread.Len()+1)
	rows = append(rows, []string{ExportTitle, s.spread.Name, s.timestamp, s.query})
	for _, pl := range s.spread.Placements {
		row := []string{pl.Label, pl.Card.String()}
		if s.cfg.IncludeNotes && pl.Card.Note != "" {
			row = append(row, pl.Card.Note)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Export writes the reading to path as CSV. The file is replaced only once
// fully written; an empty path means the querent cancelled.
func (s *Session) Export(path string) error {
	if path == "" {
		return &ExportError{Err: ErrExportCancelled}
	}
	rows, err := s.Rows()
	if err != nil {
		return &ExportError{Path: path, Err: ErrNoActiveSpread}
	}

	if err := writeAtomic(path, rows); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	s.exported = true
	s.logger.Info("reading exported", "path", path, "cards", len(rows)-1)
	return nil
}

func writeAtomic(path string, rows [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".querent-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(bom); err != nil {
		return err
	}
	w := csv.NewWriter(tmp)
	w.UseCRLF = true
	if err = w.WriteAll(rows); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
