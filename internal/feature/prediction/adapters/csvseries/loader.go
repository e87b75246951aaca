// Package csvseries loads historical closing prices from CSV exports.
package csvseries

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"fin_backend/internal/feature/prediction/usecase"
)

// closeColumns are the accepted headers for the closing price, in priority order.
var closeColumns = []string{"Close/Last", "Close", "Closing Price"}

var dateLayouts = []string{"01/02/2006", "2006-01-02"}

var (
	// ErrMissingColumn is returned when the header lacks Date or a close column.
	ErrMissingColumn = errors.New("csvseries: missing required column")
	// ErrEmpty is returned when the file has no data rows.
	ErrEmpty = errors.New("csvseries: no rows")
)

// Loader reads a HistoricalData-style CSV file.
type Loader struct {
	path string
}

var _ usecase.SeriesLoader = (*Loader)(nil)

// NewLoader creates a Loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// LoadCloses returns the closing prices in chronological order.
func (l *Loader) LoadCloses(ctx context.Context) ([]float64, error) {
	points, err := l.LoadPoints(ctx)
	if err != nil {
		return nil, err
	}
	return Closes(points), nil
}

// LoadPoints returns dated closes in chronological order.
func (l *Loader) LoadPoints(ctx context.Context) ([]Point, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", l.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close series file", "path", l.path, "error", err)
		}
	}()
	return ParsePoints(f)
}

// Point is one dated close.
type Point struct {
	Date  time.Time
	Close float64
}

// Closes extracts the close column from points.
func Closes(points []Point) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes
}

// Parse reads CSV rows from r and returns closes sorted oldest first.
func Parse(r io.Reader) ([]float64, error) {
	points, err := ParsePoints(r)
	if err != nil {
		return nil, err
	}
	return Closes(points), nil
}

// ParsePoints reads CSV rows from r and returns points sorted oldest first.
// Rows with an unparsable date or price are skipped; ErrEmpty is returned
// when no valid row remains.
func ParsePoints(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx, closeIdx := -1, -1
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if i, ok := cols["Date"]; ok {
		dateIdx = i
	}
	for _, name := range closeColumns {
		if i, ok := cols[name]; ok {
			closeIdx = i
			break
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return nil, fmt.Errorf("%w: header %v", ErrMissingColumn, header)
	}

	var (
		points  []Point
		skipped int
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= dateIdx || len(rec) <= closeIdx {
			skipped++
			continue
		}

		d, err := parseDate(rec[dateIdx])
		if err != nil {
			skipped++
			continue
		}
		c, err := parsePrice(rec[closeIdx])
		if err != nil {
			skipped++
			continue
		}
		points = append(points, Point{Date: d, Close: c})
	}
	if skipped > 0 {
		slog.Warn("skipped malformed series rows", "skipped", skipped, "kept", len(points))
	}
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	// エクスポートは新しい順のことが多いので日付で並べ直す
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", raw)
}

func parsePrice(raw string) (float64, error) {
	s := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse close %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite close %q", raw)
	}
	return v, nil
}
