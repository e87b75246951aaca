package csvseries

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse はヘッダーと日付形式の違いを吸収して終値を古い順で返すことを検証します。
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []float64
	}{
		{
			name: "nasdaq export newest first",
			input: "Date,Close/Last,Volume,Open,High,Low\n" +
				"01/03/2025,$243.36,40244110,$243.36,$244.18,$241.89\n" +
				"01/02/2025,$243.85,55740730,$248.93,$249.10,$241.82\n" +
				"12/31/2024,\"$1,250.42\",39480720,$252.44,$253.28,$249.43\n",
			expected: []float64{1250.42, 243.85, 243.36},
		},
		{
			name:     "iso dates with Close column",
			input:    "Date,Open,Close\n2025-01-02,10,11.5\n2025-01-03,11,12.25\n",
			expected: []float64{11.5, 12.25},
		},
		{
			name:     "Closing Price column",
			input:    "Date,Closing Price\n2025-01-03,101\n2025-01-01,100\n",
			expected: []float64{100, 101},
		},
		{
			name:     "Close/Last wins over Close",
			input:    "Date,Close,Close/Last\n2025-01-01,1,2\n",
			expected: []float64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			closes, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, closes)
		})
	}
}

// TestParse_Errors は不正な入力がエラーになることを検証します。
func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr error
	}{
		{"empty file", "", ErrEmpty},
		{"header only", "Date,Close\n", ErrEmpty},
		{"missing date", "Day,Close\n2025-01-01,1\n", ErrMissingColumn},
		{"missing close", "Date,Open\n2025-01-01,1\n", ErrMissingColumn},
		{"only bad date", "Date,Close\n2025/01/01,1\n", ErrEmpty},
		{"only bad price", "Date,Close\n2025-01-01,abc\n", ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			}
		})
	}
}

// TestParse_SkipsMalformedRows は不正な日付・価格・列数の行を捨てて残りを返すことを検証します。
func TestParse_SkipsMalformedRows(t *testing.T) {
	t.Parallel()

	input := "Date,Close/Last,Volume\n" +
		"01/03/2025,$3.00,10\n" +
		"not-a-date,$9.00,10\n" +
		"01/02/2025,N/A,10\n" +
		"01/04/2025,NaN,10\n" +
		"01/05/2025\n" +
		"01/01/2025,\"$1,001.50\",10\n"

	closes, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{1001.5, 3}, closes)
}

// TestParsePoints は日付と終値の組が時系列順で返ることを検証します。
func TestParsePoints(t *testing.T) {
	t.Parallel()

	points, err := ParsePoints(strings.NewReader("Date,Close\n2025-01-02,2\n2025-01-01,1\n"))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-01-01", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 1.0, points[0].Close)
	assert.Equal(t, []float64{1, 2}, Closes(points))
}

// TestLoader_LoadCloses はファイルから終値を読み込めることを検証します。
func TestLoader_LoadCloses(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "HistoricalData_AAPL.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Close/Last\n01/02/2025,$2.00\n01/01/2025,$1.00\n"), 0o600))

	closes, err := NewLoader(path).LoadCloses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, closes)
}

// TestLoader_MissingFile は存在しないファイルでエラーになることを検証します。
func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.csv")).LoadCloses(context.Background())
	assert.Error(t, err)
}
