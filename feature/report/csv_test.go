package report_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"account-db-compare/feature/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, samplePasses()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, report.CSVHeader, records[0])
	assert.Equal(t, []string{"aa", "node-1", "10", "1", "10", "1", ""}, records[1])
	assert.Equal(t, []string{"bb", "node-1", "10", "5", "10", "6", "nonce"}, records[2])
	assert.Equal(t, []string{"cc", "node-1", "N/A", "7", "N/A", "7", ""}, records[3])
	assert.Equal(t, []string{"dd", "node-1", "1", "1", "", "", "missing_in_node"}, records[4])
	assert.Equal(t, []string{"ee", "node-1", "", "", "3", "3", "missing_in_archiver"}, records[5])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_WriterError(t *testing.T) {
	err := report.WriteCSV(failingWriter{}, samplePasses())
	assert.ErrorContains(t, err, "disk full")
}
