package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteAllocationExcel(t *testing.T) {
	report := &AllocationReport{
		Channel:     "google",
		Total:       11,
		GeneratedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Rows: []AllocationRow{
			{SalesPageID: "sales1", Weight: 50, ExactShare: 5.5, FloorCount: 5, Remainder: 0.5, Count: 6, Percentage: 54.55},
			{SalesPageID: "sales2", Weight: 50, ExactShare: 5.5, FloorCount: 5, Remainder: 0.5, Count: 5, Percentage: 45.45},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAllocationExcel(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{allocationSheet}, f.GetSheetList())

	rows, err := f.GetRows(allocationSheet)
	require.NoError(t, err)
	require.Equal(t, "Traffic Allocation Report", rows[0][0])
	require.Equal(t, []string{"Channel:", "google"}, rows[2])

	// title, blank, three meta rows, blank, header
	header := rows[6]
	require.Equal(t, allocationHeaders, header)
	require.Equal(t, "sales1", rows[7][0])
	require.Equal(t, "6", rows[7][5])
	require.Equal(t, "54.55%", rows[7][6])
	require.Equal(t, "sales2", rows[8][0])

	total, err := f.GetCellValue(allocationSheet, "F10")
	require.NoError(t, err)
	require.Equal(t, "11", total)
}

func TestWriteAllocationExcel_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAllocationExcel(&buf, &AllocationReport{Channel: "other", Total: 1}))
	require.NotZero(t, buf.Len())
}
