package rowsource

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestXLSXReader(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"externalId", "invoiceNumber", "netAmount"},
		{"inv-1", "00001", "100.10"},
		{"inv-2", "1002", "50"},
	})

	rows, err := (&XLSXReader{}).Read(r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "inv-1", rows[0].Value("externalId"))
	assert.Equal(t, "00001", rows[0].Value("invoiceNumber"), "text cells keep their zeros")
	assert.Equal(t, "100.10", rows[0].Value("netAmount"))
}

func TestXLSXReader_SkipsTrailingBlankRows(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"externalId", "itemText"},
		{"inv-1", "widget"},
		{"", ""},
	})

	rows, err := (&XLSXReader{}).Read(r)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestXLSXReader_NotAWorkbook(t *testing.T) {
	_, err := (&XLSXReader{}).Read(bytes.NewReader([]byte("definitely not a zip")))
	require.Error(t, err)
}
