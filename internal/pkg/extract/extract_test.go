package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTextPlain(t *testing.T) {
	text, mediaType, err := Text([]byte("Meeting at 3pm.\nBring slides."), "Notes.txt")
	require.NoError(t, err)

	assert.Equal(t, "Meeting at 3pm.\nBring slides.", text)
	assert.Contains(t, mediaType, "text/plain")
}

func TestTextEmptyFile(t *testing.T) {
	_, _, err := Text(nil, "empty.txt")
	assert.Error(t, err)
}

func TestTextBinaryFile(t *testing.T) {
	_, _, err := Text([]byte{0x00, 0xff, 0x00, 0xfe}, "photo.bin")
	assert.Error(t, err)
}

func TestTextXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Salary"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Alice"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "100"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	text, _, err := Text(buf.Bytes(), "payroll.xlsx")
	require.NoError(t, err)

	assert.Contains(t, text, "Sheet: Sheet1")
	assert.Contains(t, text, "Name\tSalary")
	assert.Contains(t, text, "Alice\t100")
}

func TestTextCorruptPDF(t *testing.T) {
	_, _, err := Text([]byte("%PDF-1.4 not really a pdf"), "broken.pdf")
	assert.Error(t, err)
}
