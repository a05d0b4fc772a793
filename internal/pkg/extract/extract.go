package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// Text extracts plain text from an uploaded file. The media type is sniffed
// from the content; nameHint only helps when sniffing is inconclusive.
// Failures are per file and reported to the caller, which skips the file and
// continues the batch.
func Text(data []byte, nameHint string) (text string, mediaType string, err error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty file")
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/pdf"):
		text, err = pdfText(data)
	case mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
		strings.HasSuffix(strings.ToLower(nameHint), ".xlsx"):
		text, err = xlsxText(data)
	default:
		text, err = plainText(data)
	}
	if err != nil {
		return "", "", err
	}
	return text, mtype.String(), nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	return string(out), nil
}

func xlsxText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx failed: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read xlsx sheet %q failed: %w", sheet, err)
		}
		b.WriteString("Sheet: " + sheet + "\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not text")
	}
	return string(data), nil
}
