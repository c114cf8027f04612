package sheethtml

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/sheethtml/markup"
	"github.com/aerissecure/sheethtml/xlsx"
)

func sampleWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	f.SetCellValue("Sheet1", "A1", "Merged")
	f.SetCellValue("Sheet1", "A2", "left")
	f.SetCellValue("Sheet1", "B2", "right")
	require.NoError(t, f.MergeCell("Sheet1", "A1", "B1"))

	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	f.SetCellValue("Other", "A1", "other sheet")
	return f
}

func sampleBytes(t *testing.T) []byte {
	t.Helper()
	buf, err := sampleWorkbook(t).WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXToHTML(t *testing.T) {
	data := sampleBytes(t)

	out, err := XLSXToHTML(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<table style="width:100%; table-layout:fixed; border-collapse:collapse"><tbody>`), out)
	assert.True(t, strings.HasSuffix(out, "</tbody></table>"))
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, ">Merged</td>")
	assert.NotContains(t, out, "other sheet")
	assert.Equal(t, 3, strings.Count(out, "<td "))
}

func TestConverter_Options(t *testing.T) {
	data := sampleBytes(t)

	for _, backend := range []xlsx.Backend{xlsx.BackendUnioffice, xlsx.BackendExcelize} {
		t.Run(string(backend), func(t *testing.T) {
			c := New(
				WithBackend(backend),
				WithDebug(true),
				WithInclusiveSpans(true),
				WithBeautify(true),
			)
			out, err := c.Convert(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)
			assert.Contains(t, out, "\n")
			assert.Contains(t, out, `colspan="2"`)
			assert.Contains(t, out, "border: 1px solid black;")

			out, err = New(WithBackend(backend), WithSheet("Other")).Convert(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)
			assert.Contains(t, out, ">other sheet</td>")
		})
	}
}

func TestConverter_ConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, sampleWorkbook(t).SaveAs(path))

	fromFile, err := New().ConvertFile(path)
	require.NoError(t, err)

	data := sampleBytes(t)
	fromReader, err := New().ConvertReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromReader)

	_, err = New().ConvertFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestConverter_Errors(t *testing.T) {
	_, err := New().ConvertReader(strings.NewReader("garbage"))
	var decodeErr *xlsx.InputDecodeError
	assert.True(t, errors.As(err, &decodeErr))

	_, err = New().ConvertWorksheet(xlsx.NewSheet("empty"))
	assert.ErrorIs(t, err, xlsx.ErrEmptyWorksheet)

	data := sampleBytes(t)
	_, err = New(WithSheet("Nope")).Convert(bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, xlsx.ErrEmptyWorksheet)
}

func TestConverter_ConvertWorksheet(t *testing.T) {
	ws := xlsx.NewSheet("Sheet1")
	ws.Set(1, 1, "A", xlsx.CellStyle{})
	ws.Set(1, 2, "B", xlsx.CellStyle{})

	out, err := New().ConvertWorksheet(ws)
	require.NoError(t, err)

	raw, err := xlsx.Render(ws, xlsx.RenderOptions{})
	require.NoError(t, err)
	normalized, err := markup.Normalize(raw, markup.Options{})
	require.NoError(t, err)
	assert.Equal(t, normalized, out)
}

func TestConverter_Logging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ws := xlsx.NewSheet("Sheet1")
	ws.Set(2, 3, "x", xlsx.CellStyle{})
	_, err := New(WithLogger(logger)).ConvertWorksheet(ws)
	require.NoError(t, err)

	require.NotEmpty(t, hook.AllEntries())
	entry := hook.AllEntries()[0]
	assert.Equal(t, "Rendered table.", entry.Message)
	assert.Equal(t, 3, entry.Data["columns"])
	assert.Equal(t, 2, entry.Data["rows"])
	assert.Equal(t, "Normalized markup.", hook.LastEntry().Message)
}
