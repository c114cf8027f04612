// Package sheethtml converts a spreadsheet worksheet into an HTML <table>
// with the cell formatting carried over as inline CSS.
package sheethtml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/aerissecure/sheethtml/markup"
	"github.com/aerissecure/sheethtml/xlsx"
)

// Converter renders worksheets with a fixed set of options. It holds no
// mutable state and may be shared between goroutines.
type Converter struct {
	opts *Options
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Converter{opts: o}
}

// Convert decodes the workbook in r and renders its selected worksheet.
func (c *Converter) Convert(r io.ReaderAt, size int64) (string, error) {
	log := c.opts.logger.WithFields(logrus.Fields{
		"backend": c.opts.backend,
		"sheet":   c.opts.sheet,
	})
	log.WithField("size", size).Debug("Decoding workbook.")

	ws, err := xlsx.Open(r, size, c.opts.backend, c.opts.sheet)
	if err != nil {
		return "", err
	}
	return c.ConvertWorksheet(ws)
}

// ConvertReader reads the whole workbook from r before converting it.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read workbook: %w", err)
	}
	return c.Convert(bytes.NewReader(data), int64(len(data)))
}

// ConvertFile converts the workbook stored at path.
func (c *Converter) ConvertFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return c.Convert(f, info.Size())
}

// ConvertWorksheet renders an already decoded worksheet and normalises the
// result. No partial output is returned on error.
func (c *Converter) ConvertWorksheet(ws xlsx.Worksheet) (string, error) {
	log := c.opts.logger
	if maxCol, maxRow, ok := ws.Dimension(); ok {
		log = log.WithFields(logrus.Fields{
			"columns": maxCol,
			"rows":    maxRow,
			"merges":  len(ws.MergedRanges()),
		})
	}

	raw, err := xlsx.Render(ws, xlsx.RenderOptions{
		Debug:          c.opts.debug,
		InclusiveSpans: c.opts.inclusiveSpans,
	})
	if err != nil {
		return "", err
	}
	log.WithField("bytes", len(raw)).Debug("Rendered table.")

	out, err := markup.Normalize(raw, markup.Options{
		Beautify: c.opts.beautify,
		WrapAt:   c.opts.wrapAt,
	})
	if err != nil {
		return "", err
	}
	log.WithField("bytes", len(out)).Debug("Normalized markup.")
	return out, nil
}

// XLSXToHTML converts the first worksheet of the workbook in r using the
// default options.
func XLSXToHTML(r io.ReaderAt, size int64) (string, error) {
	return New().Convert(r, size)
}
