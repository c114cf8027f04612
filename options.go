package sheethtml

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/aerissecure/sheethtml/markup"
	"github.com/aerissecure/sheethtml/xlsx"
)

// Options holds configuration for a Converter.
type Options struct {
	beautify       bool
	debug          bool
	backend        xlsx.Backend
	sheet          string
	wrapAt         int
	inclusiveSpans bool
	logger         logrus.FieldLogger
}

func defaultOptions() *Options {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Options{
		backend: xlsx.DefaultBackend,
		wrapAt:  markup.DefaultWrapAt,
		logger:  l,
	}
}

// Option configures a Converter.
type Option func(*Options)

// WithBeautify indents and wraps the output instead of emitting one line.
func WithBeautify(beautify bool) Option {
	return func(o *Options) { o.beautify = beautify }
}

// WithDebug draws a 1px solid black border around every cell.
func WithDebug(debug bool) Option {
	return func(o *Options) { o.debug = debug }
}

// WithBackend selects the spreadsheet decoder (default: unioffice).
func WithBackend(b xlsx.Backend) Option {
	return func(o *Options) { o.backend = b }
}

// WithSheet converts the named worksheet instead of the first one.
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithWrapAt sets the line width used when beautifying (default: 120).
func WithWrapAt(width int) Option {
	return func(o *Options) { o.wrapAt = width }
}

// WithInclusiveSpans counts both ends of a merge range for colspan and rowspan,
// so A1:B1 renders colspan="2". By default a span is end minus start, clamped
// to at least 1, and A1:B1 renders colspan="1".
func WithInclusiveSpans(inclusive bool) Option {
	return func(o *Options) { o.inclusiveSpans = inclusive }
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
