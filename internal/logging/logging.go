// Package logging builds the CLI logger from its configured level and format.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats accepted by GetFormatter.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatJSONPretty = "json-pretty"
)

// GetLevel maps a level name to a logrus level. The empty string means info.
func GetLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.DebugLevel, fmt.Errorf("invalid log level: %v", level)
	}
}

// ValidFormat reports whether format names a known formatter.
func ValidFormat(format string) bool {
	switch format {
	case "", FormatText, FormatJSON, FormatJSONPretty:
		return true
	}
	return false
}

// GetFormatter returns the formatter for format. Unknown formats get text.
func GetFormatter(format string) logrus.Formatter {
	switch format {
	case FormatJSON:
		return &logrus.JSONFormatter{}
	case FormatJSONPretty:
		return &logrus.JSONFormatter{PrettyPrint: true}
	default:
		return &textFormatter{}
	}
}

// New returns a logger writing to w.
func New(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(GetFormatter(format))
	return l, nil
}

// textFormatter writes "[LEVEL] message" followed by one "key = value" line
// per field, sorted by key.
type textFormatter struct{}

func (*textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := e.Data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fmt.Fprintf(b, "  %s = %v\n", k, v)
	}
	return b.Bytes(), nil
}
