package xlsx

import (
	"errors"
	"fmt"
)

// ErrEmptyWorksheet indicates the workbook has no usable sheet or the sheet
// has no addressable dimension.
var ErrEmptyWorksheet = errors.New("empty worksheet")

// InputDecodeError is returned when a provider cannot decode the spreadsheet
// container. The provider's error is kept as is and exposed through Unwrap.
type InputDecodeError struct {
	Backend Backend
	Err     error
}

func (e *InputDecodeError) Error() string {
	return fmt.Sprintf("decode spreadsheet (%s): %v", e.Backend, e.Err)
}

func (e *InputDecodeError) Unwrap() error {
	return e.Err
}
