package xlsxexport

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrWorkbook reports a failure while building the workbook.
var ErrWorkbook = errors.New("build workbook")

// ErrCellTooLong reports text longer than a worksheet cell can hold.
// excelize would otherwise truncate it.
var ErrCellTooLong = fmt.Errorf("%w: cell exceeds %d characters", ErrWorkbook, excelize.TotalCellChars)
