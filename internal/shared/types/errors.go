package types

import "errors"

var (
	ErrFileNotFound          = errors.New("dataset file not found")
	ErrFieldNotFound         = errors.New("field not found")
	ErrMissingProductColumn  = errors.New("dataset has no product column")
	ErrUnsupportedReportType = errors.New("unsupported report type")
)
