package types

import "errors"

var (
	ErrDatasetNotFound         = errors.New("dataset not found")
	ErrMissingColumn           = errors.New("required column missing from dataset")
	ErrInvalidDate             = errors.New("date does not parse under the day-first convention")
	ErrInvalidNumber           = errors.New("numeric column holds a non-numeric value")
	ErrInconsistentGenderSplit = errors.New("male and female arrivals do not sum to total arrivals")
	ErrUnknownGender           = errors.New("unknown gender")
	ErrUnsupportedSource       = errors.New("unsupported dataset source")
	ErrUnsupportedFormat       = errors.New("unsupported format")
	ErrNoData                  = errors.New("no data for the current selection")
)
