package gacha

import "fmt"

// DataLoadError reports a menu source that could not be read or parsed.
// It is fatal to catalog construction, no partial catalog is ever returned.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load menu data from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError wraps err as a DataLoadError for the given source
func NewDataLoadError(source string, err error) error {
	return &DataLoadError{Source: source, Err: err}
}
