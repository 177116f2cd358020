package catalog

import "fmt"

// DatasetError reports a catalog document that is missing, unreadable or
// structurally invalid. It is fatal for the process that owns the catalog.
type DatasetError struct {
	Err  error
	Path string
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// MappingBuildError reports that the symptom to remedy mappings could not be
// derived from an otherwise valid catalog.
type MappingBuildError struct {
	SymptomID string
	Reason    string
}

func (e *MappingBuildError) Error() string {
	if e.SymptomID == "" {
		return "build mappings: " + e.Reason
	}
	return fmt.Sprintf("build mappings: symptom %s: %s", e.SymptomID, e.Reason)
}
