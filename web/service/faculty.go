package service

import (
	_ "embed"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Faculty is one faculty with its departments, in catalog order. The list is
// reference data, loaded once from the embedded catalog file.
type Faculty struct {
	Name        string   `toml:"name"`
	Departments []string `toml:"departments"`
}

type facultyCatalog struct {
	Faculties []Faculty `toml:"faculty"`
}

//go:embed faculties.toml
var facultiesTOML []byte

var (
	facultiesOnce sync.Once
	faculties     []Faculty
	facultiesErr  error
)

type FacultyService struct{}

// GetFaculties returns the ordered faculty catalog.
func (s *FacultyService) GetFaculties() ([]Faculty, error) {
	facultiesOnce.Do(func() {
		var catalog facultyCatalog
		facultiesErr = toml.Unmarshal(facultiesTOML, &catalog)
		faculties = catalog.Faculties
	})
	return faculties, facultiesErr
}

// GetDepartments returns the departments of the named faculty, or nil when
// the faculty is not in the catalog.
func (s *FacultyService) GetDepartments(name string) []string {
	all, err := s.GetFaculties()
	if err != nil {
		return nil
	}
	for _, faculty := range all {
		if faculty.Name == name {
			return faculty.Departments
		}
	}
	return nil
}
