package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFaculties(t *testing.T) {
	service := FacultyService{}

	faculties, err := service.GetFaculties()
	assert.NoError(t, err)
	assert.NotEmpty(t, faculties)

	// Catalog order is preserved
	assert.Equal(t, "Tıp Fakültesi", faculties[0].Name)
	assert.Equal(t, []string{"TIP"}, faculties[0].Departments)

	for _, faculty := range faculties {
		assert.NotEmpty(t, faculty.Name)
		assert.NotEmpty(t, faculty.Departments)
	}
}

func TestGetDepartments(t *testing.T) {
	service := FacultyService{}

	departments := service.GetDepartments("Tıp Fakültesi")
	assert.Equal(t, []string{"TIP"}, departments)

	assert.Nil(t, service.GetDepartments("No Such Faculty"))
}
