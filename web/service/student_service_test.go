package service

import (
	"os"
	"testing"

	"destek-ui/database"
	"destek-ui/database/model"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func str(s string) *string { return &s }

func TestAddStudent(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}

	// Blank optional fields are stored as NULL, an invalid status falls
	// back to unresolved.
	student, err := service.AddStudent(StudentFields{
		Name:   "  Ayşe Yılmaz  ",
		Phone:  "   ",
		Status: "done",
	}, "mehmet", "")
	assert.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", student.Name)
	assert.Nil(t, student.Phone)
	assert.Nil(t, student.SchoolNo)
	assert.Equal(t, model.Unresolved, student.Status)
	assert.Equal(t, "mehmet", student.AddedBy)

	// A non-blank first note lands in the thread with the creator as author
	withNote, err := service.AddStudent(StudentFields{
		Name:     "Ali Demir",
		SchoolNo: "20230042",
		Status:   "resolved",
	}, "zeynep", "  printer access fixed  ")
	assert.NoError(t, err)
	assert.Equal(t, model.Resolved, withNote.Status)

	notes, err := service.GetNotes(withNote.Id)
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "printer access fixed", notes[0].Text)
	assert.Equal(t, "zeynep", notes[0].Author)

	// A whitespace-only name is rejected
	_, err = service.AddStudent(StudentFields{Name: "   "}, "mehmet", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGetStudentsFilters(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	seed := []StudentFields{
		{Name: "Ayşe Yılmaz", Phone: "05551112233", Faculty: "Mühendislik Fakültesi", Department: "Bilgisayar Mühendisliği"},
		{Name: "Ali Demir", SchoolNo: "20230042", Status: "resolved", Faculty: "Tıp Fakültesi"},
		{Name: "Fatma Kaya", Phone: "05559998877", Faculty: "Mühendislik Fakültesi", Department: "Makine Mühendisliği"},
	}
	creators := []string{"mehmet", "zeynep", "mehmet"}
	for i, fields := range seed {
		_, err := service.AddStudent(fields, creators[i], "")
		assert.NoError(t, err)
	}

	// Empty filter returns everything, newest first
	students, err := service.GetStudents(StudentFilter{})
	assert.NoError(t, err)
	assert.Len(t, students, 3)
	assert.Equal(t, "Fatma Kaya", students[0].Name)

	// Q matches name, phone or school number
	students, _ = service.GetStudents(StudentFilter{Q: "Ayşe"})
	assert.Len(t, students, 1)
	students, _ = service.GetStudents(StudentFilter{Q: "20230042"})
	assert.Len(t, students, 1)
	assert.Equal(t, "Ali Demir", students[0].Name)
	students, _ = service.GetStudents(StudentFilter{Q: "5559998"})
	assert.Len(t, students, 1)
	assert.Equal(t, "Fatma Kaya", students[0].Name)

	// Filters combine with AND
	students, _ = service.GetStudents(StudentFilter{Faculty: "Mühendislik", AddedBy: "mehmet"})
	assert.Len(t, students, 2)
	students, _ = service.GetStudents(StudentFilter{Faculty: "Mühendislik", Q: "Fatma"})
	assert.Len(t, students, 1)

	// An unknown status value is ignored rather than matching nothing
	students, _ = service.GetStudents(StudentFilter{Status: "whatever"})
	assert.Len(t, students, 3)
	students, _ = service.GetStudents(StudentFilter{Status: "resolved"})
	assert.Len(t, students, 1)

	// The added_by selector options are distinct and sorted
	options, err := service.GetAddedByOptions()
	assert.NoError(t, err)
	assert.Equal(t, []string{"mehmet", "zeynep"}, options)
}

func TestUpdateStudentPartial(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	student, err := service.AddStudent(StudentFields{
		Name:  "Ayşe Yılmaz",
		Phone: "05551112233",
	}, "mehmet", "")
	assert.NoError(t, err)

	// Omitted fields stay untouched
	err = service.UpdateStudent(student.Id, StudentPatch{Name: str("Ayşe Yılmaz Demir")})
	assert.NoError(t, err)
	updated, _ := service.GetStudent(student.Id)
	assert.Equal(t, "Ayşe Yılmaz Demir", updated.Name)
	assert.NotNil(t, updated.Phone)
	assert.Equal(t, "05551112233", *updated.Phone)

	// A provided blank optional field becomes NULL
	err = service.UpdateStudent(student.Id, StudentPatch{Phone: str("  ")})
	assert.NoError(t, err)
	updated, _ = service.GetStudent(student.Id)
	assert.Nil(t, updated.Phone)

	// An invalid status is ignored, a valid one is applied
	err = service.UpdateStudent(student.Id, StudentPatch{Status: str("closed")})
	assert.NoError(t, err)
	updated, _ = service.GetStudent(student.Id)
	assert.Equal(t, model.Unresolved, updated.Status)

	err = service.UpdateStudent(student.Id, StudentPatch{Status: str("resolved")})
	assert.NoError(t, err)
	updated, _ = service.GetStudent(student.Id)
	assert.Equal(t, model.Resolved, updated.Status)

	// An empty patch is a no-op, not an error
	err = service.UpdateStudent(student.Id, StudentPatch{})
	assert.NoError(t, err)

	// Unknown id
	err = service.UpdateStudent(99999, StudentPatch{Name: str("x")})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestDeleteStudentCascade(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	student, err := service.AddStudent(StudentFields{Name: "Ali Demir"}, "mehmet", "first note")
	assert.NoError(t, err)
	assert.NoError(t, service.AddNote(student.Id, "second note", "zeynep", ""))

	err = service.DeleteStudent(student.Id)
	assert.NoError(t, err)

	_, err = service.GetStudent(student.Id)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	var orphans int64
	database.GetDB().Model(model.StudentNote{}).
		Where("student_id = ?", student.Id).
		Count(&orphans)
	assert.EqualValues(t, 0, orphans)

	err = service.DeleteStudent(student.Id)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAddNote(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	student, err := service.AddStudent(StudentFields{Name: "Fatma Kaya"}, "mehmet", "")
	assert.NoError(t, err)

	// Whitespace-only text with no status change is a silent no-op
	assert.NoError(t, service.AddNote(student.Id, "   ", "mehmet", ""))
	notes, _ := service.GetNotes(student.Id)
	assert.Len(t, notes, 0)

	// A status transition alone is applied without creating a note
	assert.NoError(t, service.AddNote(student.Id, "", "mehmet", "resolved"))
	updated, _ := service.GetStudent(student.Id)
	assert.Equal(t, model.Resolved, updated.Status)
	notes, _ = service.GetNotes(student.Id)
	assert.Len(t, notes, 0)

	// Note and status change land together
	assert.NoError(t, service.AddNote(student.Id, "called back, issue remains", "zeynep", "unresolved"))
	updated, _ = service.GetStudent(student.Id)
	assert.Equal(t, model.Unresolved, updated.Status)
	notes, _ = service.GetNotes(student.Id)
	assert.Len(t, notes, 1)
	assert.Equal(t, "zeynep", notes[0].Author)

	assert.ErrorIs(t, service.AddNote(99999, "text", "mehmet", ""), ErrStudentNotFound)
}

func TestDeleteNoteAuthorization(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	student, err := service.AddStudent(StudentFields{Name: "Ali Demir"}, "mehmet", "")
	assert.NoError(t, err)
	assert.NoError(t, service.AddNote(student.Id, "left a voicemail", "mehmet", ""))
	notes, _ := service.GetNotes(student.Id)
	assert.Len(t, notes, 1)
	noteId := notes[0].Id

	// Someone else without privilege is rejected, the note survives
	studentId, err := service.DeleteNote(noteId, "zeynep", false)
	assert.ErrorIs(t, err, ErrNoteForbidden)
	assert.Equal(t, student.Id, studentId)
	notes, _ = service.GetNotes(student.Id)
	assert.Len(t, notes, 1)

	// The privileged user may delete any note
	studentId, err = service.DeleteNote(noteId, "helpadmin", true)
	assert.NoError(t, err)
	assert.Equal(t, student.Id, studentId)
	notes, _ = service.GetNotes(student.Id)
	assert.Len(t, notes, 0)

	// The author may delete their own note
	assert.NoError(t, service.AddNote(student.Id, "second try", "mehmet", ""))
	notes, _ = service.GetNotes(student.Id)
	_, err = service.DeleteNote(notes[0].Id, "mehmet", false)
	assert.NoError(t, err)

	_, err = service.DeleteNote(99999, "mehmet", true)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestCountsByOwner(t *testing.T) {
	setup()
	defer teardown()

	service := StudentService{}
	names := []string{"A", "B", "C", "D", "E"}
	creators := []string{"mehmet", "mehmet", "mehmet", "zeynep", "zeynep"}
	for i, name := range names {
		_, err := service.AddStudent(StudentFields{Name: name}, creators[i], "")
		assert.NoError(t, err)
	}

	rows, total, err := service.CountsByOwner()
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 2)
	assert.Equal(t, "mehmet", rows[0].AddedBy)
	assert.EqualValues(t, 3, rows[0].Count)
	assert.Equal(t, "zeynep", rows[1].AddedBy)
	assert.EqualValues(t, 2, rows[1].Count)
}
