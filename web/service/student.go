// Package service provides the business logic for the destek-ui help desk
// panel: user authentication, case management, reporting, and panel settings.
package service

import (
	"errors"
	"strings"

	"destek-ui/database"
	"destek-ui/database/model"

	"gorm.io/gorm"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrNoteForbidden   = errors.New("note can only be deleted by its author or the help desk admin")
	ErrNameRequired    = errors.New("student name is required")
)

// StudentFilter holds the optional dashboard filters. All filters are
// combined with AND; Q matches name, phone or school number.
type StudentFilter struct {
	Q          string `form:"q"`
	Status     string `form:"status"`
	Department string `form:"department"`
	Faculty    string `form:"faculty"`
	AddedBy    string `form:"added_by"`
}

// StudentFields carries raw form values for creating a case. Blank optional
// fields are stored as NULL, not as empty strings.
type StudentFields struct {
	Name       string `form:"name"`
	Phone      string `form:"phone"`
	SchoolNo   string `form:"school_no"`
	Status     string `form:"status"`
	Department string `form:"department"`
	Faculty    string `form:"faculty"`
	Problem    string `form:"problem"`
}

// StudentPatch is a partial update: nil fields are left untouched.
type StudentPatch struct {
	Name       *string
	Phone      *string
	SchoolNo   *string
	Status     *string
	Department *string
	Faculty    *string
	Problem    *string
}

// OwnerCount is one row of the per-user case report.
type OwnerCount struct {
	AddedBy string `json:"addedBy"`
	Count   int64  `json:"count"`
}

type StudentService struct{}

// optional trims the value and returns nil for blank input, so optional
// columns end up NULL instead of "".
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// GetStudents returns the cases matching the filter, newest first. An empty
// filter returns everything.
func (s *StudentService) GetStudents(filter StudentFilter) ([]*model.Student, error) {
	db := database.GetDB()
	query := db.Model(model.Student{})

	if q := strings.TrimSpace(filter.Q); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR school_no LIKE ?", pattern, pattern, pattern)
	}
	if department := strings.TrimSpace(filter.Department); department != "" {
		query = query.Where("department LIKE ?", "%"+department+"%")
	}
	if faculty := strings.TrimSpace(filter.Faculty); faculty != "" {
		query = query.Where("faculty LIKE ?", "%"+faculty+"%")
	}
	if model.IsValidStatus(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AddedBy != "" {
		query = query.Where("added_by = ?", filter.AddedBy)
	}

	var students []*model.Student
	err := query.Order("id desc").Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// GetAddedByOptions returns the distinct non-empty added_by values for the
// dashboard filter selector, recomputed on every call.
func (s *StudentService) GetAddedByOptions() ([]string, error) {
	db := database.GetDB()
	var options []string
	err := db.Model(model.Student{}).
		Distinct("added_by").
		Where("added_by <> ''").
		Order("added_by asc").
		Pluck("added_by", &options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// AddStudent creates a case attributed to creator. A non-blank firstNote is
// stored as the first note of the thread in the same transaction.
func (s *StudentService) AddStudent(fields StudentFields, creator string, firstNote string) (*model.Student, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	status := model.Unresolved
	if model.IsValidStatus(fields.Status) {
		status = model.Status(fields.Status)
	}

	student := &model.Student{
		Name:       name,
		Phone:      optional(fields.Phone),
		SchoolNo:   optional(fields.SchoolNo),
		AddedBy:    creator,
		Status:     status,
		Department: optional(fields.Department),
		Faculty:    optional(fields.Faculty),
		Problem:    optional(fields.Problem),
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		if text := strings.TrimSpace(firstNote); text != "" {
			return tx.Create(&model.StudentNote{
				StudentId: student.Id,
				Text:      text,
				Author:    creator,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) GetStudent(id int) (*model.Student, error) {
	db := database.GetDB()
	student := &model.Student{}
	err := db.Model(model.Student{}).Where("id = ?", id).First(student).Error
	if database.IsNotFound(err) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent applies a partial update. Provided blank optional fields
// become NULL; a provided status is applied only when it is a valid value.
func (s *StudentService) UpdateStudent(id int, patch StudentPatch) error {
	if _, err := s.GetStudent(id); err != nil {
		return err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		updates["phone"] = optional(*patch.Phone)
	}
	if patch.SchoolNo != nil {
		updates["school_no"] = optional(*patch.SchoolNo)
	}
	if patch.Department != nil {
		updates["department"] = optional(*patch.Department)
	}
	if patch.Faculty != nil {
		updates["faculty"] = optional(*patch.Faculty)
	}
	if patch.Problem != nil {
		updates["problem"] = optional(*patch.Problem)
	}
	if patch.Status != nil && model.IsValidStatus(*patch.Status) {
		updates["status"] = *patch.Status
	}
	if len(updates) == 0 {
		return nil
	}

	db := database.GetDB()
	return db.Model(model.Student{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteStudent removes the case and all of its notes. The cascade is done
// explicitly inside one transaction rather than relying on the FK constraint.
func (s *StudentService) DeleteStudent(id int) error {
	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		student := &model.Student{}
		err := tx.Model(model.Student{}).Where("id = ?", id).First(student).Error
		if database.IsNotFound(err) {
			return ErrStudentNotFound
		} else if err != nil {
			return err
		}

		if err := tx.Where("student_id = ?", id).Delete(&model.StudentNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(student).Error
	})
}

// AddNote appends a note and/or applies a status transition in one
// transaction. Whitespace-only text is silently skipped; an invalid status
// leaves the case untouched. Both being no-ops is not an error.
func (s *StudentService) AddNote(studentId int, text string, author string, status string) error {
	if _, err := s.GetStudent(studentId); err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	applyStatus := model.IsValidStatus(status)
	if text == "" && !applyStatus {
		return nil
	}

	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		if text != "" {
			note := &model.StudentNote{
				StudentId: studentId,
				Text:      text,
				Author:    author,
			}
			if err := tx.Create(note).Error; err != nil {
				return err
			}
		}
		if applyStatus {
			return tx.Model(model.Student{}).
				Where("id = ?", studentId).
				Update("status", status).Error
		}
		return nil
	})
}

// GetNotes returns the note thread of a case, newest first.
func (s *StudentService) GetNotes(studentId int) ([]*model.StudentNote, error) {
	db := database.GetDB()
	var notes []*model.StudentNote
	err := db.Model(model.StudentNote{}).
		Where("student_id = ?", studentId).
		Order("created_at desc, id desc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteNote removes a single note. Only the note's author or a privileged
// requester may delete it. Returns the owning student id for redirecting.
func (s *StudentService) DeleteNote(noteId int, requester string, privileged bool) (int, error) {
	db := database.GetDB()
	note := &model.StudentNote{}
	err := db.Model(model.StudentNote{}).Where("id = ?", noteId).First(note).Error
	if database.IsNotFound(err) {
		return 0, ErrNoteNotFound
	} else if err != nil {
		return 0, err
	}

	if note.Author != requester && !privileged {
		return note.StudentId, ErrNoteForbidden
	}

	if err := db.Delete(note).Error; err != nil {
		return note.StudentId, err
	}
	return note.StudentId, nil
}

// CountsByOwner aggregates cases per added_by, most active user first,
// together with the total number of cases.
func (s *StudentService) CountsByOwner() ([]OwnerCount, int64, error) {
	db := database.GetDB()

	var rows []OwnerCount
	err := db.Model(model.Student{}).
		Select("added_by, count(id) as count").
		Group("added_by").
		Order("count(id) desc").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(model.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
