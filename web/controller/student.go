package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"destek-ui/logger"
	"destek-ui/web/service"
	"destek-ui/web/session"

	"github.com/gin-gonic/gin"
)

// StudentController handles the case management pages: dashboard listing,
// add/view/edit/delete, the note thread, and the per-user report.
type StudentController struct {
	BaseController

	studentService service.StudentService
	facultyService service.FacultyService
	userService    service.UserService
}

func NewStudentController(g *gin.RouterGroup) *StudentController {
	a := &StudentController{}
	a.initRouter(g)
	return a
}

func (a *StudentController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("/dashboard", a.dashboard)
	g.GET("/add", a.addForm)
	g.POST("/add", a.addStudent)
	g.GET("/student/:id", a.viewStudent)
	g.POST("/student/:id", a.postDetail)
	g.GET("/student/:id/edit", a.editForm)
	g.POST("/student/:id/edit", a.editStudent)
	g.POST("/student/:id/delete", a.deleteStudent)
	g.POST("/student/:id/note", a.postDetail)
	g.POST("/note/:id/delete", a.deleteNote)
	g.GET("/main", a.report)
}

func (a *StudentController) dashboard(c *gin.Context) {
	var filter service.StudentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warning("bind dashboard filter err:", err)
	}

	students, err := a.studentService.GetStudents(filter)
	if err != nil {
		logger.Warning("list students err:", err)
	}
	addedByOptions, err := a.studentService.GetAddedByOptions()
	if err != nil {
		logger.Warning("list added_by options err:", err)
	}
	faculties, err := a.facultyService.GetFaculties()
	if err != nil {
		logger.Warning("load faculty catalog err:", err)
	}

	html(c, "dashboard.html", "pages.dashboard.title", gin.H{
		"students":         students,
		"filter":           filter,
		"added_by_options": addedByOptions,
		"faculties":        faculties,
	})
}

func (a *StudentController) addForm(c *gin.Context) {
	faculties, err := a.facultyService.GetFaculties()
	if err != nil {
		logger.Warning("load faculty catalog err:", err)
	}
	html(c, "add_student.html", "pages.student.addTitle", gin.H{
		"faculties": faculties,
	})
}

func (a *StudentController) addStudent(c *gin.Context) {
	var fields service.StudentFields
	if err := c.ShouldBind(&fields); err != nil {
		logger.Warning("bind student form err:", err)
	}
	firstNote := c.PostForm("note")

	user := session.GetLoginUser(c)
	_, err := a.studentService.AddStudent(fields, user.Username, firstNote)
	if err != nil {
		key := "pages.student.toasts.saveFailed"
		if errors.Is(err, service.ErrNameRequired) {
			key = "pages.student.toasts.nameRequired"
		} else {
			logger.Warning("add student err:", err)
		}
		faculties, _ := a.facultyService.GetFaculties()
		html(c, "add_student.html", "pages.student.addTitle", gin.H{
			"error":     I18nWeb(c, key),
			"faculties": faculties,
		})
		return
	}

	redirectMsg(c, c.GetString("base_path")+"dashboard", "pages.student.toasts.created")
}

func (a *StudentController) viewStudent(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	student, err := a.studentService.GetStudent(id)
	if err != nil {
		a.notFoundOrWarn(c, err)
		return
	}
	notes, err := a.studentService.GetNotes(id)
	if err != nil {
		logger.Warning("list notes err:", err)
	}

	html(c, "view_student.html", "pages.student.viewTitle", gin.H{
		"student": student,
		"notes":   notes,
	})
}

// postDetail appends a note and/or applies a status transition from the
// detail view. Whitespace-only note text is a silent no-op.
func (a *StudentController) postDetail(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	user := session.GetLoginUser(c)
	err := a.studentService.AddNote(id, c.PostForm("note"), user.Username, c.PostForm("status"))
	if err != nil {
		a.notFoundOrWarn(c, err)
		return
	}

	redirectMsg(c, a.studentURL(c, id), "pages.student.toasts.detailUpdated")
}

func (a *StudentController) editForm(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	student, err := a.studentService.GetStudent(id)
	if err != nil {
		a.notFoundOrWarn(c, err)
		return
	}
	faculties, err := a.facultyService.GetFaculties()
	if err != nil {
		logger.Warning("load faculty catalog err:", err)
	}

	html(c, "edit_student.html", "pages.student.editTitle", gin.H{
		"student":   student,
		"faculties": faculties,
	})
}

// editStudent applies a partial update: only the fields present in the
// submitted form are touched.
func (a *StudentController) editStudent(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		logger.Warning("parse edit form err:", err)
	}
	form := c.Request.PostForm

	patch := service.StudentPatch{
		Name:       formValue(form, "name"),
		Phone:      formValue(form, "phone"),
		SchoolNo:   formValue(form, "school_no"),
		Status:     formValue(form, "status"),
		Department: formValue(form, "department"),
		Faculty:    formValue(form, "faculty"),
		Problem:    formValue(form, "problem"),
	}

	if err := a.studentService.UpdateStudent(id, patch); err != nil {
		a.notFoundOrWarn(c, err)
		return
	}

	redirectMsg(c, a.studentURL(c, id), "pages.student.toasts.updated")
}

func (a *StudentController) deleteStudent(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	if err := a.studentService.DeleteStudent(id); err != nil {
		a.notFoundOrWarn(c, err)
		return
	}

	redirectMsg(c, c.GetString("base_path")+"dashboard", "pages.student.toasts.deleted")
}

func (a *StudentController) deleteNote(c *gin.Context) {
	id, ok := a.paramId(c)
	if !ok {
		return
	}

	user := session.GetLoginUser(c)
	privileged := a.userService.IsPrivileged(user.Username)

	studentId, err := a.studentService.DeleteNote(id, user.Username, privileged)
	if errors.Is(err, service.ErrNoteForbidden) {
		redirectMsg(c, a.studentURL(c, studentId), "pages.student.toasts.noteForbidden")
		return
	}
	if err != nil {
		a.notFoundOrWarn(c, err)
		return
	}

	redirectMsg(c, a.studentURL(c, studentId), "pages.student.toasts.noteDeleted")
}

func (a *StudentController) report(c *gin.Context) {
	rows, total, err := a.studentService.CountsByOwner()
	if err != nil {
		logger.Warning("case counts err:", err)
	}
	html(c, "main.html", "pages.report.title", gin.H{
		"rows":  rows,
		"total": total,
	})
}

func (a *StudentController) paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (a *StudentController) studentURL(c *gin.Context, id int) string {
	return c.GetString("base_path") + "student/" + strconv.Itoa(id)
}

// notFoundOrWarn turns a missing record into a dashboard redirect with a
// not-found flash; anything else is logged and reported as a generic failure.
func (a *StudentController) notFoundOrWarn(c *gin.Context, err error) {
	key := "pages.student.toasts.saveFailed"
	if errors.Is(err, service.ErrStudentNotFound) || errors.Is(err, service.ErrNoteNotFound) {
		key = "pages.student.toasts.notFound"
	} else {
		logger.Warning("student operation err:", err)
	}
	redirectMsg(c, c.GetString("base_path")+"dashboard", key)
}

// formValue reports a form field only when it was actually submitted, so
// omitted fields stay untouched on partial updates.
func formValue(form url.Values, key string) *string {
	if values, ok := form[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}
