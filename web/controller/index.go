package controller

import (
	"net/http"
	"strings"
	"text/template"

	"destek-ui/logger"
	"destek-ui/web/service"
	"destek-ui/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// IndexController handles the login page, credential submission, and logout.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/", a.login)
	g.GET("/logout", a.logout)
}

// index shows the login page, or forwards logged-in users to the dashboard.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"dashboard")
		return
	}
	html(c, "login.html", "pages.login.title", gin.H{
		"next": c.Query("next"),
	})
}

// login authenticates the submitted credential pair and establishes the
// session. Failures render the login page again with one generic message.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	loginError := func(key string) {
		html(c, "login.html", "pages.login.title", gin.H{
			"error": I18nWeb(c, key),
			"next":  form.Next,
		})
	}

	if err := c.ShouldBind(&form); err != nil {
		loginError("pages.login.toasts.invalidFormData")
		return
	}
	if form.Username == "" {
		loginError("pages.login.toasts.emptyUsername")
		return
	}
	if form.Password == "" {
		loginError("pages.login.toasts.emptyPassword")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	safeUser := template.HTMLEscapeString(form.Username)

	if user == nil {
		logger.Warningf("wrong credentials for username: \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		loginError("pages.login.toasts.wrongUsernameOrPassword")
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}

	session.SetMaxAge(c, sessionMaxAge*60)
	session.SetLoginUser(c, user)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session: ", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	c.Redirect(http.StatusFound, a.safeNext(c, form.Next))
}

// safeNext keeps the post-login redirect inside the panel. Anything that is
// not a local path falls back to the dashboard.
func (a *IndexController) safeNext(c *gin.Context, next string) string {
	basePath := c.GetString("base_path")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return basePath + "dashboard"
}

// logout clears the session and returns to the login page.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	session.ClearSession(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
