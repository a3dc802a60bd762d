// Package controller provides the HTTP handlers of the destek-ui panel:
// login, case management pages, reporting, and the bootstrap endpoints.
package controller

import (
	"net/http"
	"net/url"

	"destek-ui/logger"
	"destek-ui/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication check shared by all
// session-guarded controllers.
type BaseController struct{}

// checkLogin verifies the session and redirects browsers to the login page,
// preserving the original destination in the next parameter. AJAX callers
// get a 401 instead.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
		} else {
			loginURL := c.GetString("base_path") + "?next=" + url.QueryEscape(c.Request.RequestURI)
			c.Redirect(http.StatusTemporaryRedirect, loginURL)
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// I18nWeb retrieves a localized message through the localizer placed in the
// gin context by the locale middleware.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
