package controller

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"destek-ui/config"
	"destek-ui/logger"
	"destek-ui/web/entity"
	"destek-ui/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+" "+I18nWeb(c, "fail")+": ", err)
	}
	c.JSON(http.StatusOK, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the shared context fields. A pending flash
// message key arrives via the msg query parameter and is resolved by the
// template's i18n func.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["base_path"] = c.GetString("base_path")
	if user := session.GetLoginUser(c); user != nil {
		data["login_user"] = user.Username
	}
	if msg := c.Query("msg"); strings.HasPrefix(msg, "pages.") {
		data["msg"] = msg
	}
	c.HTML(http.StatusOK, name, getContext(data))
}

// getContext adds version data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// redirectMsg issues a 302 to location with an optional flash message key
// appended as the msg query parameter.
func redirectMsg(c *gin.Context, location string, msgKey string) {
	if msgKey != "" {
		sep := "?"
		if strings.Contains(location, "?") {
			sep = "&"
		}
		location += sep + "msg=" + url.QueryEscape(msgKey)
	}
	c.Redirect(http.StatusFound, location)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
