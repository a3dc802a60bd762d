package controller

import (
	"crypto/subtle"
	"net/http"

	"destek-ui/config"
	"destek-ui/database"
	"destek-ui/logger"
	"destek-ui/web/service"

	"github.com/gin-gonic/gin"
)

// BootstrapController exposes the one-time operational endpoints: seeding
// the privileged user and applying additive schema changes. Both are gated
// by a shared secret token, not by a session, and fail closed.
type BootstrapController struct {
	userService service.UserService
}

func NewBootstrapController(g *gin.RouterGroup) *BootstrapController {
	a := &BootstrapController{}
	a.initRouter(g)
	return a
}

func (a *BootstrapController) initRouter(g *gin.RouterGroup) {
	g.GET("/init_db", a.checkToken, a.initDb)
	g.GET("/migrate_db", a.checkToken, a.migrateDb)
}

// checkToken compares the token query parameter against the deployment
// secret. An unset secret disables the endpoints entirely.
func (a *BootstrapController) checkToken(c *gin.Context) {
	expected := config.GetInitToken()
	token := c.Query("token")
	if expected == "" || token == "" ||
		subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		logger.Warningf("rejected bootstrap request from %s", getRemoteIp(c))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.Next()
}

func (a *BootstrapController) initDb(c *gin.Context) {
	if err := database.Migrate(); err != nil {
		jsonMsg(c, "migrate", err)
		return
	}
	created, err := a.userService.SeedAdminUser()
	if err != nil {
		jsonMsg(c, "seed user", err)
		return
	}
	jsonObj(c, gin.H{"seeded": created, "username": config.GetAdminUsername()}, nil)
}

func (a *BootstrapController) migrateDb(c *gin.Context) {
	if err := database.Migrate(); err != nil {
		jsonMsg(c, "migrate", err)
		return
	}
	jsonMsg(c, "migration done", nil)
}
