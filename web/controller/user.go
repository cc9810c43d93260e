package controller

import (
	"net/http"
	"strconv"

	"github.com/todoapp/todo-api/web/entity"
	"github.com/todoapp/todo-api/web/middleware"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-gonic/gin"
)

type SignupForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserController handles signup and login. Its routes are public.
type UserController struct {
	authService *service.AuthService
}

func NewUserController(g *gin.RouterGroup, authService *service.AuthService) *UserController {
	a := &UserController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
}

func (a *UserController) signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, err)
		return
	}

	if err := a.authService.Signup(c.Request.Context(), form.Username, form.Email, form.Password); err != nil {
		jsonError(c, err)
		return
	}
	c.String(http.StatusCreated, http.StatusText(http.StatusCreated))
}

// login answers with the token and also drops it, with the user id, into
// cookies for browser clients.
func (a *UserController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, err)
		return
	}

	token, user, err := a.authService.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if service.KindOf(err) == service.KindUnauthenticated {
			middleware.RequestLog(c).Warningf("failed login from %s", getRemoteIp(c))
		}
		jsonError(c, err)
		return
	}

	middleware.RequestLog(c).Infof("user %d logged in from %s", user.Id, getRemoteIp(c))
	c.SetCookie("token", token, 0, "/", "", false, false)
	c.SetCookie("userId", strconv.Itoa(user.Id), 0, "/", "", false, false)
	c.JSON(http.StatusOK, entity.TokenMsg{Token: token})
}
