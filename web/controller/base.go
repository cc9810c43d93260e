// Package controller provides the HTTP handlers of the todo API. Handlers
// bind request bodies, call into the service layer and translate service
// error kinds into status codes.
package controller

import (
	"github.com/todoapp/todo-api/web/middleware"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by the authenticated controllers.
type BaseController struct{}

// principal returns the user id set by middleware.TokenAuth. Routes that
// reach it without one are answered with 401.
func (a *BaseController) principal(c *gin.Context) (int, bool) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		unauthorized(c)
	}
	return userId, ok
}
