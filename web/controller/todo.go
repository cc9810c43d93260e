package controller

import (
	"net/http"

	"github.com/todoapp/todo-api/web/entity"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-gonic/gin"
)

type TodoForm struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type TodoEditForm struct {
	Name     string `json:"name"`
	TodoName string `json:"todoName"`
}

type TodoDeleteForm struct {
	TodoName string `json:"todoName"`
}

// TodoController serves the todo routes. It expects the router group to
// carry middleware.TokenAuth.
type TodoController struct {
	BaseController

	todoService *service.TodoService
}

func NewTodoController(g *gin.RouterGroup, todoService *service.TodoService) *TodoController {
	a := &TodoController{todoService: todoService}
	a.initRouter(g)
	return a
}

func (a *TodoController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.list)
	g.POST("/create", a.create)
	g.PUT("/edit", a.edit)
	g.DELETE("/delete", a.delete)
}

func (a *TodoController) list(c *gin.Context) {
	userId, ok := a.principal(c)
	if !ok {
		return
	}
	todos, err := a.todoService.List(c.Request.Context(), userId)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, entity.TodoList{Todos: todos})
}

func (a *TodoController) create(c *gin.Context) {
	userId, ok := a.principal(c)
	if !ok {
		return
	}
	var form TodoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgTodoCreateFailed, err)
		return
	}

	todo, err := a.todoService.Create(c.Request.Context(), userId, form.Name, form.Category)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (a *TodoController) edit(c *gin.Context) {
	var form TodoEditForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgTodoUpdateFailed, err)
		return
	}

	if err := a.todoService.Update(c.Request.Context(), form.TodoName, form.Name); err != nil {
		jsonError(c, err)
		return
	}
	jsonMsg(c, service.MsgTodoUpdated)
}

func (a *TodoController) delete(c *gin.Context) {
	var form TodoDeleteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgTodoDeleteFailed, err)
		return
	}

	if err := a.todoService.Delete(c.Request.Context(), form.TodoName); err != nil {
		jsonError(c, err)
		return
	}
	jsonMsg(c, service.MsgTodoDeleted)
}
