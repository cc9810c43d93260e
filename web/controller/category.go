package controller

import (
	"net/http"

	"github.com/todoapp/todo-api/web/entity"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-gonic/gin"
)

type CategoryForm struct {
	Name string `json:"name"`
}

type CategoryEditForm struct {
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
}

type CategoryDeleteForm struct {
	CategoryName string `json:"categoryName"`
}

// CategoryController serves the category routes. It expects the router
// group to carry middleware.TokenAuth.
type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(g *gin.RouterGroup, categoryService *service.CategoryService) *CategoryController {
	a := &CategoryController{categoryService: categoryService}
	a.initRouter(g)
	return a
}

func (a *CategoryController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.list)
	g.POST("/create", a.create)
	g.PUT("/edit", a.edit)
	g.DELETE("/delete", a.delete)
}

func (a *CategoryController) list(c *gin.Context) {
	categories, err := a.categoryService.List(c.Request.Context())
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, entity.CategoryList{Categories: categories})
}

func (a *CategoryController) create(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgCategoryCreateFailed, err)
		return
	}

	if _, err := a.categoryService.Create(c.Request.Context(), form.Name); err != nil {
		statusCode := statusOf(service.KindOf(err))
		// existing clients expect 404 for a duplicate name
		if service.KindOf(err) == service.KindConflict {
			statusCode = http.StatusNotFound
		}
		jsonErrorStatus(c, err, statusCode)
		return
	}
	c.JSON(http.StatusCreated, entity.Msg{Status: entity.StatusSuccess, Message: service.MsgCategoryCreated})
}

func (a *CategoryController) edit(c *gin.Context) {
	var form CategoryEditForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgCategoryUpdateFailed, err)
		return
	}

	if err := a.categoryService.Update(c.Request.Context(), form.CategoryName, form.Name); err != nil {
		jsonError(c, err)
		return
	}
	jsonMsg(c, service.MsgCategoryUpdated)
}

func (a *CategoryController) delete(c *gin.Context) {
	var form CategoryDeleteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, service.MsgCategoryDeleteFailed, err)
		return
	}

	if err := a.categoryService.Delete(c.Request.Context(), form.CategoryName); err != nil {
		jsonError(c, err)
		return
	}
	jsonMsg(c, service.MsgCategoryDeleted)
}
