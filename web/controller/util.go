package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/todoapp/todo-api/web/entity"
	"github.com/todoapp/todo-api/web/middleware"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the client address from proxy headers or the socket.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// statusOf is the default kind to status mapping. Handlers override it where
// the API has always answered differently.
func statusOf(kind service.ErrorKind) int {
	switch kind {
	case service.KindInvalidInput:
		return http.StatusInternalServerError
	case service.KindConflict:
		return http.StatusBadRequest
	case service.KindUnauthenticated, service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// jsonMsg answers 200 with a success message.
func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{Status: entity.StatusSuccess, Message: msg})
}

// jsonData answers 200 with a success envelope around data.
func jsonData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, entity.Msg{Status: entity.StatusSuccess, Data: data})
}

// jsonError writes err with the default status for its kind.
func jsonError(c *gin.Context, err error) {
	jsonErrorStatus(c, err, statusOf(service.KindOf(err)))
}

// jsonErrorStatus writes err as {status, message, error?}. Only bad request
// responses expose the underlying cause; internal failures stay opaque.
func jsonErrorStatus(c *gin.Context, err error, statusCode int) {
	var svcErr *service.Error
	log := middleware.RequestLog(c)
	if !errors.As(err, &svcErr) {
		log.Warningf("unexpected error: %v", err)
		svcErr = &service.Error{Kind: service.KindInternal, Msg: "Internal server error", Err: err}
	}

	m := entity.Msg{Status: entity.StatusFail, Message: svcErr.Msg}
	switch svcErr.Kind {
	case service.KindInternal:
		m.Status = entity.StatusError
		if svcErr.Err != nil {
			log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, svcErr.Err)
		}
	case service.KindBadRequest:
		m.Status = entity.StatusError
		if svcErr.Err != nil {
			m.Error = svcErr.Err.Error()
		}
	}
	c.JSON(statusCode, m)
}

// badRequest reports a body that could not be bound.
func badRequest(c *gin.Context, msg string, err error) {
	jsonError(c, &service.Error{Kind: service.KindBadRequest, Msg: msg, Err: err})
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorMsg{Error: "Unauthorized"})
}
