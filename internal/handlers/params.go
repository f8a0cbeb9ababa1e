package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/repository"
)

// uintParam reads a numeric path parameter, answering 404 with notFoundCode
// when it is not one.
func uintParam(c *gin.Context, name, notFoundCode string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.NotFound(c, notFoundCode, httperr.Message(notFoundCode))
		return 0, false
	}
	return uint(v), true
}

// optionalUintQuery reads ?name=; absent is nil, malformed is an error reply.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_request", name+" inválido.")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func notFound(err error, code string) error {
	if repository.IsNotFound(err) {
		return httperr.ErrBusiness(code)
	}
	return err
}
