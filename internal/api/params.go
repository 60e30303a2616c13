package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// BindID binds a positive integer path parameter using the simple style.
func BindID(c *gin.Context, name string) (uint, error) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid format for parameter %s: must be positive", name)
	}
	return id, nil
}

// BindListTodosParams binds the optional limit, page and search query parameters.
func BindListTodosParams(c *gin.Context) (ListTodosParams, error) {
	var params ListTodosParams
	query := c.Request.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return params, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		return params, fmt.Errorf("invalid format for parameter page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", query, &params.Search); err != nil {
		return params, fmt.Errorf("invalid format for parameter search: %w", err)
	}
	return params, nil
}
