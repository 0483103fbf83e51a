// Package http holds the contract between the router and the CRM modules.
package http

import "github.com/gin-gonic/gin"

// Module is a bounded context that mounts its own routes. The router only
// knows modules through this interface.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext hands modules the /api/v1 groups. Both are rate limited per IP.
type RouterContext struct {
	// Public serves endpoints that need no token, such as phone formatting
	// used while a prospect fills in a form.
	Public *gin.RouterGroup
	// Protected requires a valid access token when JWT_ACCESS_SECRET is set.
	Protected *gin.RouterGroup
}
