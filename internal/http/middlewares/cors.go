package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS permits cross-origin GET/POST from any origin; the app's front end
// may be served from anywhere. Preflight requests are answered with 204 and
// no body.
func CORS() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
