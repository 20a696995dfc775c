package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire contract predates this server: some commands wrap success in
// {"data": ...}, others in {"success": true, ...}, and the two auth-failure
// shapes differ by command. These helpers keep the split in one place.

func RespondData(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, gin.H{"data": data})
}

func RespondSuccess(ctx *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}

	ctx.JSON(http.StatusOK, body)
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// RespondAuthFailed is the profile-change failure shape.
func RespondAuthFailed(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, gin.H{"success": false})
}

// RespondInvalidCredentials is the failure shape for read/messaging/listing
// commands.
func RespondInvalidCredentials(ctx *gin.Context) {
	RespondError(ctx, http.StatusForbidden, "Invalid credentials")
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}
