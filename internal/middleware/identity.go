package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
)

// Identity resolves the bearer credential into a caller identity on the
// request context. A missing, malformed, or expired token leaves the request
// anonymous; whether anonymous callers are allowed is decided per operation,
// not here.
func Identity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.Next()
			return
		}

		token, err := auth.VerifyJWT(parts[1])

		if err != nil {
			ctx.Next()
			return
		}

		userID, _, _, err := auth.TokenClaims(token)

		if err != nil {
			ctx.Next()
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.Next()
			return
		}

		if !user.IsActive {
			ctx.Next()
			return
		}

		ctx.Request = ctx.Request.WithContext(auth.WithCurrentUser(ctx.Request.Context(), user))
		ctx.Next()
	}
}
