package utils

import (
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// TokenVersionMiddleware resolves the token's user and rejects access tokens
// issued before the last password change. It also stores the user ID in the
// context for downstream handlers.
func TokenVersionMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)

	var user models.User
	result := storage.DB.Select("id, role, token_version").Find(&user, claims.ID)
	if result.Error != nil {
		CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 || user.TokenVersion != claims.TokenVersion {
		CreateError(iris.StatusUnauthorized, "Token Error", "Token expired", ctx)
		return
	}

	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has the Admin role
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if !IsAdmin(claims.Role) {
		CreateForbidden(ctx)
		return
	}
	ctx.Next()
}
