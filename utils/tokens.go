package utils

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken carries the principal: who is calling and under which role. The
// token version lets a password change invalidate every previously issued token.
type AccessToken struct {
	ID           uint   `json:"ID"`
	Role         string `json:"role"`
	TokenVersion int    `json:"tokenVersion"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// NewAccessTokenVerifier builds the verifier protecting authenticated routes.
// The caller reacts differently to an expired token (silent refresh) than to a
// bad one (forced re-login), so the two 401s carry distinct messages.
func NewAccessTokenVerifier() *jwt.Verifier {
	verifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	verifier.ErrorHandler = func(ctx iris.Context, err error) {
		if errors.Is(err, jwt.ErrExpired) {
			CreateError(iris.StatusUnauthorized, "Token Error", "Token expired", ctx)
			return
		}
		CreateError(iris.StatusUnauthorized, "Token Error", "Invalid token", ctx)
	}
	return verifier
}

func CreateTokenPair(user *models.User) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	accessTokenClaims := AccessToken{
		ID:           user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}

	refreshClaims := jwt.Claims{Subject: strconv.FormatUint(uint64(user.ID), 10)}

	accessToken, err := accessTokenSigner.Sign(accessTokenClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)
	}

	return &tokenPair, nil
}

// RefreshToken rotates a verified refresh token: the presented token is removed
// from the allow-list and a fresh pair is issued against the user's current
// role and token version.
func RefreshToken(ctx iris.Context) {
	if storage.Redis == nil {
		CreateInternalServerError(ctx)
		return
	}

	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)
	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

	if tokenErr != nil {
		CreateError(iris.StatusUnauthorized, "Token Error", "Invalid token", ctx)
		return
	}

	if validToken != "true" {
		CreateForbidden(ctx)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)
	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	var user models.User
	userExists := storage.DB.Find(&user, uint(userID))
	if userExists.Error != nil {
		CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		CreateNotFound(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(&user)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status":       "success",
		"token":        string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
