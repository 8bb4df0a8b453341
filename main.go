package main

import (
	"log"
	"os"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/routes"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the marketing site and dashboards
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := utils.NewAccessTokenVerifier()
	protect := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	auth := app.Party("/api/v1/auth")
	{
		auth.Post("/signup", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		auth.Patch("/update-me", protect, utils.TokenVersionMiddleware, routes.UpdateMyDetails)
		auth.Patch("/update-password", protect, utils.TokenVersionMiddleware, routes.UpdateMyPassword)
	}

	users := app.Party("/api/v1/users")
	{
		users.Get("/me/stats", protect, utils.TokenVersionMiddleware, routes.GetEmployeeStats)
		users.Get("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.GetAllEmployees)
		users.Post("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.CreateEmployee)
		users.Patch("/{id:uint}", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.UpdateEmployee)
		users.Delete("/{id:uint}", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.DeleteEmployee)
	}

	properties := app.Party("/api/v1/properties")
	{
		properties.Get("/public", routes.GetAllPublicProperties)
		properties.Get("/public/{id:uint}", routes.GetPublicPropertyByID)
		properties.Get("/", protect, utils.TokenVersionMiddleware, routes.GetAllProperties)
		properties.Post("/", protect, utils.TokenVersionMiddleware, routes.CreateProperty)
		properties.Get("/{id:uint}", protect, utils.TokenVersionMiddleware, routes.GetProperty)
		properties.Patch("/{id:uint}", protect, utils.TokenVersionMiddleware, routes.UpdateProperty)
		properties.Delete("/{id:uint}", protect, utils.TokenVersionMiddleware, routes.DeleteProperty)
	}

	dashboard := app.Party("/api/v1/dashboard")
	{
		dashboard.Get("/stats", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.GetDashboardStats)
	}

	inquiries := app.Party("/api/v1/inquiries")
	{
		inquiries.Post("/", routes.CreateInquiry)
		inquiries.Get("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, routes.GetAllInquiries)
	}

	app.Get("/api/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"status":  "success",
			"message": "Server is running",
		})
	})

	app.OnErrorCode(iris.StatusNotFound, func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"status":  "fail",
			"message": "Can't find " + ctx.Path(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
