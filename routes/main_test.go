package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points storage.DB at a fresh in-memory sqlite database. The DSN
// is named after the test so parallel packages don't share state.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Property{}, &models.Inquiry{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	storage.DB = db
}

// buildTestApp creates an iris app with the full route table and JWT verifier,
// mirroring main.go.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	app := iris.New()
	app.Validator = validator.New()

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
		auth.Post("/signup", Register)
		auth.Post("/login", Login)
		auth.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		auth.Patch("/update-me", protect, utils.TokenVersionMiddleware, UpdateMyDetails)
		auth.Patch("/update-password", protect, utils.TokenVersionMiddleware, UpdateMyPassword)
	}

	users := app.Party("/api/v1/users")
	{
		users.Get("/me/stats", protect, utils.TokenVersionMiddleware, GetEmployeeStats)
		users.Get("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, GetAllEmployees)
		users.Post("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, CreateEmployee)
		users.Patch("/{id:uint}", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, UpdateEmployee)
		users.Delete("/{id:uint}", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, DeleteEmployee)
	}

	properties := app.Party("/api/v1/properties")
	{
		properties.Get("/public", GetAllPublicProperties)
		properties.Get("/public/{id:uint}", GetPublicPropertyByID)
		properties.Get("/", protect, utils.TokenVersionMiddleware, GetAllProperties)
		properties.Post("/", protect, utils.TokenVersionMiddleware, CreateProperty)
		properties.Get("/{id:uint}", protect, utils.TokenVersionMiddleware, GetProperty)
		properties.Patch("/{id:uint}", protect, utils.TokenVersionMiddleware, UpdateProperty)
		properties.Delete("/{id:uint}", protect, utils.TokenVersionMiddleware, DeleteProperty)
	}

	dashboard := app.Party("/api/v1/dashboard")
	{
		dashboard.Get("/stats", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, GetDashboardStats)
	}

	inquiries := app.Party("/api/v1/inquiries")
	{
		inquiries.Post("/", CreateInquiry)
		inquiries.Get("/", protect, utils.TokenVersionMiddleware, utils.AdminOnlyMiddleware, GetAllInquiries)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app
}

// fakeTokenStore is a map-backed storage.TokenStore so the refresh flow can be
// exercised without a Redis server.
type fakeTokenStore struct {
	values map[string]string
}

func newFakeTokenStore(t *testing.T) *fakeTokenStore {
	t.Helper()
	store := &fakeTokenStore{values: map[string]string{}}
	storage.Redis = store
	t.Cleanup(func() { storage.Redis = nil })
	return store
}

func (f *fakeTokenStore) Get(ctx context.Context, key string) *redis.StringCmd {
	if value, ok := f.values[key]; ok {
		return redis.NewStringResult(value, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeTokenStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeTokenStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

// createTestUser persists a user with a bcrypt-hashed password.
func createTestUser(t *testing.T, name, email, password, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProperty(t *testing.T, owner models.User, title, propertyType string, rent float64, images []string) models.Property {
	t.Helper()

	imagesJSON, _ := json.Marshal(images)
	property := models.Property{
		CreatedByID:    owner.ID,
		Title:          title,
		Type:           propertyType,
		Location:       "Mumbai",
		Area:           "800 sq ft",
		GoogleMapsLink: "https://maps.google.com/?q=mumbai",
		Rent:           rent,
		Deposit:        rent * 2,
		Images:         string(imagesJSON),
	}
	if err := storage.DB.Create(&property).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return property
}

// signTestToken signs an access token for the given user with the test secret.
func signTestToken(t *testing.T, user models.User) string {
	t.Helper()

	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, err := signer.Sign(utils.AccessToken{ID: user.ID, Role: user.Role, TokenVersion: user.TokenVersion})
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return string(token)
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", resp.Body.String(), err)
	}
	return body
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data
}
