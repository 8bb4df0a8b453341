package routes

import (
	"fmt"
	"strings"
	"time"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if userInput.Password != userInput.PasswordConfirm {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Passwords do not match", ctx)
		return
	}

	role := userInput.Role
	if role == "" {
		role = models.RoleResidentialEmployee
	}
	if !models.ValidRole(role) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown role", ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		Name:     userInput.Name,
		Email:    strings.ToLower(userInput.Email),
		Password: hashedPassword,
		Role:     role,
	}

	if createErr := storage.DB.Create(&newUser).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, iris.StatusCreated, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	// Same error whether the email is unknown or the password is wrong, so the
	// response never reveals which accounts exist.
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, iris.StatusOK, ctx)
}

// UpdateMyDetails applies a profile update to the authenticated user. Only
// name, email and image may change through this path; any other submitted key
// is silently dropped so a client cannot smuggle in role or password changes.
func UpdateMyDetails(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	allowedFields := []string{"name", "email", "image"}
	updates := map[string]interface{}{}
	for key, value := range body {
		if !slices.Contains(allowedFields, key) {
			continue
		}
		strValue, ok := value.(string)
		if !ok {
			continue
		}
		updates[key] = strValue
	}

	var user models.User
	userExists := storage.DB.Find(&user, claims.ID)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if email, ok := updates["email"].(string); ok {
		email = strings.ToLower(email)
		updates["email"] = email
		if email != user.Email {
			var other models.User
			otherExists, otherErr := getAndHandleUserExists(&other, email)
			if otherErr != nil {
				utils.CreateInternalServerError(ctx)
				return
			}
			if otherExists {
				utils.CreateEmailAlreadyRegistered(ctx)
				return
			}
		}
	}

	// A base64 image goes to the media host first; an already-hosted URL is
	// stored as given.
	if image, ok := updates["image"].(string); ok && image != "" && !isHostedURL(image) {
		publicID := fmt.Sprintf("user_%d_%d", user.ID, time.Now().UnixMilli())
		uploadedURL, uploadErr := storage.UploadBase64Image(image, publicID)
		if uploadErr != nil {
			utils.CreateError(iris.StatusInternalServerError, "Upload Error", "Image could not be uploaded.", ctx)
			return
		}
		updates["image"] = uploadedURL
	}

	if len(updates) > 0 {
		if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"user": user},
	})
}

func UpdateMyPassword(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input UpdatePasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.NewPassword != input.ConfirmPassword {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Passwords do not match", ctx)
		return
	}

	var user models.User
	userExists := storage.DB.Find(&user, claims.ID)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Your current password is wrong.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.NewPassword)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Bumping the token version invalidates every token issued before this
	// change; the fresh pair below is the only one that resolves.
	user.Password = hashedPassword
	user.TokenVersion++
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(user, iris.StatusOK, ctx)
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, statusCode int, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(&user)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(statusCode)
	ctx.JSON(iris.Map{
		"status":       "success",
		"token":        string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"data":         iris.Map{"user": user},
	})
}

func isHostedURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

type RegisterUserInput struct {
	Name            string `json:"name" validate:"required,max=256"`
	Email           string `json:"email" validate:"required,max=256,email"`
	Password        string `json:"password" validate:"required,min=8,max=256"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Role            string `json:"role"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=256"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}
