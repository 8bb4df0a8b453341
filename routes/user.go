package routes

import (
	"strings"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

// GetEmployeeStats returns the authenticated employee's own dashboard numbers.
// There is no separate "active" flag on listings, so activeListings mirrors the
// total on purpose.
func GetEmployeeStats(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var totalProperties int64
	countQuery := storage.DB.Model(&models.Property{}).
		Where("created_by_id = ?", claims.ID).
		Count(&totalProperties)
	if countQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var totalRevenue float64
	revenueQuery := storage.DB.Model(&models.Property{}).
		Where("created_by_id = ?", claims.ID).
		Select("COALESCE(SUM(rent), 0)").
		Scan(&totalRevenue)
	if revenueQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data": iris.Map{
			"stats": iris.Map{
				"totalProperties": totalProperties,
				"activeListings":  totalProperties,
				"totalRevenue":    totalRevenue,
			},
		},
	})
}

// GetAllEmployees lists every non-admin account for the admin employees table.
func GetAllEmployees(ctx iris.Context) {
	var employees []models.User
	result := storage.DB.Where("role <> ?", models.RoleAdmin).Order("created_at DESC").Find(&employees)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status":  "success",
		"results": len(employees),
		"data":    employees,
	})
}

func CreateEmployee(ctx iris.Context) {
	var input CreateEmployeeInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !models.ValidRole(input.Role) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown role", ctx)
		return
	}

	var employee models.User
	userExists, userExistsErr := getAndHandleUserExists(&employee, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	employee = models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: hashedPassword,
		Role:     input.Role,
		Image:    input.Image,
	}

	if createErr := storage.DB.Create(&employee).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "employee.create", "user", employee.ID, nil, employee)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"status": "success",
		"data":   employee,
	})
}

// UpdateEmployee lets an admin change an employee's name, email, role or image.
// Passwords are explicitly off limits here; the owner changes those themselves.
func UpdateEmployee(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, hasPassword := body["password"]; hasPassword {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Password update not allowed here", ctx)
		return
	}

	allowedFields := []string{"name", "email", "role", "image"}
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

	if role, ok := updates["role"].(string); ok && !models.ValidRole(role) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown role", ctx)
		return
	}
	if email, ok := updates["email"].(string); ok {
		updates["email"] = strings.ToLower(email)
	}

	var employee models.User
	employeeExists := storage.DB.Find(&employee, "id = ?", id)
	if employeeExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if employeeExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Employee not found", ctx)
		return
	}

	before := employee
	if len(updates) > 0 {
		if err := storage.DB.Model(&employee).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	utils.Audit(ctx, "employee.update", "user", employee.ID, before, employee)

	ctx.JSON(iris.Map{
		"status": "success",
		"data":   employee,
	})
}

func DeleteEmployee(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var employee models.User
	employeeExists := storage.DB.Find(&employee, "id = ?", id)
	if employeeExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if employeeExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Employee not found", ctx)
		return
	}

	if deleteErr := storage.DB.Delete(&models.User{}, employee.ID).Error; deleteErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "employee.delete", "user", employee.ID, employee, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

type CreateEmployeeInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,max=256,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Role     string `json:"role" validate:"required"`
	Image    string `json:"image"`
}
