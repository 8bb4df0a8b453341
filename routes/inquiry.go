package routes

import (
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/kataras/iris/v12"
)

// CreateInquiry records a visitor inquiry against a property/agent pair. No
// principal required; the references are stored as submitted, matching the
// public form which always posts ids it just rendered.
func CreateInquiry(ctx iris.Context) {
	var input CreateInquiryInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	inquiry := models.Inquiry{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		PropertyID: input.PropertyID,
		AgentID:    input.AgentID,
		Status:     models.InquiryStatusNew,
	}

	if createErr := storage.DB.Create(&inquiry).Error; createErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error",
			"Could not send inquiry, please try again.", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"inquiry": &inquiry},
	})
}

// GetAllInquiries lists every inquiry for the admin dashboard, newest first,
// expanded with the property and agent summaries the table renders.
func GetAllInquiries(ctx iris.Context) {
	var inquiries []models.Inquiry
	result := storage.DB.
		Preload("Property").
		Preload("Agent").
		Order("created_at DESC").
		Find(&inquiries)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status":  "success",
		"results": len(inquiries),
		"data":    iris.Map{"inquiries": inquiries},
	})
}

type CreateInquiryInput struct {
	Name       string `json:"name" validate:"required,max=256"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Message    string `json:"message" validate:"required"`
	PropertyID uint   `json:"propertyId" validate:"required"`
	AgentID    uint   `json:"agentId" validate:"required"`
}
