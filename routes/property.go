package routes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetAllPublicProperties serves the marketing site listing: free-text search
// over title/location/area, a type filter ("all" means no filter), pagination
// and sorting. No principal required.
func GetAllPublicProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	limit := ctx.URLParamIntDefault("limit", 6)
	if limit < 1 {
		limit = 6
	}
	search := ctx.URLParam("search")
	propertyType := ctx.URLParam("type")
	sortParam := ctx.URLParamDefault("sort", "-createdAt")

	filtered := func() *gorm.DB {
		query := storage.DB.Model(&models.Property{})
		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"lower(title) LIKE ? OR lower(location) LIKE ? OR lower(area) LIKE ?",
				like, like, like)
		}
		if propertyType != "" && propertyType != "all" {
			query = query.Where("type = ?", propertyType)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	var properties []models.Property
	result := filtered().
		Preload("CreatedBy").
		Order(sortClause(sortParam)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&properties)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status":     "success",
		"results":    len(properties),
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
		"data":       iris.Map{"properties": properties},
	})
}

func GetPublicPropertyByID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"property": property},
	})
}

// GetAllProperties serves the dashboard "my properties" view. Admins see every
// record; employees only their own.
func GetAllProperties(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var properties []models.Property
	query := storage.DB.Preload("CreatedBy").Order("created_at DESC")
	result := utils.PropertyScope(claims.Role, claims.ID, query).Find(&properties)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status":  "success",
		"results": len(properties),
		"data":    iris.Map{"properties": properties},
	})
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"property": property},
	})
}

func CreateProperty(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreatePropertyInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.CanCreatePropertyType(claims.Role, input.Type) {
		utils.CreateForbidden(ctx)
		return
	}

	imagesArr, uploadErr := uploadImages(input.Images, "")
	if uploadErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Upload Error", "Images could not be uploaded.", ctx)
		return
	}
	if len(imagesArr) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"You must upload at least one image for the property.", ctx)
		return
	}
	imagesJSON, _ := json.Marshal(imagesArr)

	features := input.Features
	if features == nil {
		features = []string{}
	}
	featuresJSON, _ := json.Marshal(features)

	property := models.Property{
		CreatedByID:    claims.ID,
		Title:          input.Title,
		Type:           input.Type,
		Location:       input.Location,
		Area:           input.Area,
		GoogleMapsLink: input.GoogleMapsLink,
		Rent:           *input.Rent,
		Deposit:        *input.Deposit,
		Features:       datatypes.JSON(featuresJSON),
		OwnerDetails:   input.OwnerDetails,
		Images:         string(imagesJSON),
	}

	if createErr := storage.DB.Create(&property).Error; createErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", createErr.Error(), ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"property": &property},
	})
}

func UpdateProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)
	if !utils.CanModifyProperty(claims.Role, claims.ID, property.CreatedByID) {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdatePropertyInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Image reconciliation: the client declares which of the existing images to
	// keep (a JSON-encoded list; a malformed list counts as keeping none), and
	// any new uploads are appended after them in upload order.
	finalImages := []string{}
	if input.ExistingImages != nil && *input.ExistingImages != "" {
		var kept []string
		if jsonErr := json.Unmarshal([]byte(*input.ExistingImages), &kept); jsonErr == nil && kept != nil {
			finalImages = kept
		}
	}

	uploaded, uploadErr := uploadImages(input.Images, id)
	if uploadErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Upload Error", "Images could not be uploaded.", ctx)
		return
	}
	finalImages = append(finalImages, uploaded...)
	imagesJSON, _ := json.Marshal(finalImages)
	property.Images = string(imagesJSON)

	// Features arrive as one comma-separated string; an omitted field resets
	// the list rather than keeping the old one.
	features := []string{}
	if input.Features != nil {
		for _, feature := range strings.Split(*input.Features, ",") {
			if trimmed := strings.TrimSpace(feature); trimmed != "" {
				features = append(features, trimmed)
			}
		}
	}
	featuresJSON, _ := json.Marshal(features)
	property.Features = datatypes.JSON(featuresJSON)

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Type != nil {
		property.Type = *input.Type
	}
	if input.Location != nil {
		property.Location = *input.Location
	}
	if input.Area != nil {
		property.Area = *input.Area
	}
	if input.GoogleMapsLink != nil {
		property.GoogleMapsLink = *input.GoogleMapsLink
	}
	if input.OwnerDetails != nil {
		property.OwnerDetails = *input.OwnerDetails
	}
	if input.Rent != nil {
		property.Rent = *input.Rent
	}
	if input.Deposit != nil {
		property.Deposit = *input.Deposit
	}

	if saveErr := storage.DB.Save(property).Error; saveErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", saveErr.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data":   iris.Map{"property": property},
	})
}

func DeleteProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)
	if !utils.CanModifyProperty(claims.Role, claims.ID, property.CreatedByID) {
		utils.CreateForbidden(ctx)
		return
	}

	propertyDeleted := storage.DB.Delete(&models.Property{}, property.ID)
	if propertyDeleted.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", propertyDeleted.Error.Error(), ctx)
		return
	}

	utils.Audit(ctx, "property.delete", "property", property.ID, property, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func getPropertyByID(id string, ctx iris.Context) *models.Property {
	var property models.Property
	propertyExists := storage.DB.Preload("CreatedBy").Find(&property, "id = ?", id)

	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &property
}

// uploadImages pushes every pending image to the media host concurrently and
// waits for the whole batch. One failed upload fails the batch, so a partial
// image set never reaches the database. Entries that are already hosted URLs
// pass through untouched.
func uploadImages(images []string, propertyID string) ([]string, error) {
	pending := make([]string, 0, len(images))
	for _, image := range images {
		if image != "" {
			pending = append(pending, image)
		}
	}

	urls := make([]string, len(pending))
	var group errgroup.Group
	timestamp := time.Now().UnixMilli()

	for i, image := range pending {
		if isHostedURL(image) {
			urls[i] = image
			continue
		}

		i, image := i, image
		group.Go(func() error {
			publicID := fmt.Sprintf("property_%d_%d", timestamp, i)
			if propertyID != "" {
				publicID = "property/" + propertyID + "/" + publicID
			}
			uploadedURL, err := storage.UploadBase64Image(image, publicID)
			if err != nil {
				return err
			}
			urls[i] = uploadedURL
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// sortClause turns the public API's sort parameter (comma-separated JSON field
// names, "-" prefix for descending) into an ORDER BY over known columns.
func sortClause(sortParam string) string {
	columns := map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "title",
		"location":  "location",
		"area":      "area",
		"type":      "type",
		"rent":      "rent",
		"deposit":   "deposit",
	}

	var clauses []string
	for _, field := range strings.Split(sortParam, ",") {
		field = strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = "DESC"
		}
		if column, ok := columns[field]; ok {
			clauses = append(clauses, column+" "+direction)
		}
	}

	if len(clauses) == 0 {
		return "created_at DESC"
	}
	return strings.Join(clauses, ", ")
}

type CreatePropertyInput struct {
	Title          string   `json:"title" validate:"required,max=256"`
	Type           string   `json:"type" validate:"required,oneof=Residential Commercial"`
	Location       string   `json:"location" validate:"required"`
	Area           string   `json:"area" validate:"required"`
	GoogleMapsLink string   `json:"googleMapsLink" validate:"required"`
	Rent           *float64 `json:"rent" validate:"required,gte=0"`
	Deposit        *float64 `json:"deposit" validate:"required,gte=0"`
	Features       []string `json:"features"`
	OwnerDetails   string   `json:"ownerDetails"`
	Images         []string `json:"images" validate:"required,min=1"`
}

type UpdatePropertyInput struct {
	Title          *string  `json:"title"`
	Type           *string  `json:"type" validate:"omitempty,oneof=Residential Commercial"`
	Location       *string  `json:"location"`
	Area           *string  `json:"area"`
	GoogleMapsLink *string  `json:"googleMapsLink"`
	Rent           *float64 `json:"rent" validate:"omitempty,gte=0"`
	Deposit        *float64 `json:"deposit" validate:"omitempty,gte=0"`
	Features       *string  `json:"features"` // comma-separated
	OwnerDetails   *string  `json:"ownerDetails"`
	ExistingImages *string  `json:"existingImages"` // JSON-encoded keep list
	Images         []string `json:"images"`         // new uploads
}
