package routes

import (
	"time"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/utils"

	"github.com/kataras/iris/v12"
)

// GetDashboardStats aggregates the admin dashboard numbers: total properties,
// how many were uploaded during the server's local calendar day, and a per-type
// breakdown that always carries both type keys.
func GetDashboardStats(ctx iris.Context) {
	var totalProperties int64
	if err := storage.DB.Model(&models.Property{}).Count(&totalProperties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999000000, now.Location())

	var propertiesToday int64
	todayQuery := storage.DB.Model(&models.Property{}).
		Where("created_at BETWEEN ? AND ?", startOfToday, endOfToday).
		Count(&propertiesToday)
	if todayQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var typeCounts []struct {
		Type  string
		Count int64
	}
	groupQuery := storage.DB.Model(&models.Property{}).
		Select("type, count(*) as count").
		Group("type").
		Scan(&typeCounts)
	if groupQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	propertyTypeCounts := iris.Map{
		models.PropertyTypeResidential: int64(0),
		models.PropertyTypeCommercial:  int64(0),
	}
	for _, row := range typeCounts {
		propertyTypeCounts[row.Type] = row.Count
	}

	ctx.JSON(iris.Map{
		"status": "success",
		"data": iris.Map{
			"stats": iris.Map{
				"totalProperties":         totalProperties,
				"propertiesUploadedToday": propertiesToday,
				"propertyTypeCounts":      propertyTypeCounts,
			},
		},
	})
}
