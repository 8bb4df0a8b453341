package utils

import (
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"

	"gorm.io/gorm"
)

// The authorization policy is a set of pure decisions over (role, id) principals.
// Handlers translate a false into a generic 403; the rule that denied never
// reaches the response surface.

func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// CanCreatePropertyType enforces role specialization: residential employees may
// only create Residential properties, commercial employees only Commercial,
// admins either. Unknown roles are denied rather than falling through.
func CanCreatePropertyType(role string, propertyType string) bool {
	switch role {
	case models.RoleAdmin:
		return propertyType == models.PropertyTypeResidential || propertyType == models.PropertyTypeCommercial
	case models.RoleResidentialEmployee:
		return propertyType == models.PropertyTypeResidential
	case models.RoleCommercialEmployee:
		return propertyType == models.PropertyTypeCommercial
	default:
		return false
	}
}

// CanModifyProperty allows updates and deletes by the record's owner or an admin.
func CanModifyProperty(role string, userID uint, createdByID uint) bool {
	if IsAdmin(role) {
		return true
	}
	return userID == createdByID
}

// PropertyScope restricts a list query to the principal's own records unless the
// principal is an admin. This is a data-scope filter, not a gate.
func PropertyScope(role string, userID uint, query *gorm.DB) *gorm.DB {
	if IsAdmin(role) {
		return query
	}
	return query.Where("created_by_id = ?", userID)
}
