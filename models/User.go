package models

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin               = "Admin"
	RoleResidentialEmployee = "Residential Employee"
	RoleCommercialEmployee  = "Commercial Employee"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"type:varchar(40);default:'Residential Employee';index"` // Admin, Residential Employee, Commercial Employee
	Image    string `json:"image"`
	// Bumped on password change so previously issued access tokens stop resolving.
	TokenVersion int        `json:"-" gorm:"default:0"`
	Properties   []Property `json:"properties,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleResidentialEmployee, RoleCommercialEmployee:
		return true
	}
	return false
}
