package utils

import (
	"testing"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
)

func TestCanCreatePropertyType(t *testing.T) {
	cases := []struct {
		name         string
		role         string
		propertyType string
		want         bool
	}{
		{"residential employee residential", models.RoleResidentialEmployee, models.PropertyTypeResidential, true},
		{"residential employee commercial", models.RoleResidentialEmployee, models.PropertyTypeCommercial, false},
		{"commercial employee commercial", models.RoleCommercialEmployee, models.PropertyTypeCommercial, true},
		{"commercial employee residential", models.RoleCommercialEmployee, models.PropertyTypeResidential, false},
		{"admin residential", models.RoleAdmin, models.PropertyTypeResidential, true},
		{"admin commercial", models.RoleAdmin, models.PropertyTypeCommercial, true},
		{"admin unknown type", models.RoleAdmin, "Industrial", false},
		{"unknown role", "Manager", models.PropertyTypeResidential, false},
		{"empty role", "", models.PropertyTypeResidential, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanCreatePropertyType(tc.role, tc.propertyType); got != tc.want {
				t.Fatalf("CanCreatePropertyType(%q, %q) = %v, want %v", tc.role, tc.propertyType, got, tc.want)
			}
		})
	}
}

func TestCanModifyProperty(t *testing.T) {
	cases := []struct {
		name        string
		role        string
		userID      uint
		createdByID uint
		want        bool
	}{
		{"owner", models.RoleResidentialEmployee, 3, 3, true},
		{"non-owner employee", models.RoleCommercialEmployee, 3, 7, false},
		{"admin non-owner", models.RoleAdmin, 1, 7, true},
		{"unknown role non-owner", "Manager", 3, 7, false},
		{"unknown role owner", "Manager", 3, 3, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanModifyProperty(tc.role, tc.userID, tc.createdByID); got != tc.want {
				t.Fatalf("CanModifyProperty(%q, %d, %d) = %v, want %v", tc.role, tc.userID, tc.createdByID, got, tc.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin(models.RoleAdmin) {
		t.Fatal("expected Admin to be admin")
	}
	if IsAdmin(models.RoleResidentialEmployee) || IsAdmin(models.RoleCommercialEmployee) || IsAdmin("") {
		t.Fatal("expected non-admin roles to not be admin")
	}
}
