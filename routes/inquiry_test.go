package routes

import (
	"net/http"
	"testing"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInquiryPublic(t *testing.T) {
	setupTestDB(t)
	app := buildTestApp(t)
	agent := createTestUser(t, "Agent", "agent@zikrabyte.in", "password123", models.RoleResidentialEmployee)
	property := createTestProperty(t, agent, "Flat A", models.PropertyTypeResidential, 20000, testImages)

	resp := doJSON(app, http.MethodPost, "/api/v1/inquiries", "", map[string]interface{}{
		"name":       "Visitor",
		"email":      "visitor@example.com",
		"phone":      "+91 98765 43210",
		"message":    "Is this flat still available?",
		"propertyId": property.ID,
		"agentId":    agent.ID,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	inquiry := dataOf(t, decodeBody(t, resp))["inquiry"].(map[string]interface{})
	assert.Equal(t, models.InquiryStatusNew, inquiry["status"])
	assert.Equal(t, "Visitor", inquiry["name"])

	var stored models.Inquiry
	require.NoError(t, storage.DB.First(&stored).Error)
	assert.Equal(t, property.ID, stored.PropertyID)
	assert.Equal(t, agent.ID, stored.AgentID)
}

func TestCreateInquiryValidatesInput(t *testing.T) {
	setupTestDB(t)
	app := buildTestApp(t)

	resp := doJSON(app, http.MethodPost, "/api/v1/inquiries", "", map[string]interface{}{
		"name":  "Visitor",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var count int64
	storage.DB.Model(&models.Inquiry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetAllInquiriesAdminOnly(t *testing.T) {
	setupTestDB(t)
	app := buildTestApp(t)
	employee := createTestUser(t, "Agent", "agent@zikrabyte.in", "password123", models.RoleResidentialEmployee)

	resp := doJSON(app, http.MethodGet, "/api/v1/inquiries", signTestToken(t, employee), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(app, http.MethodGet, "/api/v1/inquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetAllInquiriesExpandsReferences(t *testing.T) {
	setupTestDB(t)
	app := buildTestApp(t)
	admin := createTestUser(t, "Admin", "admin@zikrabyte.in", "password123", models.RoleAdmin)
	agent := createTestUser(t, "Agent", "agent@zikrabyte.in", "password123", models.RoleResidentialEmployee)
	property := createTestProperty(t, agent, "Flat A", models.PropertyTypeResidential, 20000, testImages)

	inquiry := models.Inquiry{
		Name:       "Visitor",
		Email:      "visitor@example.com",
		Phone:      "+91 98765 43210",
		Message:    "Interested.",
		PropertyID: property.ID,
		AgentID:    agent.ID,
		Status:     models.InquiryStatusNew,
	}
	require.NoError(t, storage.DB.Create(&inquiry).Error)

	resp := doJSON(app, http.MethodGet, "/api/v1/inquiries", signTestToken(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["results"])

	inquiries := dataOf(t, body)["inquiries"].([]interface{})
	require.Len(t, inquiries, 1)
	first := inquiries[0].(map[string]interface{})

	propertyRef := first["property"].(map[string]interface{})
	assert.Equal(t, "Flat A", propertyRef["title"])
	assert.Equal(t, "Mumbai", propertyRef["location"])

	agentRef := first["agent"].(map[string]interface{})
	assert.Equal(t, "Agent", agentRef["name"])
	assert.Equal(t, "agent@zikrabyte.in", agentRef["email"])
}
