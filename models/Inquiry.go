package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	InquiryStatusNew       = "New"
	InquiryStatusContacted = "Contacted"
	InquiryStatusClosed    = "Closed"
)

type Inquiry struct {
	gorm.Model
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Message    string   `json:"message"`
	PropertyID uint     `json:"propertyID"`
	AgentID    uint     `json:"agentID"`
	Status     string   `json:"status" gorm:"type:varchar(20);default:'New'"` // New, Contacted, Closed
	Property   Property `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	Agent      User     `json:"agent" gorm:"foreignKey:AgentID;references:ID"`
}

// Custom JSON marshaling to expand the property and agent references into the
// summaries the admin inquiries table renders.
func (i *Inquiry) MarshalJSON() ([]byte, error) {
	type propertySummary struct {
		ID       uint   `json:"ID"`
		Title    string `json:"title"`
		Location string `json:"location"`
	}
	type agentSummary struct {
		ID    uint   `json:"ID"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	type Alias Inquiry
	aux := &struct {
		Property *propertySummary `json:"property,omitempty"`
		Agent    *agentSummary    `json:"agent,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(i),
	}

	if i.Property.ID > 0 {
		aux.Property = &propertySummary{ID: i.Property.ID, Title: i.Property.Title, Location: i.Property.Location}
	}
	if i.Agent.ID > 0 {
		aux.Agent = &agentSummary{ID: i.Agent.ID, Name: i.Agent.Name, Email: i.Agent.Email}
	}

	return json.Marshal(aux)
}
