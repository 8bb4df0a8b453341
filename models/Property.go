package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PropertyTypeResidential = "Residential"
	PropertyTypeCommercial  = "Commercial"
)

type Property struct {
	gorm.Model
	CreatedByID    uint           `json:"createdByID"`
	Title          string         `json:"title"`
	Type           string         `json:"type"` // Residential, Commercial
	Location       string         `json:"location"`
	Area           string         `json:"area"`
	GoogleMapsLink string         `json:"googleMapsLink"`
	Rent           float64        `json:"rent"`
	Deposit        float64        `json:"deposit"`
	Features       datatypes.JSON `json:"features"`
	OwnerDetails   string         `json:"ownerDetails"`
	Images         string         `json:"images"` // JSON array of URLs
	CreatedBy      User           `json:"createdBy" gorm:"foreignKey:CreatedByID;references:ID"`
}

// Custom JSON marshaling to expand the Images and Features columns into arrays
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Images    []string `json:"images"`
		Features  []string `json:"features"`
		CreatedBy *User    `json:"createdBy,omitempty"`
		*Alias
	}{
		Images:    []string{},
		Features:  []string{},
		CreatedBy: nil,
		Alias:     (*Alias)(p),
	}

	if p.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(p.Images), &images); err == nil {
			aux.Images = images
		}
	}

	if p.Features != nil {
		var features []string
		if err := json.Unmarshal(p.Features, &features); err == nil {
			aux.Features = features
		}
	}

	// Only include the creator when it was preloaded, without its Properties to
	// avoid a circular reference
	if p.CreatedBy.ID > 0 {
		creator := p.CreatedBy
		creator.Properties = nil
		aux.CreatedBy = &creator
	}

	return json.Marshal(aux)
}

// ImageList decodes the stored Images column.
func (p *Property) ImageList() []string {
	var images []string
	if p.Images != "" {
		if err := json.Unmarshal([]byte(p.Images), &images); err != nil {
			return []string{}
		}
	}
	if images == nil {
		images = []string{}
	}
	return images
}
