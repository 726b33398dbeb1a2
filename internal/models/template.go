package models

import "github.com/lib/pq"

// Template is a purchasable digital template in the catalog.
type Template struct {
	BaseModel
	Name            string         `json:"name"`
	Slug            string         `gorm:"uniqueIndex" json:"slug"`
	Description     string         `json:"description"`
	LongDescription string         `json:"long_description"`
	Price           float64        `json:"price"`
	Category        string         `gorm:"index" json:"category"`
	PreviewImageURL string         `json:"preview_image_url"`
	DemoURL         string         `json:"demo_url"`
	DownloadURL     string         `json:"download_url"`
	TechStack       pq.StringArray `gorm:"type:text[]" json:"tech_stack"`
	Features        pq.StringArray `gorm:"type:text[]" json:"features"`
	HotpayItemID    string         `json:"hotpay_item_id"`
	IsActive        bool           `gorm:"index" json:"is_active"`
}
