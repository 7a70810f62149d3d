package models

// Category is a free-form spending category name.
type Category struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}
