package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a spending category.
//
// Categories form a flat two-level hierarchy: a category either is a parent
// or references one through ParentID.
type Category struct {
	DefaultModel
	Name     string     `json:"name" gorm:"uniqueIndex:category_name" example:"Groceries"`   // Name of the category
	ParentID *uuid.UUID `json:"parentId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`     // ID of the parent category, null for top-level categories
	Parent   *Category  `json:"-"`                                                           // The parent category
	ColorHex string     `json:"colorHex" example:"#9FC5A8" default:""`                       // Color used for this category in charts
	Note     string     `json:"note" example:"Supermarkets and corner shops" default:""`     // Notes about the category
	Archived bool       `json:"archived" example:"true" default:"false"`                     // Is the category archived?
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.ColorHex = strings.TrimSpace(c.ColorHex)

	return nil
}

// BeforeCreate checks that the parent category exists.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.ParentID != nil && *c.ParentID != uuid.Nil {
		return tx.First(&Category{}, "id = ?", *c.ParentID).Error
	}

	return nil
}

// ParentName returns the name of the parent category, or the empty string for
// top-level categories.
func (c Category) ParentName(db *gorm.DB) (string, error) {
	if c.ParentID == nil || *c.ParentID == uuid.Nil {
		return "", nil
	}

	var parent Category
	err := db.First(&parent, "id = ?", *c.ParentID).Error
	if err != nil {
		return "", err
	}

	return parent.Name, nil
}
