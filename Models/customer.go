package Models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name          string `json:"name" gorm:"size:255;not null;index"`
	ContactPerson string `json:"contact_person" gorm:"size:255"`
	Address       string `json:"address" gorm:"size:255"`
	Zip           string `json:"zip" gorm:"size:20"`
	City          string `json:"city" gorm:"size:100"`
	Phone         string `json:"phone" gorm:"size:50"`
	Email         string `json:"email" gorm:"size:255"`
	Notes         string `json:"notes" gorm:"type:text"`

	Quotes []Quote `json:"quotes,omitempty" gorm:"foreignKey:CustomerID"`
}

type CustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Zip           string `json:"zip"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Notes         string `json:"notes"`
}
