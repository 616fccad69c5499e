package models

import "gorm.io/datatypes"

type Plan struct {
	BaseModel
	PlanName      string         `gorm:"not null" json:"planName"`
	DurationValue int            `gorm:"not null" json:"durationValue"`
	DurationUnit  DurationUnit   `gorm:"type:varchar(10);default:'months'" json:"durationUnit"`
	Price         float64        `gorm:"not null" json:"price"`
	Discount      float64        `gorm:"default:0" json:"discount"` // percent, 0-100
	AccessTypes   datatypes.JSON `json:"accessTypes"`               // ["Gym","Classes",...]
	Description   string         `json:"description"`
	Features      datatypes.JSON `json:"features"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
}

// DurationInDays converts the plan duration; months count as 30 days.
func (p *Plan) DurationInDays() int {
	if p.DurationUnit == DurationUnitMonths {
		return p.DurationValue * 30
	}
	return p.DurationValue
}

// FinalPrice is the price after the plan's own discount.
func (p *Plan) FinalPrice() float64 {
	return p.Price - (p.Price * p.Discount / 100)
}
