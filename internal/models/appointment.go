package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint  `gorm:"<-:create;not null;index" json:"provider_id"`
	Provider   *User `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CustomerID uint  `gorm:"<-:create;not null;index" json:"customer_id"`
	Customer   *User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date Date   `gorm:"not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Status string `gorm:"size:20;not null;default:'pending';check:chk_appointments_status,status IN ('pending','approved','rejected','completed','cancelled')" json:"status"`

	Rating  *int    `json:"rating"`
	Comment *string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateString renders the calendar date as YYYY-MM-DD.
func (a *Appointment) DateString() string {
	return a.Date.String()
}
