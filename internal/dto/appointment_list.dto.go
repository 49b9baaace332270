package dto

import "time"

// AppointmentListDTO is one row of the dashboard listing, joined with the
// counterpart names.
type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	ProviderID   uint      `json:"provider_id"`
	CustomerID   uint      `json:"customer_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       string    `json:"status"`
	Rating       *int      `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	ProviderName string    `json:"provider_name"`
	Category     *string   `json:"category"`
	CustomerName string    `json:"customer_name"`
}
