package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	BarberID    uint      `json:"barber_id"`
	BarberName  string    `json:"barber_name"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}
