package dto

// SlotLayout is the wall-clock format of every slot boundary we return.
const SlotLayout = "2006-01-02 15:04"

type SlotDTO struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`
	Available  bool   `json:"available"`
}

// AvailabilityDTO is the range query response. Reason and Message are set
// only when Data is empty.
type AvailabilityDTO struct {
	Data    []SlotDTO `json:"data"`
	Total   int       `json:"total"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message,omitempty"`
}

// MallSlotDTO is one entry of the mall date-availability answer.
type MallSlotDTO struct {
	ServiceID       uint   `json:"servicio_id"`
	Start           string `json:"fecha_inicio"`
	End             string `json:"fecha_fin"`
	DurationMinutes int    `json:"duracion_minutos"`
	AppointmentTime string `json:"appointment_time"`
	AppointmentID   *uint  `json:"id_cita"`
	BarberID        uint   `json:"id_bar"`
}

type ResolvedDayDTO struct {
	Date    string `json:"date"`
	Weekday int    `json:"weekday"`
	Open    bool   `json:"open"`
	OpenAt  string `json:"open_at,omitempty"`
	CloseAt string `json:"close_at,omitempty"`
	Source  string `json:"source"`
}
