package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var messages = map[string]string{
	"invalid_request":        "Datos inválidos.",
	"invalid_date":           "Fecha inválida.",
	"invalid_date_or_time":   "Fecha u hora inválida.",
	"invalid_time":           "Hora inválida.",
	"invalid_range":          "El rango de fechas es inválido.",
	"invalid_duration":       "La duración del servicio es inválida.",
	"invalid_step":           "El intervalo es inválido.",
	"invalid_weekday":        "Día de la semana inválido.",
	"invalid_interval":       "La hora de inicio debe ser anterior a la de fin.",
	"invalid_kind":           "Tipo de excepción inválido.",
	"hours_required":         "El horario especial requiere apertura y cierre.",
	"date_in_past":           "La fecha ya pasó.",
	"date_too_far":           "La fecha está demasiado lejos.",
	"no_barbers":             "La sucursal no tiene barberos activos.",
	"barber_without_branch":  "El barbero no tiene sucursal.",
	"service_inactive":       "El servicio no está activo.",
	"service_not_in_branch":  "El servicio no pertenece a la sucursal.",
	"outside_working_hours":  "Fuera del horario de atención.",
	"during_break":           "El horario cae en un descanso.",
	"time_conflict":          "Conflicto de horario.",
	"weekly_hours_exists":    "Ya existe un horario para ese día.",
	"exception_overlap":      "Ya existe una excepción en esas fechas.",
	"break_overlap":          "Ya existe un descanso en ese horario.",
	"invalid_state":          "La cita no se puede modificar.",
	"registration_closed":    "El registro está cerrado.",
	"invalid_credentials":    "Credenciales inválidas.",
	"branch_required":        "La sucursal es obligatoria.",
	"barber_required":        "El barbero es obligatorio.",
}

// Status maps a business code to its HTTP status.
func Status(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_exists"),
		strings.HasSuffix(code, "_overlap"),
		strings.HasPrefix(code, "duplicate"),
		code == "time_conflict":
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	if strings.HasSuffix(code, "_not_found") {
		return "Recurso no encontrado."
	}
	return code
}

// Respond writes err: business errors with their own status, anything else
// as a logged 500.
func Respond(c *gin.Context, err error) {
	if code, ok := CodeOf(err); ok {
		Write(c, Status(code), code, Message(code))
		return
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Internal(c, "internal_error", "Error interno.")
}
