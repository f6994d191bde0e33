package reserva

import (
	"strings"
	"time"
)

// Reserva is one booked computer-lab slot as the API stores it.
type Reserva struct {
	ID             int64      `json:"id"`
	AlumnoNombre   string     `json:"alumno_nombre"`
	AlumnoApellido string     `json:"alumno_apellido"`
	FechaReserva   string     `json:"fecha_reserva"` // YYYY-MM-DD
	BloqueReserva  string     `json:"bloque_reserva"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// Bloques are the daily lab windows. The set is fixed by the school timetable,
// not configurable.
var Bloques = []string{
	"10:00 a 10:20",
	"11:45 a 12:00",
	"13:30 a 13:50",
	"13:50 a 14:15",
}

// CapacidadBloque is the number of computers available per bloque.
const CapacidadBloque = 3

const FechaLayout = "2006-01-02"

func IsBloque(b string) bool {
	for _, v := range Bloques {
		if v == b {
			return true
		}
	}
	return false
}

// NextEligibleDate returns the single date new reservations may target, given
// "today". Reservations are always for the next business day:
//
//   - Mon-Thu: tomorrow
//   - Sun: the coming Monday
//   - Fri, Sat: none (the lab is closed the next day either way)
//
// The second return is false when no eligible day exists.
func NextEligibleDate(today time.Time) (time.Time, bool) {
	switch today.Weekday() {
	case time.Friday, time.Saturday:
		return time.Time{}, false
	default:
		d := today.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()), true
	}
}

// sameDay compares calendar dates, ignoring any time-of-day component.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameAlumno(a Reserva, nombre, apellido string) bool {
	return strings.EqualFold(a.AlumnoNombre, nombre) &&
		strings.EqualFold(a.AlumnoApellido, apellido)
}
