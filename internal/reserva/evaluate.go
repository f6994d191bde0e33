package reserva

import (
	"strings"
	"time"
)

// Reason classifies why a candidate reservation was turned down.
type Reason string

const (
	MissingFields    Reason = "missing_fields"
	NoEligibleDate   Reason = "no_eligible_date"
	InvalidDate      Reason = "invalid_date"
	DuplicateBooking Reason = "duplicate_booking"
	SlotFull         Reason = "slot_full"
)

// Decision is the outcome of evaluating a candidate against the current list.
// Rejections are ordinary data, not errors: the caller maps them to user-facing
// messages.
type Decision struct {
	Accepted bool
	Reason   Reason
}

func accept() Decision         { return Decision{Accepted: true} }
func reject(r Reason) Decision { return Decision{Reason: r} }

// Message returns the Spanish message the original screens showed for each
// rejection, for CLI and API responses.
func (d Decision) Message() string {
	switch d.Reason {
	case MissingFields:
		return "Por favor, rellena todos los campos"
	case NoEligibleDate:
		return "No se pueden hacer reservas hoy. Las reservas solo están disponibles de lunes a jueves (para el día siguiente) y domingo (para el lunes)."
	case InvalidDate:
		return "Solo puedes hacer reservas para el próximo día laborable (lunes a viernes)."
	case DuplicateBooking:
		return "Ya tienes una reserva para ese día. Solo se permite una reserva por alumno por día."
	case SlotFull:
		return "Ya no hay computadores disponibles en ese bloque horario. Por favor, selecciona otro bloque."
	}
	return ""
}

// Candidate is a reservation draft as entered by the user.
type Candidate struct {
	AlumnoNombre   string
	AlumnoApellido string
	FechaReserva   time.Time
	BloqueReserva  string
}

// Evaluate decides whether a candidate may be booked, given "today" and the
// already-fetched reservation list. It is pure: no clock, no I/O, no mutation
// of existing. Rules apply in order and the first failure wins.
func Evaluate(today time.Time, c Candidate, existing []Reserva) Decision {
	if strings.TrimSpace(c.AlumnoNombre) == "" ||
		strings.TrimSpace(c.AlumnoApellido) == "" ||
		c.FechaReserva.IsZero() ||
		strings.TrimSpace(c.BloqueReserva) == "" {
		return reject(MissingFields)
	}

	eligible, ok := NextEligibleDate(today)
	if !ok {
		return reject(NoEligibleDate)
	}
	if !sameDay(c.FechaReserva, eligible) {
		return reject(InvalidDate)
	}

	fecha := c.FechaReserva.Format(FechaLayout)
	for _, r := range existing {
		if r.FechaReserva == fecha && sameAlumno(r, c.AlumnoNombre, c.AlumnoApellido) {
			return reject(DuplicateBooking)
		}
	}

	if countBloque(existing, fecha, c.BloqueReserva) >= CapacidadBloque {
		return reject(SlotFull)
	}
	return accept()
}

// RemainingCapacity reports how many seats are left for a (fecha, bloque)
// pair. It uses the same counting rule as Evaluate's capacity check.
func RemainingCapacity(fecha time.Time, bloque string, existing []Reserva) int {
	n := CapacidadBloque - countBloque(existing, fecha.Format(FechaLayout), bloque)
	if n < 0 {
		return 0
	}
	return n
}

func countBloque(existing []Reserva, fecha, bloque string) int {
	n := 0
	for _, r := range existing {
		if r.FechaReserva == fecha && r.BloqueReserva == bloque {
			n++
		}
	}
	return n
}
