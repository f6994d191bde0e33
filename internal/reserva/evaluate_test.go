package reserva

import (
	"testing"
	"time"
)

// 2024-08-14 is a Wednesday.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	wednesday = date(2024, time.August, 14)
	thursday  = date(2024, time.August, 15)
	friday    = date(2024, time.August, 16)
	saturday  = date(2024, time.August, 17)
	sunday    = date(2024, time.August, 18)
	monday    = date(2024, time.August, 19)
)

func candidate(fecha time.Time) Candidate {
	return Candidate{
		AlumnoNombre:   "Juan",
		AlumnoApellido: "Pérez",
		FechaReserva:   fecha,
		BloqueReserva:  "10:00 a 10:20",
	}
}

func TestNextEligibleDate(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  time.Time
		ok    bool
	}{
		{"wednesday gives thursday", wednesday, thursday, true},
		{"thursday gives friday", thursday, friday, true},
		{"friday gives nothing", friday, time.Time{}, false},
		{"saturday gives nothing", saturday, time.Time{}, false},
		{"sunday gives monday", sunday, monday, true},
		{"monday gives tuesday", monday, date(2024, time.August, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextEligibleDate(tt.today)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
	}{
		{"empty nombre", Candidate{AlumnoApellido: "Pérez", FechaReserva: thursday, BloqueReserva: Bloques[0]}},
		{"blank apellido", Candidate{AlumnoNombre: "Juan", AlumnoApellido: "   ", FechaReserva: thursday, BloqueReserva: Bloques[0]}},
		{"zero fecha", Candidate{AlumnoNombre: "Juan", AlumnoApellido: "Pérez", BloqueReserva: Bloques[0]}},
		{"empty bloque", Candidate{AlumnoNombre: "Juan", AlumnoApellido: "Pérez", FechaReserva: thursday}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(wednesday, tt.c, nil)
			if d.Accepted || d.Reason != MissingFields {
				t.Fatalf("got %+v, want MissingFields rejection", d)
			}
		})
	}
}

func TestEvaluateFridaySaturdayAlwaysRejected(t *testing.T) {
	for _, today := range []time.Time{friday, saturday} {
		// Even a candidate for a perfectly ordinary weekday is rejected.
		d := Evaluate(today, candidate(monday), nil)
		if d.Accepted || d.Reason != NoEligibleDate {
			t.Fatalf("today=%v: got %+v, want NoEligibleDate", today.Weekday(), d)
		}
	}
}

func TestEvaluateSundayOnlyMonday(t *testing.T) {
	if d := Evaluate(sunday, candidate(monday), nil); !d.Accepted {
		t.Fatalf("sunday->monday: got %+v, want accepted", d)
	}
	// Tuesday is a weekday but not the eligible day.
	if d := Evaluate(sunday, candidate(date(2024, time.August, 20)), nil); d.Accepted || d.Reason != InvalidDate {
		t.Fatalf("sunday->tuesday: got %+v, want InvalidDate", d)
	}
}

func TestEvaluateWeekdayOnlyTomorrow(t *testing.T) {
	if d := Evaluate(wednesday, candidate(thursday), nil); !d.Accepted {
		t.Fatalf("wednesday->thursday: got %+v, want accepted", d)
	}
	if d := Evaluate(wednesday, candidate(friday), nil); d.Accepted || d.Reason != InvalidDate {
		t.Fatalf("wednesday->friday: got %+v, want InvalidDate", d)
	}
	if d := Evaluate(wednesday, candidate(wednesday), nil); d.Accepted || d.Reason != InvalidDate {
		t.Fatalf("wednesday->today: got %+v, want InvalidDate", d)
	}
}

func TestEvaluateDuplicateIsCaseInsensitive(t *testing.T) {
	existing := []Reserva{{
		ID:             1,
		AlumnoNombre:   "Ana",
		AlumnoApellido: "Pérez",
		FechaReserva:   "2024-08-15",
		BloqueReserva:  "11:45 a 12:00",
	}}

	c := candidate(thursday)
	c.AlumnoNombre = "ana"
	c.AlumnoApellido = "PÉREZ"
	if d := Evaluate(wednesday, c, existing); d.Accepted || d.Reason != DuplicateBooking {
		t.Fatalf("got %+v, want DuplicateBooking", d)
	}

	// Same student on a different day is not a duplicate; the date rule
	// rejects first because the candidate date is not the eligible one.
	c.FechaReserva = monday
	if d := Evaluate(wednesday, c, existing); d.Reason != InvalidDate {
		t.Fatalf("got %+v, want InvalidDate", d)
	}
	// And with the existing reservation on another date, the same candidate
	// passes the duplicate rule.
	existing[0].FechaReserva = "2024-08-14"
	c.FechaReserva = thursday
	if d := Evaluate(wednesday, c, existing); !d.Accepted {
		t.Fatalf("got %+v, want accepted", d)
	}
}

func TestEvaluateSlotCapacity(t *testing.T) {
	mk := func(id int64, nombre string) Reserva {
		return Reserva{
			ID:             id,
			AlumnoNombre:   nombre,
			AlumnoApellido: "González",
			FechaReserva:   "2024-08-15",
			BloqueReserva:  "10:00 a 10:20",
		}
	}

	// Two occupants: still room for a third.
	existing := []Reserva{mk(1, "María"), mk(2, "Pedro")}
	if d := Evaluate(wednesday, candidate(thursday), existing); !d.Accepted {
		t.Fatalf("count=2: got %+v, want accepted", d)
	}

	// Three occupants: full.
	existing = append(existing, mk(3, "Luisa"))
	if d := Evaluate(wednesday, candidate(thursday), existing); d.Accepted || d.Reason != SlotFull {
		t.Fatalf("count=3: got %+v, want SlotFull", d)
	}

	// A different bloque on the same day is unaffected.
	c := candidate(thursday)
	c.BloqueReserva = "13:30 a 13:50"
	if d := Evaluate(wednesday, c, existing); !d.Accepted {
		t.Fatalf("other bloque: got %+v, want accepted", d)
	}
}

func TestRemainingCapacity(t *testing.T) {
	mk := func(nombre string) Reserva {
		return Reserva{AlumnoNombre: nombre, AlumnoApellido: "X", FechaReserva: "2024-08-15", BloqueReserva: "10:00 a 10:20"}
	}
	var existing []Reserva
	for i, want := range []int{3, 2, 1, 0} {
		if got := RemainingCapacity(thursday, "10:00 a 10:20", existing); got != want {
			t.Fatalf("with %d existing: got %d, want %d", i, got, want)
		}
		existing = append(existing, mk(string(rune('a'+i))))
	}
	// Never negative, even past capacity.
	if got := RemainingCapacity(thursday, "10:00 a 10:20", existing); got != 0 {
		t.Fatalf("over capacity: got %d, want 0", got)
	}
	// Other pairs unaffected.
	if got := RemainingCapacity(thursday, "11:45 a 12:00", existing); got != 3 {
		t.Fatalf("other bloque: got %d, want 3", got)
	}
	if got := RemainingCapacity(friday, "10:00 a 10:20", existing); got != 3 {
		t.Fatalf("other fecha: got %d, want 3", got)
	}
}

func TestEvaluateEndToEnd(t *testing.T) {
	// Wednesday, empty list: accepted.
	if d := Evaluate(wednesday, candidate(thursday), nil); !d.Accepted {
		t.Fatalf("empty list: got %+v, want accepted", d)
	}
}

func TestIsBloque(t *testing.T) {
	for _, b := range Bloques {
		if !IsBloque(b) {
			t.Fatalf("IsBloque(%q) = false", b)
		}
	}
	if IsBloque("Mañana") {
		t.Fatal("IsBloque accepted a label outside the fixed set")
	}
}
