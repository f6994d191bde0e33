package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/colegio/internal/reserva"
)

const reservasPath = "api/reservas-computador/"

// Reservas fetches the complete reservation collection, walking every page.
func (c *Client) Reservas(ctx context.Context) ([]reserva.Reserva, error) {
	raw, err := FetchAll(ctx, c.baseURL, reservasPath, c.getPage)
	if err != nil {
		return nil, err
	}
	return decodeAll[reserva.Reserva](raw)
}

// Reserva fetches a single reservation by id.
func (c *Client) Reserva(ctx context.Context, id int64) (reserva.Reserva, error) {
	var r reserva.Reserva
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s%d/", reservasPath, id), nil, nil, &r)
	return r, err
}

// NuevaReserva is the create/update payload.
type NuevaReserva struct {
	AlumnoNombre   string `json:"alumno_nombre"`
	AlumnoApellido string `json:"alumno_apellido"`
	FechaReserva   string `json:"fecha_reserva"`
	BloqueReserva  string `json:"bloque_reserva"`
}

// CreateReserva posts a new reservation. Callers run reserva.Evaluate first;
// the server applies the same rules again and answers 400 on a rejection.
func (c *Client) CreateReserva(ctx context.Context, nr NuevaReserva) (reserva.Reserva, error) {
	var r reserva.Reserva
	err := c.doJSON(ctx, http.MethodPost, reservasPath, nil, nr, &r)
	return r, err
}

// UpdateReserva replaces the mutable fields of an existing reservation.
func (c *Client) UpdateReserva(ctx context.Context, id int64, nr NuevaReserva) (reserva.Reserva, error) {
	var r reserva.Reserva
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s%d/", reservasPath, id), nil, nr, &r)
	return r, err
}

// CancelReserva deletes a reservation.
func (c *Client) CancelReserva(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", reservasPath, id), nil, nil, nil)
}
