package api

import (
	"context"
	"time"
)

// Comunicado is an announcement published by the school.
type Comunicado struct {
	ID        int64     `json:"id"`
	Titulo    string    `json:"titulo"`
	Contenido string    `json:"contenido"`
	CreatedAt time.Time `json:"created_at"`
}

// Comunicados lists announcements, newest first (server ordering).
func (c *Client) Comunicados(ctx context.Context) ([]Comunicado, error) {
	raw, err := FetchAll(ctx, c.baseURL, "api/comunicados/", c.getPage)
	if err != nil {
		return nil, err
	}
	return decodeAll[Comunicado](raw)
}
