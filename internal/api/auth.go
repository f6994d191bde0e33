package api

import (
	"context"
	"net/http"
)

// LoginResult is the payload of a successful alumno login.
type LoginResult struct {
	Token    string `json:"token"`
	AlumnoID int64  `json:"alumno_id"`
	Nombre   string `json:"nombre"`
	Curso    string `json:"curso"`
}

// Login authenticates a student by RUT plus the first four digits of the RUT
// used as verification code. On success the client keeps the token for
// subsequent requests.
func (c *Client) Login(ctx context.Context, rut, digitos string) (LoginResult, error) {
	req := struct {
		Rut                 string `json:"rut"`
		DigitosVerificacion string `json:"digitos_verificacion"`
	}{Rut: rut, DigitosVerificacion: digitos}

	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "api/alumno-auth/", nil, req, &res); err != nil {
		return LoginResult{}, err
	}
	c.token = res.Token
	return res, nil
}

// LoginStaff authenticates a staff member by username and password against
// the DRF token endpoint.
func (c *Client) LoginStaff(ctx context.Context, username, password string) (string, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var res struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "api-token-auth/", nil, req, &res); err != nil {
		return "", err
	}
	c.token = res.Token
	return res.Token, nil
}

// Logout revokes the current token server-side. The caller still clears its
// local session either way.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "api/logout/", nil, nil, nil)
}
