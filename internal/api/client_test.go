package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("abc123")
	if _, err := c.Reservas(context.Background()); err != nil {
		t.Fatalf("Reservas: %v", err)
	}
	if gotAuth != "Token abc123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/alumno-auth/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Rut     string `json:"rut"`
			Digitos string `json:"digitos_verificacion"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Rut != "12345678-9" || req.Digitos != "1234" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Datos incorrectos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-1","alumno_id":7,"nombre":"Juan Pérez","curso":"8°A"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "12345678-9", "1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" || res.AlumnoID != 7 {
		t.Fatalf("result = %+v", res)
	}
	if c.token != "tok-1" {
		t.Fatal("client did not keep the token")
	}

	_, err = c.Login(context.Background(), "12345678-9", "0000")
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400 StatusError", err)
	}
	if got := err.Error(); got != "api: status 400: Datos incorrectos" {
		t.Fatalf("message = %q", got)
	}
}

func TestClientReservasPaginated(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.RawQuery {
		case "":
			_, _ = w.Write([]byte(`{"count":3,"next":"` + srv.URL + `/api/reservas-computador/?page=2","previous":null,"results":[
				{"id":1,"alumno_nombre":"Ana","alumno_apellido":"Pérez","fecha_reserva":"2024-08-15","bloque_reserva":"10:00 a 10:20"},
				{"id":2,"alumno_nombre":"Luis","alumno_apellido":"Soto","fecha_reserva":"2024-08-15","bloque_reserva":"11:45 a 12:00"}]}`))
		case "page=2":
			_, _ = w.Write([]byte(`{"count":3,"next":null,"previous":"` + srv.URL + `/api/reservas-computador/","results":[
				{"id":3,"alumno_nombre":"Eva","alumno_apellido":"Ríos","fecha_reserva":"2024-08-15","bloque_reserva":"10:00 a 10:20"}]}`))
		default:
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	rs, err := c.Reservas(context.Background())
	if err != nil {
		t.Fatalf("Reservas: %v", err)
	}
	if len(rs) != 3 || rs[0].ID != 1 || rs[2].ID != 3 {
		t.Fatalf("got %+v", rs)
	}
}

func TestClientCreateAndCancelReserva(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/reservas-computador/":
			var nr NuevaReserva
			_ = json.NewDecoder(r.Body).Decode(&nr)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 9, "alumno_nombre": nr.AlumnoNombre, "alumno_apellido": nr.AlumnoApellido,
				"fecha_reserva": nr.FechaReserva, "bloque_reserva": nr.BloqueReserva,
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reservas-computador/9/":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	r, err := c.CreateReserva(context.Background(), NuevaReserva{
		AlumnoNombre: "Juan", AlumnoApellido: "Pérez",
		FechaReserva: "2024-08-15", BloqueReserva: "10:00 a 10:20",
	})
	if err != nil {
		t.Fatalf("CreateReserva: %v", err)
	}
	if r.ID != 9 || r.AlumnoNombre != "Juan" {
		t.Fatalf("created = %+v", r)
	}
	if err := c.CancelReserva(context.Background(), 9); err != nil {
		t.Fatalf("CancelReserva: %v", err)
	}
}
