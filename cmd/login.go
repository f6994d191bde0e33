package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/session"
)

func newLoginCmd() *cobra.Command {
	var rut, digitos, username, password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión como alumno (RUT) o como funcionario (--username)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if username != "" {
				if password == "" {
					return fmt.Errorf("--password es obligatorio junto a --username")
				}
				token, err := client.LoginStaff(ctx, username, password)
				if err != nil {
					return err
				}
				if err := sess.SetAll(map[string]string{
					session.KeyToken:    token,
					session.KeyUserType: session.TypeStaff,
					session.KeyUserData: fmt.Sprintf(`{"username":%q}`, username),
				}); err != nil {
					return err
				}
				fmt.Printf("Sesión iniciada como funcionario %s\n", username)
				return nil
			}

			if rut == "" {
				return fmt.Errorf("indica tu RUT con --rut, o usa --username para funcionarios")
			}
			if digitos == "" {
				return fmt.Errorf("indica tus dígitos de verificación con --digitos")
			}
			res, err := client.Login(ctx, rut, digitos)
			if err != nil {
				return err
			}
			profile, err := json.Marshal(res)
			if err != nil {
				return err
			}
			if err := sess.SetAll(map[string]string{
				session.KeyToken:    res.Token,
				session.KeyUserType: session.TypeAlumno,
				session.KeyUserData: string(profile),
			}); err != nil {
				return err
			}
			fmt.Printf("Bienvenido/a %s (%s)\n", res.Nombre, res.Curso)
			return nil
		},
	}

	c.Flags().StringVar(&rut, "rut", "", "RUT del alumno, ej. 12345678-9")
	c.Flags().StringVar(&digitos, "digitos", "", "4 dígitos de verificación")
	c.Flags().StringVar(&username, "username", "", "usuario de funcionario")
	c.Flags().StringVar(&password, "password", "", "contraseña de funcionario")
	return c
}
