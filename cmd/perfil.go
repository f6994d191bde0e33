package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/session"
)

func newPerfilCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perfil",
		Short: "Mostrar el perfil guardado de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := requireLogin()
			if err != nil {
				return err
			}
			tipo, err := sess.Get(session.KeyUserType)
			if errors.Is(err, session.ErrNotFound) {
				tipo = session.TypeAlumno
			} else if err != nil {
				return err
			}
			data, err := sess.Get(session.KeyUserData)
			if err != nil {
				return err
			}
			var pretty map[string]any
			if err := json.Unmarshal([]byte(data), &pretty); err != nil {
				return err
			}
			// Never echo the token back.
			delete(pretty, "token")

			fmt.Printf("Tipo: %s\n", tipo)
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
