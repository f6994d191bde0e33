package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := newClient()
			if err != nil {
				return err
			}
			if _, ok := sess.Token(); ok {
				// Best effort: the local session goes away even if the server
				// is unreachable.
				if err := client.Logout(cmd.Context()); err != nil {
					fmt.Fprintf(os.Stderr, "aviso: no se pudo revocar el token en el servidor: %v\n", err)
				}
			}
			if err := sess.Clear(); err != nil {
				return err
			}
			fmt.Println("Sesión cerrada")
			return nil
		},
	}
}
