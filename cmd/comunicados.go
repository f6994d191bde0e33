package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newComunicadosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comunicados",
		Short: "Listar comunicados del colegio",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			cs, err := client.Comunicados(cmd.Context())
			if err != nil {
				return err
			}
			for _, x := range cs {
				fmt.Printf("[%s] %s\n%s\n\n",
					x.CreatedAt.Format("2006-01-02"), x.Titulo, x.Contenido)
			}
			return nil
		},
	}
}
