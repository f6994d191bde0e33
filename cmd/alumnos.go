package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/api"
)

func newAlumnosCmd() *cobra.Command {
	var rut, curso string

	c := &cobra.Command{
		Use:   "alumnos",
		Short: "Listar alumnos (requiere sesión de funcionario)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			as, err := client.Alumnos(cmd.Context(), api.AlumnosFilter{Rut: rut, Curso: curso})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOMBRE\tRUT\tCURSO")
			for _, a := range as {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", a.ID, a.Nombre, a.Apellido, a.Rut, a.Curso)
			}
			return w.Flush()
		},
	}

	c.Flags().StringVar(&rut, "rut", "", "filtrar por RUT")
	c.Flags().StringVar(&curso, "curso", "", "filtrar por curso")
	return c
}
