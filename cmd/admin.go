package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/config"
	"github.com/example/colegio/internal/db"
	"github.com/example/colegio/internal/migrate"
	"github.com/example/colegio/internal/store"
)

// newAdminCmd groups the direct-to-database maintenance commands used when
// seeding a fresh install. They bypass the HTTP API on purpose.
func newAdminCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "admin",
		Short: "Mantenimiento directo de la base de datos",
	}
	c.AddCommand(newAdminUsuarioAddCmd())
	c.AddCommand(newAdminAlumnoAddCmd())
	c.AddCommand(newAdminComunicadoAddCmd())
	return c
}

func openAdminDB(ctx context.Context) (*db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	d, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func newAdminUsuarioAddCmd() *cobra.Command {
	var username, password string

	c := &cobra.Command{
		Use:   "usuario-add",
		Short: "Crear un usuario funcionario (username/password)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openAdminDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := store.NewCredentials(d).CreateUsuario(ctx, username, password); err != nil {
				return err
			}
			fmt.Printf("usuario %q creado\n", username)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "username")
	c.Flags().StringVar(&password, "password", "", "password")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}

func newAdminAlumnoAddCmd() *cobra.Command {
	var nombre, apellido, rut, digitos, curso string

	c := &cobra.Command{
		Use:   "alumno-add",
		Short: "Registrar un alumno",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openAdminDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			id, err := store.NewAlumnos(d).Create(ctx, nombre, apellido, rut, digitos, curso)
			if err != nil {
				return err
			}
			fmt.Printf("alumno #%d creado (%s %s, %s)\n", id, nombre, apellido, curso)
			return nil
		},
	}

	c.Flags().StringVar(&nombre, "nombre", "", "nombre")
	c.Flags().StringVar(&apellido, "apellido", "", "apellido")
	c.Flags().StringVar(&rut, "rut", "", "RUT, ej. 12345678-9")
	c.Flags().StringVar(&digitos, "digitos", "", "4 dígitos de verificación")
	c.Flags().StringVar(&curso, "curso", "", "curso, ej. 8°A")
	_ = c.MarkFlagRequired("nombre")
	_ = c.MarkFlagRequired("apellido")
	_ = c.MarkFlagRequired("rut")
	_ = c.MarkFlagRequired("digitos")
	_ = c.MarkFlagRequired("curso")
	return c
}

func newAdminComunicadoAddCmd() *cobra.Command {
	var titulo, contenido string

	c := &cobra.Command{
		Use:   "comunicado-add",
		Short: "Publicar un comunicado",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openAdminDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			id, err := store.NewComunicados(d).Create(ctx, titulo, contenido)
			if err != nil {
				return err
			}
			fmt.Printf("comunicado #%d publicado\n", id)
			return nil
		},
	}

	c.Flags().StringVar(&titulo, "titulo", "", "título")
	c.Flags().StringVar(&contenido, "contenido", "", "contenido")
	_ = c.MarkFlagRequired("titulo")
	_ = c.MarkFlagRequired("contenido")
	return c
}
