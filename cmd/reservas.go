package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/api"
	"github.com/example/colegio/internal/reserva"
)

func newReservasCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reservas",
		Short: "Reservas de computadores",
	}
	c.AddCommand(newReservasListCmd())
	c.AddCommand(newReservasCuposCmd())
	c.AddCommand(newReservasCreateCmd())
	c.AddCommand(newReservasCancelCmd())
	return c
}

func newReservasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar todas las reservas",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			rs, err := client.Reservas(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tALUMNO\tFECHA\tBLOQUE")
			for _, r := range rs {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n",
					r.ID, r.AlumnoNombre, r.AlumnoApellido, r.FechaReserva, r.BloqueReserva)
			}
			return w.Flush()
		},
	}
}

func newReservasCuposCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cupos",
		Short: "Mostrar cupos disponibles para el próximo día hábil",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			fecha, ok := reserva.NextEligibleDate(time.Now())
			if !ok {
				fmt.Println("Hoy no se pueden tomar reservas (viernes y sábado no abren día hábil)")
				return nil
			}
			rs, err := client.Reservas(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Cupos para %s:\n", fecha.Format(reserva.FechaLayout))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, b := range reserva.Bloques {
				fmt.Fprintf(w, "%s\t%d de %d\n",
					b, reserva.RemainingCapacity(fecha, b, rs), reserva.CapacidadBloque)
			}
			return w.Flush()
		},
	}
}

func newReservasCreateCmd() *cobra.Command {
	var nombre, apellido, bloque string

	c := &cobra.Command{
		Use:   "create",
		Short: "Reservar un computador para el próximo día hábil",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			now := time.Now()
			fecha, ok := reserva.NextEligibleDate(now)
			if !ok {
				return fmt.Errorf("%s", reserva.Decision{Reason: reserva.NoEligibleDate}.Message())
			}

			// Run the rules locally before bothering the server; it applies
			// them again on its side.
			existing, err := client.Reservas(ctx)
			if err != nil {
				return err
			}
			decision := reserva.Evaluate(now, reserva.Candidate{
				AlumnoNombre:   nombre,
				AlumnoApellido: apellido,
				FechaReserva:   fecha,
				BloqueReserva:  bloque,
			}, existing)
			if !decision.Accepted {
				return fmt.Errorf("%s", decision.Message())
			}

			created, err := client.CreateReserva(ctx, api.NuevaReserva{
				AlumnoNombre:   nombre,
				AlumnoApellido: apellido,
				FechaReserva:   fecha.Format(reserva.FechaLayout),
				BloqueReserva:  bloque,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Reserva #%d confirmada: %s, bloque %s\n",
				created.ID, created.FechaReserva, created.BloqueReserva)
			return nil
		},
	}

	c.Flags().StringVar(&nombre, "nombre", "", "nombre del alumno")
	c.Flags().StringVar(&apellido, "apellido", "", "apellido del alumno")
	c.Flags().StringVar(&bloque, "bloque", "", `bloque horario, ej. "10:00 a 10:20"`)
	_ = c.MarkFlagRequired("nombre")
	_ = c.MarkFlagRequired("apellido")
	_ = c.MarkFlagRequired("bloque")
	return c
}

func newReservasCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancelar una reserva",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id inválido: %q", args[0])
			}
			client, _, err := requireLogin()
			if err != nil {
				return err
			}
			if err := client.CancelReserva(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Reserva #%d cancelada\n", id)
			return nil
		},
	}
}
