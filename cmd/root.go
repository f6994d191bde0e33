package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/colegio/internal/api"
	"github.com/example/colegio/internal/config"
	"github.com/example/colegio/internal/session"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "colegio",
		Short: "Cliente y servidor de reservas de computadores del colegio",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newPerfilCmd())
	root.AddCommand(newReservasCmd())
	root.AddCommand(newAlumnosCmd())
	root.AddCommand(newComunicadosCmd())
	root.AddCommand(newAdminCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sessionStore resolves the session file from config, falling back to the
// per-user default location.
func sessionStore(cfg config.Config) (*session.Store, error) {
	path := cfg.SessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return session.NewStore(path), nil
}

// newClient builds an API client pointed at the configured school server,
// loading the stored token if someone is logged in.
func newClient() (*api.Client, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	sess, err := sessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	c := api.New(cfg.ColegioURL)
	if token, ok := sess.Token(); ok {
		c.SetToken(token)
	}
	return c, sess, nil
}

// requireLogin is newClient plus a friendly error when no token is stored.
func requireLogin() (*api.Client, *session.Store, error) {
	c, sess, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	if _, ok := sess.Token(); !ok {
		return nil, nil, fmt.Errorf("no has iniciado sesión; ejecuta `colegio login` primero")
	}
	return c, sess, nil
}
