package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/config"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/session"
	"github.com/sandeepkv93/lifequest/internal/update"
)

var Version = "dev"

// app bundles everything a command needs once the stack is wired.
type app struct {
	cfg     config.Config
	storage *session.SQLiteStorage
	store   *cache.Store
	session *session.Session
	client  *api.Client
}

func setup(serverOverride string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}

	storage, err := session.OpenSQLite(cfg.SessionDBPath())
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.StaleAfter())
	sess := session.New(storage, store)
	client, err := api.NewClient(cfg.ServerURL, sess.Token, api.WithTimeout(cfg.Timeout()))
	if err != nil {
		storage.Close()
		return nil, err
	}
	sess.AttachClient(client)

	return &app{cfg: cfg, storage: storage, store: store, session: sess, client: client}, nil
}

func (a *app) close() {
	_ = a.storage.Close()
}

func newRootCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:           "lifequest",
		Short:         "lifequest - gamified task tracker TUI",
		Long:          "lifequest turns your tasks into XP, coins and rewards, with skills that level up as you complete them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(server)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.session.Load(cmd.Context()); err != nil {
				return err
			}

			var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
			if a.cfg.DesktopNotifications {
				notifier = update.ExecDesktopNotifier{}
			}
			m := update.NewModel(update.Deps{
				Client:         a.client,
				Session:        a.session,
				Cache:          a.store,
				Notifier:       notifier,
				DesktopEnabled: a.cfg.DesktopNotifications,
			})
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&server, "server", "", "Backend base URL (overrides config)")
	cmd.AddCommand(newLoginCmd(&server), newRegisterCmd(&server), newLogoutCmd(&server))
	return cmd
}

func newLoginCmd(server *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session for the TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*server)
			if err != nil {
				return err
			}
			defer a.close()

			req := model.LoginRequest{Username: username, Password: password}
			if err := a.session.SignIn(cmd.Context(), req); err != nil {
				return err
			}
			if user := a.session.User(); user != nil {
				fmt.Printf("Sessão iniciada como %s.\n", user.Nickname)
			} else {
				fmt.Println("Sessão iniciada.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Nickname")
	cmd.Flags().StringVarP(&password, "pass", "p", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	return cmd
}

func newRegisterCmd(server *string) *cobra.Command {
	var name, nickname, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*server)
			if err != nil {
				return err
			}
			defer a.close()

			req := model.UserCreateRequest{Name: name, Nickname: nickname, Email: email, Password: password}
			if err := a.session.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Println("Conta criada! Use lifequest login para entrar.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVarP(&nickname, "user", "u", "", "Nickname")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVarP(&password, "pass", "p", "", "Password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")
	return cmd
}

func newLogoutCmd(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*server)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.session.Load(cmd.Context()); err != nil {
				return err
			}
			if err := a.session.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Sessão encerrada.")
			return nil
		},
	}
}
