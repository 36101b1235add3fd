package cmd

import (
	"fmt"
	"log/slog"
	"naapi/app/client/naapi"
	"naapi/app/config"
	"naapi/app/dto"
	"naapi/app/service/auth"
	"naapi/app/service/pubsub"
	"naapi/app/service/session"
	"naapi/app/service/tokenstore"
	"naapi/app/util/telemetry"
	"os"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var Login = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend and persist the session token",
	Run:   runLogin,
}

var Logout = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session token",
	Run:   runLogout,
}

var Whoami = &cobra.Command{
	Use:   "whoami",
	Short: "Revalidate the persisted session and print the current user",
	Run:   runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{Login, Logout, Whoami} {
		c.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config yaml file")
	}

	Login.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	Login.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password, defaults to $NAAPI_PASSWORD")
	_ = Login.MarkFlagRequired("email")
}

// newLocalInjector wires the session store without the HTTP server and with
// telemetry discarded.
func newLocalInjector() (*do.Injector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	di := do.New()
	do.ProvideValue(di, cfg)

	tracing, metrics := telemetry.NewNoop(cfg)
	do.ProvideValue(di, tracing)
	do.ProvideValue(di, metrics)

	do.Provide(di, naapi.NewClient)
	do.Provide(di, tokenstore.New)
	do.Provide(di, pubsub.New)
	do.Provide(di, auth.New)
	do.Provide(di, session.New)

	return di, nil
}

func mustLocalInjector() *do.Injector {
	di, err := newLocalInjector()
	if err != nil {
		slog.Error("Failed to load config",
			slog.Any("error", err),
		)
		os.Exit(1)
	}

	return di
}

func runLogin(cmd *cobra.Command, _ []string) {
	di := mustLocalInjector()
	defer di.Shutdown() //nolint:errcheck

	password := loginPassword
	if password == "" {
		password = os.Getenv("NAAPI_PASSWORD")
	}

	sessionService := do.MustInvoke[*session.Service](di)
	if !sessionService.Login(cmd.Context(), loginEmail, password) {
		fmt.Fprintln(os.Stderr, "Login failed")
		os.Exit(1)
	}

	printUser(di, sessionService.CurrentUser(), sessionService.Token())
}

func runLogout(_ *cobra.Command, _ []string) {
	di := mustLocalInjector()
	defer di.Shutdown() //nolint:errcheck

	do.MustInvoke[*session.Service](di).Logout()
	fmt.Println("Logged out")
}

func runWhoami(cmd *cobra.Command, _ []string) {
	di := mustLocalInjector()
	defer di.Shutdown() //nolint:errcheck

	sessionService := do.MustInvoke[*session.Service](di)
	if sessionService.IsInitializing() {
		sessionService.ValidateSessionAndLoadUser(cmd.Context(), true)
	}

	if !sessionService.IsLoggedIn() {
		fmt.Fprintln(os.Stderr, "Not logged in")
		os.Exit(1)
	}

	printUser(di, sessionService.CurrentUser(), sessionService.Token())
}

func printUser(di *do.Injector, usr *dto.User, token string) {
	authService := do.MustInvoke[*auth.Service](di)

	if usr == nil {
		fmt.Println("Authenticated, profile not loaded")
		return
	}

	fmt.Printf("User:  %s <%s> (#%d)\n", usr.Name, usr.Email, usr.ID)
	fmt.Printf("Roles: %s\n", strings.Join(pie.Map(usr.Roles(), func(r dto.Role) string {
		return string(r)
	}), ", "))

	caps := authService.Capabilities(usr)
	granted := pie.Filter(dto.AllCapabilities, func(c dto.Capability) bool {
		return caps[c]
	})
	fmt.Printf("Can:   %s\n", strings.Join(pie.Map(granted, func(c dto.Capability) string {
		return string(c)
	}), ", "))

	if exp, ok := auth.TokenExpiry(token); ok {
		fmt.Printf("Token expires %s (in %s)\n", exp.Local().Format(time.DateTime), time.Until(exp).Round(time.Second))
	}
}
