package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/loyalty-admin/business"
	"github.com/jrsteele09/loyalty-admin/coupons"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/config"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/members"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	c := config.New()
	logger := newLogger(c)
	a, err := newApp(c, logger)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		usage()
		return nil
	}
	return a.dispatch(context.Background(), args)
}

func newLogger(c config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// app wires the SDK: token store, session, gateway, and the shared
// notification channel every controller reports through.
type app struct {
	config   config.Config
	sessions *session.Store
	gw       *gateway.Client
	notices  *notify.Channel
	log      zerolog.Logger
}

func newApp(c config.Config, logger zerolog.Logger) (*app, error) {
	tokenStore, err := session.NewFileTokenStore(c.GetTokenPath())
	if err != nil {
		return nil, fmt.Errorf("token store: %w", err)
	}

	sessions := session.New(tokenStore, session.WithLogger(logger))
	gw, err := gateway.New(gateway.Config{
		BaseURL: c.GetAPIBaseURL(),
		Tokens:  sessions,
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `admin login` again.")
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	sessions.SetGateway(gw)

	notices := notify.NewChannel()
	notices.Subscribe(func(n notify.Notification) {
		prefix := "OK"
		if n.Kind == notify.Error {
			prefix = "ERROR"
		}
		fmt.Printf("[%s] %s\n", prefix, n.Text)
	})

	return &app{config: c, sessions: sessions, gw: gw, notices: notices, log: logger}, nil
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		a.sessions.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "coupons":
		return a.couponsCommand(ctx, rest)
	case "users":
		return a.usersCommand(ctx, rest)
	case "business":
		return a.businessCommand(ctx, rest)
	case "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}

	if !a.sessions.Login(ctx, *email, *password) {
		return errors.New("login failed")
	}
	displayAppname(a.config.GetAppName())
	fmt.Printf("Logged in as %s\n", a.sessions.Identity().Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if a.sessions.Initialize(ctx) != session.Authenticated {
		fmt.Println("Not logged in.")
		return nil
	}
	identity := a.sessions.Identity()
	fmt.Printf("%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	return nil
}

// requireSession resolves the persisted token before any entity command.
func (a *app) requireSession(ctx context.Context) error {
	if a.sessions.Initialize(ctx) != session.Authenticated {
		return errors.New("not logged in, run `admin login` first")
	}
	return nil
}

func (a *app) couponsCommand(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	controller, err := coupons.NewController(a.gw, a.sessions, a.notices, a.config.GetDefaultPageSize())
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("coupons list", flag.ContinueOnError)
		search := fs.String("search", "", "search term")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := controller.SetQuery(ctx, query.Update{Search: search, Page: page}); err != nil {
			return err
		}
		for _, c := range controller.Page().Items {
			fmt.Printf("%s\t%s\t%s %.2f\tactive=%t\tused=%d/%d\n",
				c.ID, c.Code, c.DiscountType, c.DiscountValue, c.Active, c.UsedCount, c.UsageLimit)
		}
		printPageFooter(controller.Page())
		return nil
	case "toggle":
		return mutateByID(ctx, controller, listctl.OpToggleStatus, args)
	case "delete":
		return mutateByID(ctx, controller, listctl.OpDelete, args)
	default:
		return fmt.Errorf("unknown coupons subcommand %q", sub)
	}
}

func (a *app) usersCommand(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	controller, err := members.NewController(a.gw, a.sessions, a.notices, a.config.GetDefaultPageSize())
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("users list", flag.ContinueOnError)
		search := fs.String("search", "", "search term")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := controller.SetQuery(ctx, query.Update{Search: search, Page: page}); err != nil {
			return err
		}
		for _, m := range controller.Page().Items {
			fmt.Printf("%s\t%s\t%s\t%d pts\t%s\n", m.ID, m.Name, m.Email, m.PointsBalance, m.Status)
		}
		printPageFooter(controller.Page())
		return nil
	case "toggle":
		return mutateByID(ctx, controller, listctl.OpToggleStatus, args)
	default:
		return fmt.Errorf("unknown users subcommand %q", sub)
	}
}

func (a *app) businessCommand(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	controller, err := business.NewProfileController(a.gw, a.sessions, a.notices)
	if err != nil {
		return err
	}

	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "show":
		if err := controller.Reload(ctx); err != nil {
			return err
		}
		profile, _ := controller.Value()
		fmt.Printf("%s\n%s\n%s\nlogo: %s\n", profile.Name, profile.Address, profile.Phone, profile.LogoURL)
		return nil
	case "upload-logo":
		fs := flag.NewFlagSet("business upload-logo", flag.ContinueOnError)
		file := fs.String("file", "", "path to logo image")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *file == "" {
			return errors.New("upload-logo requires -file")
		}
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := business.UploadLogo(ctx, a.gw, *file, "image/png", f); err != nil {
			return err
		}
		fmt.Println("Logo uploaded.")
		return nil
	default:
		return fmt.Errorf("unknown business subcommand %q", sub)
	}
}

func mutateByID[T any](ctx context.Context, controller *listctl.Controller[T], op listctl.Operation, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s requires an id", op)
	}
	return controller.Mutate(ctx, listctl.Mutation{Op: op, ID: args[0]})
}

func printPageFooter[T any](page query.Page[T]) {
	fmt.Printf("-- page %d of %d (%d items) --\n", page.CurrentPage, page.TotalPages, page.TotalItems)
}

func usage() {
	fmt.Println(`Usage: admin <command>

  login -email <email> -password <password>
  logout
  whoami
  coupons [list|toggle <id>|delete <id>]
  users [list|toggle <id>]
  business [show|upload-logo -file <path>]`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
