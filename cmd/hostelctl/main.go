package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"runtime/debug"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/hostelhub/go-booking-client/api"
	"github.com/hostelhub/go-booking-client/credentials"
	"github.com/hostelhub/go-booking-client/internal/config"
	"github.com/hostelhub/go-booking-client/session"
	"github.com/hostelhub/go-booking-client/transport"
	"github.com/hostelhub/go-booking-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetLogLevel())

	if len(args) == 0 || args[0] == "help" {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	base, err := url.Parse(c.GetBaseURL())
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}

	store := credentials.NewFileStore(
		credentials.PathForHost(c.GetDataFolder(), base.Host),
		credentials.WithPassphrase(c.GetCredentialsPassphrase()),
	)

	manager, err := session.NewManager(store)
	if err != nil {
		return err
	}
	manager.Restore()

	onExpired := func() {
		log.Warn().Msg("Session expired, please log in again")
	}
	client, err := api.New(c.GetBaseURL(), api.WithHTTPClient(
		transport.NewClient(nil, api.DefaultStages(store, onExpired, log.Logger)...),
	))
	if err != nil {
		return err
	}

	ctx := session.WithManager(context.Background(), manager)

	switch args[0] {
	case "login":
		return cmdLogin(ctx, client, args[1:])
	case "logout":
		return cmdLogout(ctx)
	case "whoami":
		return cmdWhoami(ctx)
	case "register":
		return cmdRegister(ctx, client, args[1:])
	case "rooms":
		return cmdRooms(ctx, client, args[1:])
	case "bookings":
		return cmdBookings(ctx, client)
	case "book":
		return cmdBook(ctx, client, args[1:])
	case "approve":
		return cmdReview(ctx, client, args[1:], true)
	case "reject":
		return cmdReview(ctx, client, args[1:], false)
	case "pay":
		return cmdPay(ctx, client, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	roleFlag := fs.String("role", string(users.RoleStudent), "account role (student|provider|administrator)")
	username := fs.String("username", "", "account username")
	password := fs.String("password", os.Getenv("PASSWORD"), "account password (or PASSWORD env var)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := users.ParseRole(*roleFlag)
	if err != nil {
		return err
	}

	resp, err := client.Login(ctx, role, api.LoginForm{Username: *username, Password: *password})
	if err != nil {
		return err
	}

	manager := session.MustFromContext(ctx)
	if err := manager.Login(&resp.User, resp.AccessToken, resp.RefreshToken); err != nil {
		return err
	}

	log.Info().Str("username", resp.User.Username).Str("role", string(resp.User.Role)).Msg("Logged in")
	return nil
}

func cmdLogout(ctx context.Context) error {
	if err := session.MustFromContext(ctx).Logout(); err != nil {
		return err
	}
	log.Info().Msg("Logged out")
	return nil
}

func cmdWhoami(ctx context.Context) error {
	manager := session.MustFromContext(ctx)
	user := manager.User()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Username, user.Email, user.Role)
	if exp, ok := manager.ExpiresAt(); ok {
		fmt.Printf("Session expires %s\n", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdRegister(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	roleFlag := fs.String("role", string(users.RoleStudent), "account role (student|provider)")
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "contact email")
	password := fs.String("password", os.Getenv("PASSWORD"), "account password (or PASSWORD env var)")
	hostelName := fs.String("hostel", "", "hostel name (provider only)")
	location := fs.String("location", "", "hostel location (provider only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := api.RegistrationForm{Username: *username, Email: *email, Password: *password}

	var resp *api.AuthResponse
	var err error
	switch users.RoleType(*roleFlag) {
	case users.RoleStudent:
		resp, err = client.RegisterStudent(ctx, form)
	case users.RoleProvider:
		resp, err = client.RegisterProvider(ctx, api.ProviderRegistrationForm{
			RegistrationForm: form,
			HostelName:       *hostelName,
			Location:         *location,
		})
	default:
		return fmt.Errorf("cannot register role %q", *roleFlag)
	}
	if err != nil {
		return err
	}

	manager := session.MustFromContext(ctx)
	if err := manager.Login(&resp.User, resp.AccessToken, resp.RefreshToken); err != nil {
		return err
	}
	log.Info().Str("username", resp.User.Username).Msg("Registered and logged in")
	return nil
}

func cmdRooms(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("rooms", flag.ContinueOnError)
	location := fs.String("location", "", "filter by location")
	maxPrice := fs.String("max-price", "", "filter by maximum price")
	capacity := fs.Int("capacity", 0, "filter by minimum capacity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rooms, err := client.ListRooms(ctx, api.RoomFilter{
		Location: *location,
		MaxPrice: *maxPrice,
		Capacity: *capacity,
	})
	if err != nil {
		return err
	}

	for _, room := range rooms {
		availability := "available"
		if !room.Available {
			availability = "unavailable"
		}
		fmt.Printf("#%d  %s  %s, %s, sleeps %d, %s (%s)\n",
			room.ID, room.HostelName, room.Title, room.Location, room.Capacity, room.Price, availability)
	}
	return nil
}

func cmdBookings(ctx context.Context, client *api.Client) error {
	bookings, err := client.MyBookings(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		fmt.Printf("#%d  room %d  %s → %s  [%s]\n", b.ID, b.RoomID, b.CheckIn, b.CheckOut, b.Status)
	}
	return nil
}

func cmdBook(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	roomID := fs.Int64("room", 0, "room ID")
	checkIn := fs.String("from", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("to", "", "check-out date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	booking, err := client.CreateBooking(ctx, api.NewBooking{
		RoomID:   *roomID,
		CheckIn:  *checkIn,
		CheckOut: *checkOut,
	})
	if err != nil {
		return err
	}
	log.Info().Int64("booking", booking.ID).Str("status", string(booking.Status)).Msg("Booking created")
	return nil
}

func cmdReview(ctx context.Context, client *api.Client, args []string, approve bool) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	bookingID := fs.Int64("booking", 0, "booking ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var booking *api.Booking
	var err error
	if approve {
		booking, err = client.ApproveBooking(ctx, *bookingID)
	} else {
		booking, err = client.RejectBooking(ctx, *bookingID)
	}
	if err != nil {
		return err
	}
	log.Info().Int64("booking", booking.ID).Str("status", string(booking.Status)).Msg("Booking reviewed")
	return nil
}

func cmdPay(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ContinueOnError)
	bookingID := fs.Int64("booking", 0, "booking ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	redirect, err := client.InitiatePayment(ctx, *bookingID)
	if err != nil {
		return err
	}
	fmt.Printf("Open this URL to complete payment (ref %s):\n%s\n", redirect.Reference, redirect.URL)
	return nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
}

func usage() {
	fmt.Println(`Usage: hostelctl <command> [flags]

Commands:
  register  Create an account (-role -username -email -password [-hostel -location])
  login     Log in (-role -username -password)
  logout    Log out and clear stored credentials
  whoami    Show the current session
  rooms     Browse rooms (-location -max-price -capacity)
  book      Request a booking (-room -from -to)
  bookings  List your bookings
  approve   Approve a booking (-booking)
  reject    Reject a booking (-booking)
  pay       Start payment for a booking (-booking)

Environment:
  BASE_URL                 backend base URL
  FOLDER                   credential folder (default ~/.hostelhub)
  CREDENTIALS_PASSPHRASE   seal stored credentials at rest
  LOG_LEVEL                zerolog level (default info)`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
