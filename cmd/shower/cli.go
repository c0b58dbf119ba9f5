package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/babyduj/shower-api/internal/client"
	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/session"
)

const defaultServer = "http://localhost:8080"

const usage = `usage: shower [-server URL] <command> [args]

commands:
  signup                 create an identity and sign in
  login                  sign in
  logout                 forget the saved identity
  whoami                 show the signed-in identity
  vote girl|boy          cast or change your vote
  votes [-reveal]        show the vote board
  gifts                  list the gift registry
  reserve ID             reserve a gift
  unreserve ID           release your reservation
  delete-gift ID         remove a gift (admins)
  guestbook              read the guest book
  sign [-private] TEXT   sign the guest book
`

var errUsage = errors.New("invalid usage, run shower help")

type cli struct {
	in      *bufio.Reader
	out     io.Writer
	store   *session.Store
	readPIN func(out io.Writer) (string, error)

	server string
	sess   session.Session
}

func (c *cli) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("shower", flag.ContinueOnError)
	fs.SetOutput(c.out)
	server := fs.String("server", os.Getenv("SHOWER_SERVER"), "API base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 || fs.Arg(0) == "help" {
		fmt.Fprint(c.out, usage)
		return nil
	}

	sess, err := c.store.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		return err
	}
	c.sess = sess

	c.server = *server
	if c.server == "" {
		c.server = sess.Server
	}
	if c.server == "" {
		c.server = defaultServer
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "signup":
		return c.authenticate(ctx, true)
	case "login":
		return c.authenticate(ctx, false)
	case "logout":
		return c.logout()
	case "whoami":
		return c.whoami(ctx)
	case "vote":
		return c.vote(ctx, rest)
	case "votes":
		return c.votes(ctx, rest)
	case "gifts":
		return c.gifts(ctx)
	case "reserve", "unreserve", "delete-gift":
		return c.giftAction(ctx, cmd, rest)
	case "guestbook":
		return c.guestBook(ctx)
	case "sign":
		return c.sign(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (c *cli) api() *client.Client {
	return client.New(c.server, c.sess.Token)
}

// signedIn fails early for commands that need an identity.
func (c *cli) signedIn() (*client.Client, error) {
	if c.sess.Token == "" {
		return nil, session.ErrNoSession
	}

	return c.api(), nil
}

func (c *cli) authenticate(ctx context.Context, signup bool) error {
	displayName, err := c.prompt("Display name: ")
	if err != nil {
		return err
	}
	familyName, err := c.prompt("Family name: ")
	if err != nil {
		return err
	}
	pin, err := c.readPIN(c.out)
	if err != nil {
		return err
	}

	api := client.New(c.server, "")
	var res client.AuthResult
	if signup {
		res, err = api.Signup(ctx, displayName, familyName, pin)
	} else {
		res, err = api.Login(ctx, displayName, familyName, pin)
	}
	if err != nil {
		return err
	}

	if err := c.store.Save(session.Session{Server: c.server, Token: res.Token, User: res.User}); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Signed in as %s.\n", res.User.FullName())
	return nil
}

func (c *cli) logout() error {
	if err := c.store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Signed out.")
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	api, err := c.signedIn()
	if err != nil {
		return err
	}

	me, err := api.Me(ctx)
	if err != nil {
		return err
	}

	role := "guest"
	if me.Admin {
		role = "admin"
	}
	fmt.Fprintf(c.out, "%s (#%d, %s)\n", me.FullName(), me.ID, role)
	return nil
}

func (c *cli) vote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	gender := domain.Gender(strings.ToLower(args[0]))
	if !gender.Valid() {
		return fmt.Errorf("gender must be girl or boy: %w", errUsage)
	}

	api, err := c.signedIn()
	if err != nil {
		return err
	}

	if _, err := api.CastVote(ctx, gender); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Voted %s.\n", gender)
	return c.votes(ctx, nil)
}

func (c *cli) votes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("votes", flag.ContinueOnError)
	fs.SetOutput(c.out)
	reveal := fs.Bool("reveal", false, "show results without voting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	board, err := c.api().Votes(ctx, *reveal)
	if err != nil {
		return err
	}

	renderVoteBoard(c.out, board)
	return nil
}

func (c *cli) gifts(ctx context.Context) error {
	list, err := c.api().Gifts(ctx)
	if err != nil {
		return err
	}

	renderGifts(c.out, list, c.sess.User.ID)
	return nil
}

func (c *cli) giftAction(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid gift id %q: %w", args[0], errUsage)
	}

	api, err := c.signedIn()
	if err != nil {
		return err
	}

	switch cmd {
	case "reserve":
		gift, err := api.ReserveGift(ctx, uint(id))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Reserved %q.\n", gift.Title)

	case "unreserve":
		gift, err := api.UnreserveGift(ctx, uint(id))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Released %q.\n", gift.Title)

	case "delete-gift":
		ok, err := c.confirm(fmt.Sprintf("Delete gift #%d? [y/N] ", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
		if err := api.DeleteGift(ctx, uint(id)); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Deleted gift #%d.\n", id)
	}

	return nil
}

func (c *cli) guestBook(ctx context.Context) error {
	entries, err := c.api().GuestBook(ctx)
	if err != nil {
		return err
	}

	renderGuestBook(c.out, entries)
	return nil
}

func (c *cli) sign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(c.out)
	private := fs.Bool("private", false, "only you and the hosts can read it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if message == "" {
		return fmt.Errorf("message is empty: %w", errUsage)
	}

	api, err := c.signedIn()
	if err != nil {
		return err
	}

	if _, err := api.SignGuestBook(ctx, message, *private); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Thank you for signing the guest book.")
	return nil
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (c *cli) confirm(question string) (bool, error) {
	answer, err := c.prompt(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func readPINFromTerminal(out io.Writer) (string, error) {
	fmt.Fprint(out, "PIN: ")
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("term.ReadPassword -> %w", err)
	}

	return strings.TrimSpace(string(pin)), nil
}
