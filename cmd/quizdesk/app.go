package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quizdesk/quizdesk/internal/api"
	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/logger"
	"github.com/quizdesk/quizdesk/internal/models"
	"github.com/quizdesk/quizdesk/internal/quiz"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/internal/tokenfile"
)

const usage = `Usage: quizdesk [flags] <command>

Commands:
  login <username> [password]     log in with username and password
  oauth-url <yandex|github>       print the third-party login URL
  logout [--all]                  end the current session (or all sessions)
  whoami                          show the authenticated user
  nickname <new-nickname>         change your nickname
  activity                        show your activity feed
  users search <query>            server-side user search (authenticated)
  users find <nickname>           public search by nickname
  tests list                      list the test catalog
  tests show <id>                 show one test with its questions
  tests create <file.json>        create a test from a JSON file
  tests delete <id>               delete a test
  tests search <query>            filter the catalog by title
  take <id>                       take a test interactively
`

type App struct {
	client  *api.Client
	quizzes *quiz.Service
	logger  logger.Logger

	in  io.Reader
	out io.Writer
}

func NewApp(c *Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	tokenPath, err := c.ResolveTokenFile()
	if err != nil {
		return nil, err
	}
	store, err := tokenfile.New(tokenPath)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: c.HTTPTimeout}

	sess, err := session.NewManager(session.Config{
		BaseURL:    c.BaseURL,
		HTTPClient: httpClient,
		Logger:     log.WithGroup("session"),
	}, store)
	if err != nil {
		return nil, fmt.Errorf("error while creating session manager. Err: %w", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:    c.BaseURL,
		HTTPClient: httpClient,
		Logger:     log.WithGroup("api"),
	}, sess)
	if err != nil {
		return nil, fmt.Errorf("error while creating api client. Err: %w", err)
	}

	quizzes, err := quiz.NewService(client, log.WithGroup("quiz"))
	if err != nil {
		return nil, fmt.Errorf("error while creating quiz service. Err: %w", err)
	}

	return &App{
		client:  client,
		quizzes: quizzes,
		logger:  log,
		in:      in,
		out:     out,
	}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("command required")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "oauth-url":
		return a.oauthURL(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "whoami":
		return a.whoami(ctx)
	case "nickname":
		return a.nickname(ctx, rest)
	case "activity":
		return a.activity(ctx)
	case "users":
		return a.users(ctx, rest)
	case "tests":
		return a.tests(ctx, rest)
	case "take":
		return a.take(ctx, rest)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %q", cmd)
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: login <username> [password]")
	}

	username := args[0]
	var password string
	if len(args) > 1 {
		password = args[1]
	} else {
		fmt.Fprint(a.out, "Password: ")
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if _, err := a.client.Login(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) oauthURL(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: oauth-url <yandex|github>")
	}

	location, err := a.client.OAuthLoginURL(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, location)
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	all := len(args) > 0 && args[0] == "--all"

	if err := a.client.Logout(ctx, all); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	sess := a.client.Session()
	if !sess.IsAuthenticated() {
		return apperrors.ErrNotAuthenticated
	}

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Nickname: %s\n", user.Nickname)
	fmt.Fprintf(a.out, "Role:     %s\n", user.Role)

	// Token expiry comes from the locally decoded claims, best effort
	if claims, err := sess.AccessClaims(); err == nil && claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Token expires: %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func (a *App) nickname(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nickname <new-nickname>")
	}

	if err := a.client.UpdateNickname(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Nickname updated")
	return nil
}

func (a *App) activity(ctx context.Context) error {
	activities, err := a.client.Activity(ctx)
	if err != nil {
		return err
	}

	if len(activities) == 0 {
		fmt.Fprintln(a.out, "No activity yet")
		return nil
	}

	for _, entry := range activities {
		fmt.Fprintf(a.out, "%s  %s\n", entry.Timestamp.Format("2006-01-02 15:04"), entry.Description)
	}
	return nil
}

func (a *App) users(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: users search <query> | users find <nickname>")
	}

	var users []models.User
	var err error
	switch args[0] {
	case "search":
		users, err = a.client.SearchUsers(ctx, args[1])
	case "find":
		users, err = a.client.SearchByNickname(ctx, args[1])
	default:
		return fmt.Errorf("unknown users subcommand: %q", args[0])
	}
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s (%s) role=%s\n", u.Nickname, u.Username, u.Role)
	}
	return nil
}
