// partnerhub is the command-line client for the PartnerHub partnership API.
//
// Usage:
//
//	partnerhub signup --username u --name n --email e --phone p --password pw --image-url url
//	partnerhub login <username> [--password pw]
//	partnerhub logout
//	partnerhub whoami
//	partnerhub find-id --email e --phone p
//	partnerhub reset request --email e
//	partnerhub reset validate --uid u --token t
//	partnerhub reset confirm --uid u --token t --password pw --confirm pw
//	partnerhub store show
//	partnerhub store create --name n --address a --phone p --hours h [--category id ...]
//	partnerhub categories
//	partnerhub posts [--category name ...]
//	partnerhub post show <id>
//	partnerhub post create --title t ... --image path [--image path ...] --category id [...]
//	partnerhub mypage
//	partnerhub notifications [list | unread | read <id>]
//	partnerhub partner-request <post-id> <message>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/internal/guards"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// errUsage reports a bad invocation whose usage text was already printed.
var errUsage = errors.New("usage")

type app struct {
	cfg    *config.Config
	client *apiclient.Client
	nav    guards.Navigator
	out    io.Writer
	errOut io.Writer
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "partnerhub: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 0 {
		printUsage(os.Stderr)
		return errUsage
	}
	cmd, args := argv[0], argv[1:]

	switch cmd {
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return nil
	case "version", "--version", "-v":
		fmt.Printf("partnerhub version %s\n", version)
		return nil
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Environment)
	logger.SetLevel(firstNonEmpty(cfg.LogLevel, "warn"))

	a, err := newApp(cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.dispatch(ctx, cmd, args)
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.cmdSignup(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami(ctx)
	case "find-id":
		return a.cmdFindID(ctx, args)
	case "reset":
		return a.cmdReset(ctx, args)
	case "store":
		return a.cmdStore(ctx, args)
	case "categories":
		return a.cmdCategories(ctx)
	case "posts":
		return a.cmdPosts(ctx, args)
	case "post":
		return a.cmdPost(ctx, args)
	case "mypage":
		return a.cmdMyPage(ctx)
	case "notifications":
		return a.cmdNotifications(ctx, args)
	case "partner-request":
		return a.cmdPartnerRequest(ctx, args)
	}
	fmt.Fprintf(a.errOut, "partnerhub: unknown command %q\n\n", cmd)
	printUsage(a.errOut)
	return errUsage
}

func newApp(cfg *config.Config, out, errOut io.Writer) (*app, error) {
	opts := []apiclient.Option{apiclient.WithUserAgent("partnerhub-cli/" + version)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.RequestTimeout))
	}
	client, err := apiclient.New(cfg.APIBaseURL, credentials.NewFileStore(cfg.CredentialsFile), opts...)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, client: client, out: out, errOut: errOut}
	a.nav = guards.NavigatorFunc(a.suggestRoute)
	return a, nil
}

// suggestRoute turns a guard navigation into a hint for the matching command.
func (a *app) suggestRoute(route string) {
	switch route {
	case guards.RouteStoreCreate:
		fmt.Fprintln(a.errOut, "가게 정보가 없습니다. 먼저 `partnerhub store create`로 가게를 등록해주세요.")
	case guards.RouteLogin:
		fmt.Fprintln(a.errOut, "로그인이 필요합니다. `partnerhub login <username>`을 실행해주세요.")
	default:
		fmt.Fprintf(a.errOut, "-> %s\n", route)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: partnerhub <command> [args]

Account:
  signup            Create an account
  login <username>  Log in and store the token pair
  logout            Forget stored tokens
  whoami            Show the logged-in user
  find-id           Look up a username by email and phone
  reset             Password reset: request | validate | confirm

Stores and posts:
  store             show | create
  categories        List partnership categories
  posts             List posts, optionally filtered by --category
  post              show <id> | create
  mypage            Show your store and posts

Notifications:
  notifications     list | unread | read <id>
  partner-request   Send a partnership request for a post

Environment:
  PARTNERHUB_API_URL           API base URL (default http://localhost:8000/api/v1)
  PARTNERHUB_CREDENTIALS_FILE  Token file (default ~/.partnerhub/credentials.json)
  PARTNERHUB_REQUEST_TIMEOUT   Request timeout in seconds
  LOG_LEVEL                    debug | info | warn | error
`)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
