package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/internal/guards"
	"github.com/princeprakhar/partnerhub/internal/services"
)

// failure wraps err with the message a user should see.
func failure(err error, defaultMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New(services.DisplayMessage(err, defaultMsg))
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	var req services.SignupRequest
	fs := newFlagSet("signup")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&req.Password, "password", "", "password (prompted when empty)")
	fs.StringVar(&req.ImageURL, "image-url", "", "profile image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Password, err = prompt("비밀번호", req.Password); err != nil {
		return err
	}
	msg, err := services.NewAuthService(a.client).Signup(ctx, req)
	if err != nil {
		return failure(err, services.MsgSignupFailed)
	}
	fmt.Fprintln(a.out, firstNonEmpty(msg, "회원가입 성공"))
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	var req services.LoginRequest
	fs := newFlagSet("login")
	fs.StringVar(&req.Password, "password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Username, err = prompt("아이디", fs.Arg(0)); err != nil {
		return err
	}
	if req.Password, err = prompt("비밀번호", req.Password); err != nil {
		return err
	}

	res, err := services.NewAuthService(a.client).Login(ctx, req)
	if err != nil {
		return failure(err, services.MsgLoginFailed)
	}
	fmt.Fprintf(a.out, "%s 님, 환영합니다. (role: %s, verified: %t)\n", res.Username, res.Role, res.IsVerified)
	return nil
}

func (a *app) cmdLogout() error {
	if err := services.NewAuthService(a.client).Logout(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	fmt.Fprintln(a.out, "로그아웃되었습니다.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	state := guards.NewAuthCheck(a.client).Run(ctx)
	if state.User == nil {
		a.nav.Navigate(guards.RouteLogin)
		return errors.New("로그인 상태가 아닙니다.")
	}

	u := state.User
	fmt.Fprintf(a.out, "username:  %s\nname:      %s\nemail:     %s\nphone:     %s\nrole:      %s\nverified:  %t\n",
		u.Username, u.Name, u.Email, u.PhoneNumber, u.Role, u.IsVerified)
	if pair, err := a.client.Credentials().Load(); err == nil {
		if exp, ok := credentials.AccessExpiry(pair.AccessToken); ok {
			fmt.Fprintf(a.out, "token exp: %s (%s left)\n", exp.Local().Format(time.RFC3339), time.Until(exp).Round(time.Second))
		}
	}
	return nil
}

func (a *app) cmdFindID(ctx context.Context, args []string) error {
	var req services.FindIDRequest
	fs := newFlagSet("find-id")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	username, err := services.NewAuthService(a.client).FindID(ctx, req)
	if err != nil {
		return failure(err, services.MsgFindIDFailed)
	}
	fmt.Fprintf(a.out, "아이디: %s\n", username)
	return nil
}

func (a *app) cmdReset(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: partnerhub reset request|validate|confirm")
	}
	auth := services.NewAuthService(a.client)
	sub, args := args[0], args[1:]

	fs := newFlagSet("reset " + sub)
	email := fs.String("email", "", "account email")
	uid := fs.String("uid", "", "uid from the reset link")
	token := fs.String("token", "", "token from the reset link")
	password := fs.String("password", "", "new password (prompted when empty)")
	confirm := fs.String("confirm", "", "new password again (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		msg string
		err error
	)
	switch sub {
	case "request":
		msg, err = auth.RequestPasswordReset(ctx, services.PasswordResetRequest{Email: *email})
		err = failure(err, services.MsgResetRequestFailed)
	case "validate":
		msg, err = auth.ValidateResetLink(ctx, *uid, *token)
		err = failure(err, services.MsgResetLinkInvalid)
	case "confirm":
		req := services.ResetConfirmRequest{UID: *uid, Token: *token}
		if req.NewPassword, err = prompt("새 비밀번호", *password); err != nil {
			return err
		}
		if req.ConfirmPassword, err = prompt("새 비밀번호 확인", *confirm); err != nil {
			return err
		}
		msg, err = auth.ConfirmPasswordReset(ctx, req)
		err = failure(err, services.MsgResetFailed)
	default:
		return fmt.Errorf("unknown reset step %q", sub)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
