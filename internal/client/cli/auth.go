package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authvault/internal/common"
)

func (a *App) register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeBytes(password)

	res, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}

	a.token = res.Token
	a.userEmail = res.User.Email
	fmt.Fprintf(a.out, "Registered as %s (id %s)\n", res.User.Email, res.User.ID)
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeBytes(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return
	}

	a.token = res.Token
	a.userEmail = res.User.Email
	fmt.Fprintf(a.out, "Logged in as %s\n", res.User.Email)
}

func (a *App) whoami(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	p, err := a.api.Profile(ctx, a.token)
	if err != nil {
		fmt.Fprintf(a.out, "Profile request failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "id:      %s\n", p.User.ID)
	fmt.Fprintf(a.out, "email:   %s\n", p.User.Email)
	fmt.Fprintf(a.out, "name:    %s\n", p.User.Name)
	fmt.Fprintf(a.out, "expires: %s\n", p.Token.ExpiresAt)
}

func (a *App) logout() {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	a.token = ""
	a.userEmail = ""
	fmt.Fprintln(a.out, "Logged out")
}
