package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details, validates them locally, and creates
// the account. A successful registration also logs the new user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	if !ValidateUsername(username) {
		fmt.Println("Username must be at least 3 characters: letters, digits and underscores only")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if !ValidateEmail(email) {
		fmt.Println("That does not look like an email address")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if !ValidatePassword(string(password)) {
		fmt.Println("Password must be at least 8 characters with an upper-case letter, a lower-case letter and a digit")
		return nil
	}

	identity, err := a.session.Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", identity.Username)
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// The session store persists the result; any auth error is returned
// unchanged for the REPL to render.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	identity, err := a.session.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	log.Printf("Login successful")
	fmt.Printf("Hello, %s!\n", identity.Username)
	return nil
}

// Logout drops the local session. It always succeeds; calling it while
// already logged out is a no-op.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Println("Logged out")
}

// WhoAmI prints the current identity.
func (a *App) WhoAmI() {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Println("Not logged in")
		return
	}
	role := "customer"
	if identity.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s <%s> (%s)\n", identity.Username, identity.Email, role)
}
