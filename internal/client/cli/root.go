package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if identity := a.session.Identity(); identity != nil {
		s = identity.Username + " "
	}
	if mode := a.currentMode(); mode != "" {
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

func (a *App) printHelp() {
	fmt.Println("Browse:   list [category], search <text>, show <id>")
	if !a.session.IsAuthenticated() {
		fmt.Println("Account:  register, login, exit")
		return
	}
	fmt.Println("Cart:     add <id> [qty], cart, remove <id>, qty <id> <n>, clear, checkout")
	fmt.Println("Account:  whoami, purchases, logout, exit")
	if a.session.IsAdmin() {
		fmt.Println("Admin:    sweet-add, sweet-update <id>, sweet-delete <id>, restock <id> <qty>, history <id>")
	}
}

func (a *App) Root(ctx context.Context) {
	// Resolve the persisted session before the first prompt so the REPL
	// never renders the pre-read Unknown state.
	state := a.session.Restore(ctx)
	log.Printf("Welcome to the Sweet Shop CLI (type 'help' for commands)")
	if identity := a.session.Identity(); identity != nil {
		log.Printf("Logged in as %s", identity.Username)
	} else {
		log.Printf("Session: %s", state)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("sweet %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			if err := a.Register(ctx); err != nil {
				log.Printf("error: %v", err)
			}
		case "login":
			if err := a.Login(ctx); err != nil {
				log.Printf("error: %v", err)
			}
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI()
		case "list":
			a.list(ctx, args)
		case "search":
			a.search(ctx, args)
		case "show":
			a.show(ctx, args)
		case "add":
			a.addToCart(ctx, args)
		case "cart":
			a.showCart()
		case "remove":
			a.removeFromCart(args)
		case "qty":
			a.updateQuantity(args)
		case "clear":
			a.clearCart()
		case "checkout":
			a.runCheckout(ctx)
		case "purchases":
			a.purchases(ctx)
		case "sweet-add":
			a.sweetAdd(ctx)
		case "sweet-update":
			a.sweetUpdate(ctx, args)
		case "sweet-delete":
			a.sweetDelete(ctx, args)
		case "restock":
			a.restock(ctx, args)
		case "history":
			a.history(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
