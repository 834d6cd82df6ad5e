// Command cli is an operator console for the wallet store: register users,
// move money, and inspect balances without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/walletd/walletcore/infra/initializer"
	"github.com/walletd/walletcore/pkg/app"
	"github.com/walletd/walletcore/pkg/config"
	"github.com/walletd/walletcore/pkg/currency"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	a, err := initializer.Init(cfg)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.Close() //nolint:errcheck

	ctx := context.Background()
	switch os.Args[1] {
	case "register":
		register(ctx, a)
	case "deposit":
		move(ctx, a, "deposit")
	case "withdraw":
		move(ctx, a, "withdraw")
	case "transfer":
		transfer(ctx, a)
	case "balance":
		balance(ctx, a)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <full-name> <email> <phone>")
	fmt.Println("  deposit <user-id> <amount> <TL|USD>")
	fmt.Println("  withdraw <user-id> <amount> <TL|USD>")
	fmt.Println("  transfer <sender-id> <recipient-id> <amount> <TL|USD> [message]")
	fmt.Println("  balance <user-id>")
}

func register(ctx context.Context, a *app.App) {
	if len(os.Args) < 5 {
		usage()
		return
	}
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		return
	}
	userID, err := a.Auth.Register(ctx, os.Args[2], os.Args[3], os.Args[4], string(password))
	if err != nil {
		color.Red("Registration failed: %v", err)
		return
	}
	color.Green("User registered: %s", userID)
}

func move(ctx context.Context, a *app.App, kind string) {
	if len(os.Args) < 5 {
		usage()
		return
	}
	userID := os.Args[2]
	amount, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		color.Red("Invalid amount: %v", err)
		return
	}
	code, err := currency.Parse(os.Args[4])
	if err != nil {
		color.Red("Invalid currency: %v", err)
		return
	}
	if kind == "deposit" {
		_, err = a.Transfers.Deposit(ctx, userID, amount, code)
	} else {
		_, err = a.Transfers.Withdraw(ctx, userID, amount, code)
	}
	if err != nil {
		color.Red("%s failed: %v", kind, err)
		return
	}
	color.Green("%s of %s%.2f completed for %s", kind, code.Symbol(), amount, userID)
}

func transfer(ctx context.Context, a *app.App) {
	if len(os.Args) < 6 {
		usage()
		return
	}
	amount, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		color.Red("Invalid amount: %v", err)
		return
	}
	code, err := currency.Parse(os.Args[5])
	if err != nil {
		color.Red("Invalid currency: %v", err)
		return
	}
	message := ""
	if len(os.Args) > 6 {
		message = os.Args[6]
	}
	tx, err := a.Transfers.Transfer(ctx, os.Args[2], os.Args[3], amount, code, message)
	if err != nil {
		color.Red("Transfer failed: %v", err)
		return
	}
	color.Green("Transfer completed: %s%.2f (transaction %s)", code.Symbol(), amount, tx.ID)
}

func balance(ctx context.Context, a *app.App) {
	if len(os.Args) < 3 {
		usage()
		return
	}
	balanceTL, balanceUSD, err := a.Accounts.Balances(ctx, os.Args[2])
	if err != nil {
		color.Red("Balance lookup failed: %v", err)
		return
	}
	color.Cyan("Balance TL:  ₺%.2f", balanceTL)
	color.Cyan("Balance USD: $%.2f", balanceUSD)
}
