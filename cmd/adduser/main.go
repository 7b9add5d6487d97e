// Command adduser creates a user account from the command line, prompting
// for the password without echo. Useful for bootstrapping the account that
// owns photos recovered by the sync command.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/server/config"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musefuse/internal/server/services"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <username>\n", os.Args[0])
		os.Exit(1)
	}
	username := os.Args[1]

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	fmt.Print("Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("password read error: %v", err)
	}
	defer common.WipeByteArray(password)

	us := services.NewUserService(db, m, cfg)

	user, err := us.Register(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			log.Fatalf("user %q already exists", username)
		}
		log.Fatalf("user creation error: %v", err)
	}

	fmt.Printf("User %q created with id %d\n", user.Username, user.ID)
}
