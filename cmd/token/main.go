// Command token prints an access token for local development against the
// dashboard API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/config"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id (usuarios.id) the token is issued for")
	email := flag.String("email", "", "email claim")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <uuid> [-email <email>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, _, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*userID, *email, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
