// Command token mints an access token for the shop API, e.g.
//
//	go run ./cmd/token -sub owner -role owner
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/furnishop/shop-backend-go/internal/config"
	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/furnishop/shop-backend-go/internal/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "", "token subject, e.g. the staff member's name")
	role := flag.String("role", string(auth.RoleStaff), "owner or staff")
	flag.Parse()

	if err := mint(*subject, auth.Role(*role)); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func mint(subject string, role auth.Role) error {
	if subject == "" {
		return fmt.Errorf("-sub is required")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	service, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	token, expiresAt, err := service.GenerateAccessToken(subject, role)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
