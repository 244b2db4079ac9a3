// Command token issues an access token for local development.
//
//	go run ./cmd/token -company <uuid> -employee <uuid> -role manager
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
)

func main() {
	companyID := flag.String("company", "", "company id (required)")
	employeeID := flag.String("employee", "", "employee id")
	userID := flag.String("user", "", "user id")
	role := flag.String("role", string(auth.RoleEmployee), "owner, manager or employee")
	flag.Parse()

	if *companyID == "" {
		flag.Usage()
		os.Exit(2)
	}

	switch auth.Role(*role) {
	case auth.RoleOwner, auth.RoleManager, auth.RoleEmployee:
	default:
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(auth.Claims{
		UserID:     *userID,
		EmployeeID: *employeeID,
		CompanyID:  *companyID,
		Role:       auth.Role(*role),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
