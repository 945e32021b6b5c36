// seed-admin is the explicit admin bootstrap: it provisions an initial
// administrator account on demand rather than as a startup side effect.
// The operation is idempotent — an existing account with the same email
// is never overwritten.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/prepmitra/mocktest-backend/internal/config"
	"github.com/prepmitra/mocktest-backend/internal/database"
	"github.com/prepmitra/mocktest-backend/internal/logger"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/prepmitra/mocktest-backend/internal/repository"
	"github.com/prepmitra/mocktest-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminRepo := repository.NewAdminRepository(pool)
	adminService := service.NewAdminService(adminRepo)
	authService := service.NewAuthService(cfg)

	// ─── Collect Input ─────────────────────────────────────────────────
	// SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD allow non-interactive use
	// (CI, container entrypoints); otherwise prompt.
	reader := bufio.NewReader(os.Stdin)

	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	if email == "" {
		fmt.Print("Enter Email: ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}
	if email == "" {
		fmt.Println("Error: Email is required")
		os.Exit(1)
	}
	email = strings.ToLower(email)

	name := strings.TrimSpace(os.Getenv("SEED_ADMIN_NAME"))
	if name == "" {
		fmt.Print("Enter Name: ")
		line, _ := reader.ReadString('\n')
		name = strings.TrimSpace(line)
	}
	if name == "" {
		name = "Administrator"
	}

	// ─── Idempotency Guard ─────────────────────────────────────────────
	if existing, err := adminService.GetByEmail(ctx, email); err == nil && existing != nil {
		fmt.Printf("Admin '%s' already exists (ID %d), leaving untouched\n", existing.Email, existing.ID)
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		fmt.Print("Enter Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Println("\nError reading password")
			os.Exit(1)
		}
		password = string(bytePassword)
		fmt.Println()
	}
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		os.Exit(1)
	}

	// ─── Create ────────────────────────────────────────────────────────
	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newAdmin := &model.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	if err := adminService.Create(ctx, newAdmin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Success! Admin '%s' (%s) created with ID: %d\n", newAdmin.Name, newAdmin.Email, newAdmin.ID)
}
