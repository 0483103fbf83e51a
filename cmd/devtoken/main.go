package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/httpkit"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	subject := flag.String("sub", "", "user id to embed (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if cfg.GetJWTAccessSecret() == "" {
		fmt.Fprintln(os.Stderr, "JWT_ACCESS_SECRET is not set")
		os.Exit(1)
	}
	if !cfg.IsDevelopment() {
		fmt.Fprintln(os.Stderr, "refusing to mint tokens outside development")
		os.Exit(1)
	}

	userID := uuid.New()
	if *subject != "" {
		userID, err = uuid.Parse(*subject)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid -sub:", err)
			os.Exit(2)
		}
	}

	token, err := httpkit.SignAccessToken(userID, cfg.GetJWTAccessSecret(), *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
