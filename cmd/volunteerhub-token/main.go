// Command volunteerhub-token prints a bearer token signed with JWT_SECRET for local testing.
package main

import (
	"flag"
	"log"
	"os"

	"volunteerhub/config"
	"volunteerhub/internal/adapters/auth"
	"volunteerhub/internal/tools/devtoken"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to mint tokens with GO_ENV=production")
	}
	tokenCfg, err := devtoken.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if err := devtoken.Run(tokenCfg, auth.NewJWTIssuer(cfg.JWTSecret), os.Stdout); err != nil {
		log.Fatalf("mint token: %v", err)
	}
}
