// Package devtoken mints bearer tokens for local runs against a JWT_SECRET the
// identity provider would otherwise sign with.
package devtoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"volunteerhub/internal/domain"
)

// Config holds the claims of the token to mint.
type Config struct {
	UserID string
	Email  string
	TTL    time.Duration
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{TTL: 24 * time.Hour}
	fs.StringVar(&cfg.UserID, "sub", "", "user id placed in the sub claim (required)")
	fs.StringVar(&cfg.Email, "email", "", "email placed in the email claim (required)")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run issues the token and writes it to out as an Authorization header value.
func Run(cfg Config, issuer domain.TokenIssuer, out io.Writer) error {
	if cfg.UserID == "" {
		return errors.New("-sub is required")
	}
	if domain.NormalizeEmail(cfg.Email) == "" {
		return errors.New("-email is required")
	}
	if cfg.TTL <= 0 {
		return errors.New("-ttl must be positive")
	}
	token, err := issuer.Issue(cfg.UserID, domain.NormalizeEmail(cfg.Email), cfg.TTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintf(out, "Bearer %s\n", token)
	return err
}
