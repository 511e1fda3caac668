// Package seed loads users from a YAML fixture into an identity store at
// start-up.
//
// Example fixture:
//
//	users:
//	  - user_name: admin
//	    email: admin@example.com
//	    password: changeme
//	    email_confirmed: true
//	    roles: [admin]
//	    claims:
//	      - {type: dept, value: ops}
//	    logins:
//	      - {provider: github, key: "1", display_name: GitHub}
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/models"
)

// Fixture is the document root.
type Fixture struct {
	Users []User `yaml:"users"`
}

type User struct {
	UserName       string   `yaml:"user_name"`
	Email          string   `yaml:"email"`
	Password       string   `yaml:"password"`
	EmailConfirmed bool     `yaml:"email_confirmed"`
	PhoneNumber    string   `yaml:"phone_number"`
	Roles          []string `yaml:"roles"`
	Claims         []Claim  `yaml:"claims"`
	Logins         []Login  `yaml:"logins"`
}

type Claim struct {
	Type      string `yaml:"type"`
	Value     string `yaml:"value"`
	ValueType string `yaml:"value_type"`
}

type Login struct {
	Provider    string `yaml:"provider"`
	Key         string `yaml:"key"`
	DisplayName string `yaml:"display_name"`
}

// Registrar is the part of the user service the loader drives.
type Registrar interface {
	Register(ctx context.Context, userName, email, password string) (*models.User, error)
	ConfirmEmail(ctx context.Context, userID string) error
	SetPhoneNumber(ctx context.Context, userID, phone string) error
	AddToRole(ctx context.Context, userID, role string) error
	AddClaims(ctx context.Context, userID string, claims ...models.Claim) error
	AddLogin(ctx context.Context, userID string, login models.Login) error
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := &Fixture{}
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// LoadFile parses the fixture at path and applies it.
func LoadFile(ctx context.Context, path string, r Registrar, logger logging.Logger) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	f, err := Parse(file)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return Apply(ctx, f, r, logger)
}

// Apply registers every fixture user with its details. Users whose name is
// already taken are skipped, so applying the same fixture twice is harmless.
// It returns the number of users created and stops at the first other error.
func Apply(ctx context.Context, f *Fixture, r Registrar, logger logging.Logger) (int, error) {
	created := 0
	for _, fu := range f.Users {
		u, err := r.Register(ctx, fu.UserName, fu.Email, fu.Password)
		if errors.Is(err, common.ErrorAlreadyExists) {
			logger.Warn(ctx, "seed user exists, skipping", "user_name", fu.UserName)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed user %q: %w", fu.UserName, err)
		}

		if err := applyDetails(ctx, r, u.ID, fu); err != nil {
			return created, fmt.Errorf("seed user %q: %w", fu.UserName, err)
		}
		created++
	}

	logger.Info(ctx, "seed applied", "users", created)
	return created, nil
}

func applyDetails(ctx context.Context, r Registrar, userID string, fu User) error {
	if fu.EmailConfirmed {
		if err := r.ConfirmEmail(ctx, userID); err != nil {
			return err
		}
	}
	if fu.PhoneNumber != "" {
		if err := r.SetPhoneNumber(ctx, userID, fu.PhoneNumber); err != nil {
			return err
		}
	}
	for _, role := range fu.Roles {
		if err := r.AddToRole(ctx, userID, role); err != nil {
			return err
		}
	}
	if len(fu.Claims) > 0 {
		claims := make([]models.Claim, 0, len(fu.Claims))
		for _, c := range fu.Claims {
			claims = append(claims, models.Claim{Type: c.Type, Value: c.Value, ValueType: c.ValueType})
		}
		if err := r.AddClaims(ctx, userID, claims...); err != nil {
			return err
		}
	}
	for _, l := range fu.Logins {
		login := models.Login{LoginProvider: l.Provider, ProviderKey: l.Key, ProviderDisplayName: l.DisplayName}
		if err := r.AddLogin(ctx, userID, login); err != nil {
			return err
		}
	}
	return nil
}
