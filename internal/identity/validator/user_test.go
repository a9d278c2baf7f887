package validator

import (
	"errors"
	"strings"
	"testing"

	"wardrobe/pkg/logger"
	"wardrobe/pkg/model"
	"wardrobe/pkg/validation"
)

func newTestValidator() *UserValidator {
	return NewUserValidator(logger.Discard())
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name       string
		req        model.RegisterRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  model.RegisterRequest{Email: "alice@example.com", Password: "secret1", Name: "Alice"},
		},
		{
			name:       "missing everything",
			req:        model.RegisterRequest{},
			wantFields: []string{"email", "password", "name"},
		},
		{
			name:       "malformed email",
			req:        model.RegisterRequest{Email: "alice", Password: "secret1", Name: "Alice"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        model.RegisterRequest{Email: "alice@example.com", Password: "12345", Name: "Alice"},
			wantFields: []string{"password"},
		},
		{
			name:       "password beyond bcrypt limit",
			req:        model.RegisterRequest{Email: "alice@example.com", Password: strings.Repeat("x", 73), Name: "Alice"},
			wantFields: []string{"password"},
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(&tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			got := strings.Join(verrs.Fields(), ",")
			if got != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %s, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestNormalizeRegister(t *testing.T) {
	req := model.RegisterRequest{Email: "  Alice@Example.com ", Name: " <b>Alice</b>  Smith "}
	newTestValidator().NormalizeRegister(&req)

	if req.Email != "Alice@Example.com" {
		t.Errorf("email case must be preserved, got %q", req.Email)
	}
	if req.Name != "Alice Smith" {
		t.Errorf("expected cleaned name, got %q", req.Name)
	}
}

func TestValidateLogin(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateLogin(&model.LoginRequest{Email: "alice@example.com", Password: "x"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := v.ValidateLogin(&model.LoginRequest{Email: " ", Password: ""}); err == nil {
		t.Errorf("expected error for empty credentials")
	}
}

func TestValidateRole(t *testing.T) {
	v := newTestValidator()
	if err := v.ValidateRole(model.RoleAdmin); err != nil {
		t.Errorf("admin should be valid: %v", err)
	}
	if err := v.ValidateRole(model.Role("owner")); err == nil {
		t.Errorf("expected error for unknown role")
	}
}
