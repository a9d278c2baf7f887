package validator

import (
	"strings"

	"wardrobe/pkg/logger"
	"wardrobe/pkg/model"
	"wardrobe/pkg/sanitizer"
	"wardrobe/pkg/validation"
)

type UserValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	log.Info("User validator initialized successfully")
	return &UserValidator{
		validator: validation.New(),
		logger:    log,
	}
}

// NormalizeRegister trims the email and strips markup from the display
// name. The email keeps its case.
func (v *UserValidator) NormalizeRegister(req *model.RegisterRequest) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = sanitizer.NormalizeText(req.Name)
}

func (v *UserValidator) ValidateRegister(req *model.RegisterRequest) error {
	if err := v.validator.Struct(req); err != nil {
		v.logger.Warn("Register request validation failed",
			"email", req.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := v.validator.Struct(req); err != nil {
		v.logger.Warn("Login request validation failed", "error", err)
		return err
	}
	return nil
}

func (v *UserValidator) ValidateRole(role model.Role) error {
	if !role.Valid() {
		return validation.Field("role", "role must be one of: user admin")
	}
	return nil
}
