package validator

import (
	"wardrobe/pkg/logger"
	"wardrobe/pkg/model"
	"wardrobe/pkg/sanitizer"
	"wardrobe/pkg/validation"
)

type CostumeValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewCostumeValidator(log *logger.Logger) *CostumeValidator {
	log.Info("Costume validator initialized successfully")
	return &CostumeValidator{
		validator: validation.New(),
		logger:    log,
	}
}

// Normalize cleans free text, de-duplicates sizes and image URLs in order.
func (v *CostumeValidator) Normalize(c *model.Costume) {
	c.Name = sanitizer.NormalizeText(c.Name)
	c.Description = sanitizer.NormalizeText(c.Description)
	c.Category = sanitizer.NormalizeText(c.Category)
	c.Sizes = sanitizer.NormalizeSizes(c.Sizes)
	c.Images = sanitizer.NormalizeImageURLs(c.Images)
}

func (v *CostumeValidator) Validate(c *model.Costume) error {
	if err := v.validator.Struct(c); err != nil {
		v.logger.Warn("Costume validation failed",
			"id", c.ID,
			"name", c.Name,
			"error", err,
		)
		return err
	}
	return nil
}
