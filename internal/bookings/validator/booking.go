package validator

import (
	"strings"
	"time"

	"wardrobe/pkg/logger"
	"wardrobe/pkg/model"
	"wardrobe/pkg/sanitizer"
	"wardrobe/pkg/validation"
)

// DateLayout is the calendar date format enforced when overlap checks are on.
const DateLayout = "2006-01-02"

type BookingValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Info("Booking validator initialized successfully")
	return &BookingValidator{
		validator: validation.New(),
		logger:    log,
	}
}

func (v *BookingValidator) Normalize(req *model.BookingCreate) {
	req.CostumeID = strings.TrimSpace(req.CostumeID)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)
	req.Size = sanitizer.NormalizeSize(req.Size)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
}

func (v *BookingValidator) Validate(req *model.BookingCreate) error {
	if err := v.validator.Struct(req); err != nil {
		v.logger.Warn("Booking validation failed",
			"costume_id", req.CostumeID,
			"error", err,
		)
		return err
	}
	return nil
}

// ParseDateRange parses both dates as YYYY-MM-DD and requires start <= end.
func (v *BookingValidator) ParseDateRange(start, end string) (time.Time, time.Time, error) {
	var errs validation.ValidationErrors

	from, err := time.Parse(DateLayout, start)
	if err != nil {
		errs = append(errs, validation.ValidationError{Field: "start_date", Message: "start_date must be a date in YYYY-MM-DD format"})
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		errs = append(errs, validation.ValidationError{Field: "end_date", Message: "end_date must be a date in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && to.Before(from) {
		errs = append(errs, validation.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		v.logger.Warn("Booking date range rejected", "start_date", start, "end_date", end)
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
