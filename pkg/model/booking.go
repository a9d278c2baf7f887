package model

import (
	"time"
)

type Booking struct {
	ID             string        `json:"id" bson:"_id"`
	UserEmail      string        `json:"user_email" bson:"user_email"`
	UserName       string        `json:"user_name" bson:"user_name"`
	CostumeID      string        `json:"costume_id" bson:"costume_id"`
	CostumeName    string        `json:"costume_name" bson:"costume_name"`
	StartDate      string        `json:"start_date" bson:"start_date"`
	EndDate        string        `json:"end_date" bson:"end_date"`
	Size           string        `json:"size" bson:"size"`
	Notes          *string       `json:"notes" bson:"notes,omitempty"`
	Status         BookingStatus `json:"status" bson:"status"`
	IdempotencyKey string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
}

type BookingCreate struct {
	CostumeID      string `json:"costume_id" validate:"required,max=64"`
	StartDate      string `json:"start_date" validate:"required,max=32"`
	EndDate        string `json:"end_date" validate:"required,max=32"`
	Size           string `json:"size" validate:"required,max=20"`
	Notes          string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	IdempotencyKey string `json:"-" validate:"omitempty,max=128"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}
