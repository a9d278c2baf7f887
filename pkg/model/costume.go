package model

import "time"

type Costume struct {
	ID          string    `json:"id" bson:"_id" validate:"required"`
	Name        string    `json:"name" bson:"name" validate:"required,max=200"`
	Description string    `json:"description" bson:"description" validate:"required,max=5000"`
	Category    string    `json:"category" bson:"category" validate:"required,max=100"`
	Sizes       []string  `json:"sizes" bson:"sizes" validate:"required,min=1,max=50,dive,required,max=20"`
	Images      []string  `json:"images" bson:"images" validate:"required,min=1,max=20,dive,required,http_url,max=2048"`
	PricePerDay float64   `json:"price_per_day" bson:"price_per_day" validate:"gte=0,lte=9999999999.99,max_decimals=2"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// HasSize reports whether size is one of the offered size labels.
func (c *Costume) HasSize(size string) bool {
	for _, s := range c.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type CostumeCreate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Images      []string `json:"images"`
	PricePerDay *float64 `json:"price_per_day"`
	Available   *bool    `json:"available,omitempty"`
}

// CostumeUpdate carries a partial update; nil fields keep their stored value.
type CostumeUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Sizes       *[]string `json:"sizes,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	PricePerDay *float64  `json:"price_per_day,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

func (u *CostumeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.Sizes == nil && u.Images == nil && u.PricePerDay == nil && u.Available == nil
}

type CostumeFilter struct {
	Category string
	Search   string
}
