package model

import "time"

// Hero is the headline block at the top of a generated site.
type Hero struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

// Service is a single offering listed on a generated site.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Contact holds the contact details shown on a generated site.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Hours string `json:"hours"`
}

// SiteContent is the document produced by the text-generation API.
// Keys missing from the model output decode to zero values.
type SiteContent struct {
	Hero     Hero      `json:"hero"`
	About    string    `json:"about"`
	Services []Service `json:"services"`
	Contact  Contact   `json:"contact"`
}

// Site is a stored generated website.
type Site struct {
	ID         string    `json:"id"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
	SiteContent
}
