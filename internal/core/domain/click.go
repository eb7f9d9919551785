package domain

import "time"

// RedirectLink maps a short slug to a partner URL.
type RedirectLink struct {
	Slug    string `json:"slug"`
	URL     string `json:"url"`
	Partner string `json:"partner,omitempty"`
}

// ClickEvent records one pass through the redirector.
type ClickEvent struct {
	ID        string    `json:"id,omitempty"`
	Slug      string    `json:"slug"`
	Partner   string    `json:"partner,omitempty"`
	URL       string    `json:"url"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Time      time.Time `json:"time"`
}
