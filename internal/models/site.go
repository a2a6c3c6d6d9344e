// Package models defines data structures and domain types.
package models

// Site is a tracked domain in the analytics service. The domain doubles as
// the site_id the API uses to scope queries.
type Site struct {
	Domain   string `json:"domain"`
	Timezone string `json:"timezone,omitempty"`
}
