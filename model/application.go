// model/application.go
package model

import "time"

// Application is a registered third-party consumer of the credential proxy.
// Policies reference applications through the app.* field paths of the
// request context.
type Application struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
