package model

import "time"

// User is an account holding money outside of a table
type User struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Money   int       `json:"money"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}
