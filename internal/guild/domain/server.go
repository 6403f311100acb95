package domain

import "time"

type Server struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
