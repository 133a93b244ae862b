package storage

import (
	"context"
	"time"

	"github.com/travelagency/admin/internal/platform/diagnostics"
)

// User statuses.
const (
	StatusUser  = "user"
	StatusAdmin = "admin"
)

// User is one registered traveller or admin.
type User struct {
	ID             string    `csv:"id"`
	Name           string    `csv:"name"`
	Email          string    `csv:"email"`
	ImageURL       string    `csv:"image_url,omitempty"`
	JoinedAt       time.Time `csv:"joined_at"`
	ItineraryCount int       `csv:"itinerary_count"`
	Status         string    `csv:"status"`
}

// Trip is one generated itinerary summary.
type Trip struct {
	ID             string
	Name           string
	Tags           []string
	ImageURL       string
	Location       string
	EstimatedPrice string
	Duration       int
	CreatedAt      time.Time
}

// MonthCount compares the current calendar month with the previous one.
type MonthCount struct {
	CurrentMonth int
	LastMonth    int
}

// DashboardStats feeds the three dashboard stats cards.
type DashboardStats struct {
	TotalUsers   int
	UsersJoined  MonthCount
	TotalTrips   int
	TripsCreated MonthCount
	// ActiveUsers counts users with the "user" status.
	ActiveUsers      int
	ActiveUsersMonth MonthCount
}

// DashboardStore reads dashboard aggregates.
type DashboardStore interface {
	DashboardStats(ctx context.Context, now time.Time) (DashboardStats, error)
	RecentTrips(ctx context.Context, limit int) ([]Trip, error)
}

// UserStore lists users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// DiagnosticStore persists diagnostic records.
type DiagnosticStore interface {
	AppendDiagnostic(ctx context.Context, rec diagnostics.Record) error
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	DashboardStore
	UserStore
	DiagnosticStore
	Close() error
}
