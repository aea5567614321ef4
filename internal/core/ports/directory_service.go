package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// ContractorDetails are the admin-editable fields of a contractor record.
// Nil pointers leave the current value untouched.
type ContractorDetails struct {
	ManagerID    *int
	HourlyRate   *float64
	Email        *string
	Phone        *string
	ServiceTitle *string
	ClientID     *int
}

// ClientInput carries the editable fields of a client record.
type ClientInput struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	ContactEmail string
}

// DirectoryService exposes the user and client collections plus the admin
// mutations on them.
type DirectoryService interface {
	Users(ctx context.Context) []domain.User
	FindUser(ctx context.Context, id int) (*domain.User, error)
	UpdateContractor(ctx context.Context, contractorID int, details ContractorDetails) (*domain.User, error)

	Clients(ctx context.Context) []domain.Client
	FindClient(ctx context.Context, id int) (*domain.Client, error)
	AddClient(ctx context.Context, in ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id int, in ClientInput) (*domain.Client, error)
	// DeleteClient fails with domain.ErrClientInUse while any user references
	// the client, leaving the collection unchanged.
	DeleteClient(ctx context.Context, id int) error
}
