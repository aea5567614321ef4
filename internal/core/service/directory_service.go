package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

// DirectoryService implements ports.DirectoryService on top of the store.
type DirectoryService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewDirectoryService(st *store.Store, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{store: st, log: log}
}

func (s *DirectoryService) Users(_ context.Context) []domain.User {
	return s.store.Users()
}

func (s *DirectoryService) FindUser(_ context.Context, id int) (*domain.User, error) {
	return s.store.FindUser(id)
}

// UpdateContractor applies the given detail fields to a contractor record.
// Nil fields keep their current value.
func (s *DirectoryService) UpdateContractor(ctx context.Context, contractorID int, details ports.ContractorDetails) (*domain.User, error) {
	user, err := s.store.FindUser(contractorID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleContractor {
		return nil, domain.ErrForbidden
	}

	if details.ManagerID != nil {
		user.ManagerID = *details.ManagerID
	}
	if details.HourlyRate != nil {
		user.HourlyRate = *details.HourlyRate
	}
	if details.Email != nil {
		user.Email = *details.Email
	}
	if details.Phone != nil {
		user.Phone = *details.Phone
	}
	if details.ServiceTitle != nil {
		user.ServiceTitle = *details.ServiceTitle
	}
	if details.ClientID != nil {
		user.ClientID = *details.ClientID
	}

	if err := s.store.ReplaceUser(ctx, *user); err != nil {
		return nil, err
	}
	s.log.Info().Int("contractor_id", contractorID).Msg("contractor details updated")
	return user, nil
}

func (s *DirectoryService) Clients(_ context.Context) []domain.Client {
	return s.store.Clients()
}

func (s *DirectoryService) FindClient(_ context.Context, id int) (*domain.Client, error) {
	return s.store.FindClient(id)
}

func (s *DirectoryService) AddClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	client := s.store.AddClient(ctx, domain.Client{
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		ContactEmail: in.ContactEmail,
	})
	s.log.Info().Int("client_id", client.ID).Str("name", client.Name).Msg("client added")
	return &client, nil
}

func (s *DirectoryService) UpdateClient(ctx context.Context, id int, in ports.ClientInput) (*domain.Client, error) {
	client := domain.Client{
		ID:           id,
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		ContactEmail: in.ContactEmail,
	}
	if err := s.store.ReplaceClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *DirectoryService) DeleteClient(ctx context.Context, id int) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("client_id", id).Msg("client deleted")
	return nil
}
