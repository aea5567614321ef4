package store

import "github.com/cluedotech/timesheetpro/internal/core/domain"

// SeedUsers is the built-in default directory, used when no persisted user
// collection exists or it cannot be read.
func SeedUsers() []domain.User {
	return []domain.User{
		// Contractors
		{ID: 1, Name: "Alex Doe", Role: domain.RoleContractor, Company: "Cluedo Tech (1099)", HourlyRate: 75, ManagerID: 3, Email: "alex.doe@example.com", Phone: "+12345678901", ServiceTitle: "Software Engineering Services", ClientID: 1},
		{ID: 2, Name: "Jane Roe", Role: domain.RoleContractor, Company: "Cluedo Tech (1099)", HourlyRate: 85, ManagerID: 3, Email: "jane.roe@example.com", Phone: "+12345678902", ServiceTitle: "UX/UI Design Services", ClientID: 1},
		{ID: 5, Name: "John Smith", Role: domain.RoleContractor, Company: "Cluedo Tech (1099)", HourlyRate: 80, ManagerID: 6, Email: "john.smith@example.com", Phone: "+12345678903", ServiceTitle: "Product Management Consulting", ClientID: 1},

		// Managers
		{ID: 3, Name: "Brenda Smith", Role: domain.RoleManager, Company: "Kalpa Analytics", Email: "brenda.smith@example.com", Phone: "+15555550101"},
		{ID: 6, Name: "David Lee", Role: domain.RoleManager, Company: "Kalpa Analytics", Email: "david.lee@example.com", Phone: "+15555550102"},

		// Super admin
		{ID: 4, Name: "Charlie Brown", Role: domain.RoleSuperAdmin, Company: "Cluedo Tech", Email: "charlie.brown@example.com", Phone: "+15555550103"},
	}
}

// SeedClients is the built-in default client list.
func SeedClients() []domain.Client {
	return []domain.Client{
		{
			ID:           1,
			Name:         "Kalpa Analytics LLC",
			AddressLine1: "42763 Conquest Circle",
			AddressLine2: "Ashburn VA 20148",
			ContactEmail: "accounts@kalpa-analytics.demo",
		},
	}
}
