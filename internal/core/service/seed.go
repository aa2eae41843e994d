package service

import (
	"context"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

// DefaultStaff is the account set created on an empty store, one per role.
var DefaultStaff = []ports.AccountInput{
	{Username: "admin", Role: domain.RoleAdministrator, Name: "System Administrator", Email: "admin@hospital.com", Phone: "+1-555-0001"},
	{Username: "doctor", Role: domain.RoleDoctor, Name: "Dr. John Smith", Email: "doctor@hospital.com", Phone: "+1-555-0002"},
	{Username: "nurse", Role: domain.RoleNurse, Name: "Nurse Mary Johnson", Email: "nurse@hospital.com", Phone: "+1-555-0003"},
	{Username: "reception", Role: domain.RoleReceptionist, Name: "Sarah Wilson", Email: "reception@hospital.com", Phone: "+1-555-0004"},
	{Username: "pharmacist", Role: domain.RolePharmacist, Name: "Mike Brown", Email: "pharmacist@hospital.com", Phone: "+1-555-0005"},
}

// SeedDefaults creates DefaultStaff when the store holds no accounts. Each
// password is the username followed by suffix. It returns the number created.
func (s *AccountService) SeedDefaults(ctx context.Context, suffix string) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int64("accounts", n).Msg("store not empty, skipping seed")
		return 0, nil
	}

	created := 0
	for _, in := range DefaultStaff {
		in.Password = in.Username + suffix
		if _, err := s.Create(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
