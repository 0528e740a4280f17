package billing

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/qrplanet/qrplanet/app/repository"
	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
	"github.com/qrplanet/qrplanet/internal/pkg/shortener"
)

// Service applies external entitlement changes to local state.
type Service struct {
	users repository.UserRepository
	codes repository.QRCodeRepository
}

// NewService creates a billing service from injected repositories.
func NewService(users repository.UserRepository, codes repository.QRCodeRepository) *Service {
	return &Service{users: users, codes: codes}
}

// NewServiceFromFactory creates a billing service from the repository factory.
func NewServiceFromFactory(f *repository.Factory) *Service {
	return NewService(f.GetUserRepository(), f.GetQRCodeRepository())
}

// ApplyPlanChange updates the user's plan and, on an upgrade to a plan
// entitled to dynamic QR codes, force-converts every static record the
// user owns to dynamic, allocating a fresh token per record. Returns
// the number of converted records.
func (s *Service) ApplyPlanChange(event PlanChangeEvent) (int, error) {
	if event.EventType != EventTypePlanChanged {
		return 0, nil
	}
	if event.UserID == 0 {
		return 0, errors.New("plan change event without user_id")
	}

	user, err := s.users.GetByID(event.UserID)
	if err != nil {
		return 0, fmt.Errorf("resolve user %d: %w", event.UserID, err)
	}

	oldPlan := user.Plan
	plan := normalizePlan(event.Plan)
	if err := s.users.UpdatePlan(user.ID, plan); err != nil {
		return 0, fmt.Errorf("update plan for user %d: %w", user.ID, err)
	}
	log.Infof("billing: user %d plan %s -> %s", user.ID, oldPlan, plan)

	// Static records are force-converted only on an actual upgrade to a
	// dynamic-capable plan. Downgrades and same-plan renewals never
	// touch tokens; printed symbols must keep working.
	if !isUpgrade(oldPlan, plan) || !entitlements.CanCreateDynamic(entitlements.Plan(plan)) {
		return 0, nil
	}

	statics, err := s.codes.GetStaticByUserID(user.ID)
	if err != nil {
		return 0, fmt.Errorf("list static codes for user %d: %w", user.ID, err)
	}

	converted := 0
	for i := range statics {
		token, err := shortener.NewRedirectToken()
		if err != nil {
			return converted, fmt.Errorf("allocate redirect token: %w", err)
		}
		if err := s.codes.ConvertStaticToDynamic(&statics[i], token); err != nil {
			return converted, fmt.Errorf("convert code %s: %w", statics[i].UUID, err)
		}
		converted++
	}

	if converted > 0 {
		log.Infof("billing: converted %d static codes to dynamic for user %d", converted, user.ID)
	}
	return converted, nil
}
