package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// StatisticsService summarizes a member's pending settlement exposure over
// time windows. Only debts are counted: settlements where the member is the
// debtor, in status PENDING, selected by settlement date.
type StatisticsService struct {
	settlements SettlementStore
	households  HouseholdStore

	// now is swapped out in tests to pin the reference date
	now func() time.Time
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(settlements SettlementStore, households HouseholdStore) *StatisticsService {
	return &StatisticsService{
		settlements: settlements,
		households:  households,
		now:         time.Now,
	}
}

// CurrentMonthStats returns the member's PENDING settlements dated within
// the current calendar month, with their total.
func (s *StatisticsService) CurrentMonthStats(userID, memberID, householdID int64) (*models.SettlementStats, error) {
	if err := s.authorizeMembership(userID, memberID, householdID); err != nil {
		return nil, err
	}

	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)
	return s.statsInRange(memberID, from, to)
}

// LastThreeMonthsStats returns the member's PENDING settlements dated within
// the inclusive trailing three-month window, with their total.
func (s *StatisticsService) LastThreeMonthsStats(userID, memberID, householdID int64) (*models.SettlementStats, error) {
	if err := s.authorizeMembership(userID, memberID, householdID); err != nil {
		return nil, err
	}

	now := s.now()
	from := now.AddDate(0, -3, 0)
	return s.statsInRange(memberID, from, now)
}

func (s *StatisticsService) statsInRange(memberID int64, from, to time.Time) (*models.SettlementStats, error) {
	settlements, err := s.settlements.ListPendingInDateRange(memberID, from, to)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	total := decimal.Zero
	for _, settlement := range settlements {
		total = total.Add(settlement.Amount)
	}

	return &models.SettlementStats{
		PendingSettlements: toResponses(settlements),
		TotalPendingAmount: total,
	}, nil
}

func (s *StatisticsService) authorizeMembership(userID, memberID, householdID int64) error {
	if _, err := s.households.GetHouseholdByID(householdID); err != nil {
		return notFoundOr(err, utils.ErrHouseholdNotFound)
	}

	member, err := s.households.GetMemberByUserAndHousehold(userID, householdID)
	if err != nil {
		return notFoundOr(err, utils.ErrMemberNotFound)
	}
	if member.ID != memberID {
		return utils.NewUnauthorizedError("unauthorized access to settlement statistics")
	}
	return nil
}
