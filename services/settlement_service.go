package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/repository"
	"github.com/homesplit/homesplit-backend/utils"
)

// SettlementService arbitrates the settlement lifecycle. Every split line of
// an approved expense has at most one settlement, the debtor and creditor
// are fixed at creation, and status transitions require consent from the
// right party: the debtor flags a settlement as paid, the creditor confirms
// or rejects.
//
// The acting user's identity is always an explicit parameter; the service
// never consults ambient auth state.
type SettlementService struct {
	settlements SettlementStore
	expenses    ExpenseStore
	households  HouseholdStore
}

// NewSettlementService creates a new settlement service
func NewSettlementService(settlements SettlementStore, expenses ExpenseStore, households HouseholdStore) *SettlementService {
	return &SettlementService{
		settlements: settlements,
		expenses:    expenses,
		households:  households,
	}
}

// CreateSettlement persists one settlement for a split line of an approved
// expense. Duplicate creation for the same (from, to, split) triple is
// rejected with a Conflict error backed by the database unique constraint,
// so concurrent callers cannot slip a second row in.
func (s *SettlementService) CreateSettlement(userID int64, req *models.CreateSettlementRequest) (*models.SettlementResponse, error) {
	expense, err := s.expenses.GetExpenseByID(req.ExpenseID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrExpenseNotFound)
	}

	split, err := s.expenses.GetSplitByID(req.SplitID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrSplitNotFound)
	}

	if split.ExpenseID != expense.ID {
		return nil, utils.NewInvalidStateError("expense split does not belong to the provided expense")
	}
	if expense.Status != models.ExpenseApproved {
		return nil, utils.NewInvalidStateError("cannot create settlement for a non-approved expense")
	}

	if _, err := s.households.GetMemberByID(req.FromMemberID); err != nil {
		return nil, notFoundOr(err, "From member")
	}
	if _, err := s.households.GetMemberByID(req.ToMemberID); err != nil {
		return nil, notFoundOr(err, "To member")
	}

	if _, err := s.households.GetMemberByUserAndHousehold(userID, expense.HouseholdID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewUnauthorizedError("user is not a member of the expense's household")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	settlement := &models.Settlement{
		FromMemberID: req.FromMemberID,
		ToMemberID:   req.ToMemberID,
		SplitID:      req.SplitID,
		Amount:       split.Amount,
		Currency:     expense.Currency,
		Date:         time.Now(),
		Status:       models.SettlementPending,
	}
	if err := s.settlements.CreateSettlement(settlement); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("a settlement already exists for this expense split")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return s.loadResponse(settlement.ID)
}

// MaterializeSettlements creates one PENDING settlement per split line of an
// approved expense whose payer is not the expense's creator. Split lines
// that already have a settlement are skipped, so calling this more than once
// changes nothing.
func (s *SettlementService) MaterializeSettlements(expense *models.Expense) error {
	if expense.Status != models.ExpenseApproved {
		return utils.NewInvalidStateError("cannot materialize settlements for a non-approved expense")
	}

	var settlements []*models.Settlement
	for _, split := range expense.Splits {
		// A person does not owe themselves.
		if split.MemberID == expense.CreatedByID {
			continue
		}
		settlements = append(settlements, &models.Settlement{
			FromMemberID: split.MemberID,
			ToMemberID:   expense.CreatedByID,
			SplitID:      split.ID,
			Amount:       split.Amount,
			Currency:     expense.Currency,
			Date:         time.Now(),
			Status:       models.SettlementPending,
		})
	}

	if err := s.settlements.CreateSettlementsIfAbsent(settlements); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

// RetractSettlements deletes the expense's settlements ahead of an approval
// rollback. Refused once any settlement of the expense is COMPLETED — money
// has already changed hands at that point.
func (s *SettlementService) RetractSettlements(expenseID int64) error {
	completed, err := s.settlements.HasCompletedByExpense(expenseID)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if completed {
		return utils.NewInvalidStateError("cannot roll back an expense with completed settlements")
	}
	if err := s.settlements.DeleteUncompletedByExpense(expenseID); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

// ToggleStatus flips a settlement between PENDING and AWAITING_APPROVAL.
// Only the debtor may toggle, and only while the creditor has not yet
// confirmed: a COMPLETED settlement stays completed.
func (s *SettlementService) ToggleStatus(userID, settlementID, memberID int64) (*models.SettlementResponse, error) {
	settlement, err := s.authorizeParty(userID, settlementID, memberID, true)
	if err != nil {
		return nil, err
	}

	var next models.SettlementStatus
	switch settlement.Status {
	case models.SettlementPending:
		next = models.SettlementAwaitingApproval
	case models.SettlementAwaitingApproval:
		next = models.SettlementPending
	default:
		return nil, utils.NewInvalidStateError("completed settlement requires receiver approval to change")
	}

	if err := s.settlements.UpdateSettlementStatus(settlement.ID, next); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return s.loadResponse(settlement.ID)
}

// Approve completes a settlement the debtor has flagged as paid. Only the
// creditor may approve, and only from AWAITING_APPROVAL.
func (s *SettlementService) Approve(userID, settlementID, memberID int64) (*models.SettlementResponse, error) {
	return s.resolveAwaiting(userID, settlementID, memberID, models.SettlementCompleted)
}

// Reject sends a settlement back to PENDING, reopening the negotiation.
// Only the creditor may reject, and only from AWAITING_APPROVAL.
func (s *SettlementService) Reject(userID, settlementID, memberID int64) (*models.SettlementResponse, error) {
	return s.resolveAwaiting(userID, settlementID, memberID, models.SettlementPending)
}

func (s *SettlementService) resolveAwaiting(userID, settlementID, memberID int64, next models.SettlementStatus) (*models.SettlementResponse, error) {
	settlement, err := s.authorizeParty(userID, settlementID, memberID, false)
	if err != nil {
		return nil, err
	}

	if settlement.Status != models.SettlementAwaitingApproval {
		return nil, utils.NewInvalidStateError("settlement is not awaiting approval")
	}

	if err := s.settlements.UpdateSettlementStatus(settlement.ID, next); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return s.loadResponse(settlement.ID)
}

// ListForMember returns settlements where the member is debtor or creditor
// and the linked expense has the given status, newest date first.
func (s *SettlementService) ListForMember(userID, memberID, householdID int64, expenseStatus models.ExpenseStatus) ([]models.SettlementResponse, error) {
	if err := s.authorizeMembership(userID, memberID, householdID); err != nil {
		return nil, err
	}

	settlements, err := s.settlements.ListForMemberAndExpenseStatus(memberID, expenseStatus)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return toResponses(settlements), nil
}

// ListAwaitingApprovalForReceiver returns settlements the member needs to
// confirm as creditor.
func (s *SettlementService) ListAwaitingApprovalForReceiver(userID, memberID, householdID int64) ([]models.SettlementResponse, error) {
	if err := s.authorizeMembership(userID, memberID, householdID); err != nil {
		return nil, err
	}

	settlements, err := s.settlements.ListAwaitingApprovalForReceiver(memberID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return toResponses(settlements), nil
}

// authorizeParty loads a settlement and verifies that memberID is the
// required counterparty (debtor when fromSide, creditor otherwise) and that
// the member's linked user is the caller.
func (s *SettlementService) authorizeParty(userID, settlementID, memberID int64, fromSide bool) (*models.Settlement, error) {
	member, err := s.households.GetMemberByID(memberID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrMemberNotFound)
	}
	if member.UserID != userID {
		return nil, utils.NewUnauthorizedError("acting member does not belong to the authenticated user")
	}

	settlement, err := s.settlements.GetSettlementByID(settlementID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrSettlementNotFound)
	}

	if fromSide && settlement.FromMemberID != memberID {
		return nil, utils.NewUnauthorizedError("only the owing member may change this settlement")
	}
	if !fromSide && settlement.ToMemberID != memberID {
		return nil, utils.NewUnauthorizedError("only the receiving member may resolve this settlement")
	}
	return settlement, nil
}

// authorizeMembership verifies that the caller's membership in the household
// is exactly memberID.
func (s *SettlementService) authorizeMembership(userID, memberID, householdID int64) error {
	if _, err := s.households.GetHouseholdByID(householdID); err != nil {
		return notFoundOr(err, utils.ErrHouseholdNotFound)
	}

	member, err := s.households.GetMemberByUserAndHousehold(userID, householdID)
	if err != nil {
		return notFoundOr(err, utils.ErrMemberNotFound)
	}
	if member.ID != memberID {
		return utils.NewUnauthorizedError("unauthorized access to settlements")
	}
	return nil
}

func (s *SettlementService) loadResponse(id int64) (*models.SettlementResponse, error) {
	settlement, err := s.settlements.GetSettlementByID(id)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	response := settlement.ToResponse()
	return &response, nil
}

func toResponses(settlements []*models.Settlement) []models.SettlementResponse {
	responses := make([]models.SettlementResponse, 0, len(settlements))
	for _, settlement := range settlements {
		responses = append(responses, settlement.ToResponse())
	}
	return responses
}

// notFoundOr maps a missing row to a NotFound domain error and anything else
// to a generic internal failure, keeping infrastructure errors
// distinguishable from business-rule violations.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.NewNotFoundError(resource)
	}
	return utils.NewInternalError(utils.ErrFailedToRetrieve)
}
