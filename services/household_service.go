package services

import (
	"database/sql"
	"errors"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// HouseholdService handles household and membership business logic
type HouseholdService struct {
	households HouseholdStore
}

// NewHouseholdService creates a new household service
func NewHouseholdService(households HouseholdStore) *HouseholdService {
	return &HouseholdService{households: households}
}

// CreateHousehold creates a household with the caller as its admin member
func (s *HouseholdService) CreateHousehold(userID int64, req *models.CreateHouseholdRequest) (*models.CreateHouseholdResponse, error) {
	if err := utils.ValidateRequired(req.Name, "household name"); err != nil {
		return nil, err
	}

	exists, err := s.households.HouseholdNameExists(req.Name)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if exists {
		return nil, utils.NewConflictError("household name already exists")
	}

	household := &models.Household{
		Name:        req.Name,
		Code:        utils.GenerateJoinCode(),
		CreatedByID: userID,
	}
	admin := &models.HouseholdMember{
		UserID: userID,
		Role:   models.RoleAdmin,
	}
	if err := s.households.CreateHousehold(household, admin); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return &models.CreateHouseholdResponse{
		ID:   household.ID,
		Name: household.Name,
		Role: string(admin.Role),
		Code: household.Code,
	}, nil
}

// JoinHousehold adds the caller to the household matching the join code.
// Joining a household the caller already belongs to returns the existing
// membership rather than an error.
func (s *HouseholdService) JoinHousehold(userID int64, req *models.JoinHouseholdRequest) (*models.JoinHouseholdResponse, error) {
	household, err := s.households.GetHouseholdByCode(req.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.ErrHouseholdNotFound)
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	existing, err := s.households.GetMemberByUserAndHousehold(userID, household.ID)
	if err == nil {
		return &models.JoinHouseholdResponse{
			HouseholdID:   household.ID,
			HouseholdName: household.Name,
			MemberID:      existing.ID,
			Role:          string(existing.Role),
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	member := &models.HouseholdMember{
		HouseholdID: household.ID,
		UserID:      userID,
		Role:        models.RoleMember,
	}
	if err := s.households.CreateMember(member); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return &models.JoinHouseholdResponse{
		HouseholdID:   household.ID,
		HouseholdName: household.Name,
		MemberID:      member.ID,
		Role:          string(member.Role),
	}, nil
}

// ListHouseholds returns every household the caller belongs to
func (s *HouseholdService) ListHouseholds(userID int64) ([]models.HouseholdSummary, error) {
	summaries, err := s.households.ListHouseholdsByUser(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if summaries == nil {
		summaries = []models.HouseholdSummary{}
	}
	return summaries, nil
}

// ListMembers returns the member directory of a household. The caller must
// belong to the household.
func (s *HouseholdService) ListMembers(userID, householdID int64) ([]models.MemberResponse, error) {
	if _, err := s.households.GetHouseholdByID(householdID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.ErrHouseholdNotFound)
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if _, err := s.households.GetMemberByUserAndHousehold(userID, householdID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewUnauthorizedError("user is not a member of this household")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	members, err := s.households.ListMembersByHousehold(householdID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	responses := make([]models.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, models.MemberResponse{
			MemberID: member.ID,
			UserID:   member.UserID,
			FullName: member.UserFullName,
			Role:     member.Role,
		})
	}
	return responses, nil
}

// IsAdmin reports whether the caller is the admin of the household
func (s *HouseholdService) IsAdmin(userID, householdID int64) (bool, error) {
	member, err := s.households.GetMemberByUserAndHousehold(userID, householdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, utils.NewNotFoundError(utils.ErrMemberNotFound)
		}
		return false, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return member.Role == models.RoleAdmin, nil
}
