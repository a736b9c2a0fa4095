package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"auticonnect/internal/model"
	"auticonnect/internal/repository"
)

const defaultMaxMembers = 10

// GroupInput represents data required to create a group.
type GroupInput struct {
	Name        string
	Theme       string
	Description string
	MaxMembers  int
}

// GroupInfo pairs a group with its current member count for listings.
type GroupInfo struct {
	Group   model.Group
	Members int64
}

// GroupService wraps group-related business logic. Creation is AT-only.
type GroupService struct {
	identity  *IdentityService
	groupRepo *repository.GroupRepository
	userRepo  *repository.UserRepository
}

func NewGroupService(identity *IdentityService, groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupService {
	return &GroupService{identity: identity, groupRepo: groupRepo, userRepo: userRepo}
}

// CreateGroup persists a new group for the calling AT. The name must be
// unique across all groups.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID int64, input GroupInput) (*model.Group, error) {
	creator, err := s.identity.Authorize(ctx, creatorID, model.RoleAT)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidGroup
	}

	if _, err := s.groupRepo.FindByName(ctx, name); err == nil {
		return nil, ErrDuplicateGroup
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	maxMembers := input.MaxMembers
	if maxMembers <= 0 {
		maxMembers = defaultMaxMembers
	}

	group := model.Group{
		Name:        name,
		Theme:       strings.TrimSpace(input.Theme),
		Description: strings.TrimSpace(input.Description),
		MaxMembers:  maxMembers,
		CreatedBy:   creator.TelegramID,
	}

	if err := s.groupRepo.Create(ctx, &group); err != nil {
		// The unique index catches a concurrent create with the same name.
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrDuplicateGroup
		}
		return nil, err
	}

	return &group, nil
}

// ListGroups returns every group in creation order with member counts.
func (s *GroupService) ListGroups(ctx context.Context) ([]GroupInfo, error) {
	groups, err := s.groupRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]GroupInfo, 0, len(groups))
	for _, group := range groups {
		members, err := s.groupRepo.CountMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, GroupInfo{Group: group, Members: members})
	}
	return infos, nil
}

// GetByID returns the group or ErrGroupNotFound.
func (s *GroupService) GetByID(ctx context.Context, id uint) (*model.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// JoinGroup puts the registered caller into the referenced group, moving
// them out of their previous group if they had one.
func (s *GroupService) JoinGroup(ctx context.Context, telegramID int64, ref string) (*model.Group, error) {
	user, err := s.identity.Lookup(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	group, err := s.resolveGroup(ctx, ref)
	if err != nil {
		return nil, err
	}

	if user.GroupID != nil && *user.GroupID == group.ID {
		return group, nil
	}

	members, err := s.groupRepo.CountMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if group.MaxMembers > 0 && members >= int64(group.MaxMembers) {
		return nil, ErrGroupFull
	}

	if err := s.userRepo.SetGroup(ctx, user.ID, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// resolveGroup accepts either a numeric group ID or a group name.
func (s *GroupService) resolveGroup(ctx context.Context, ref string) (*model.Group, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrGroupNotFound
	}

	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		group, err := s.groupRepo.FindByID(ctx, uint(id))
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	group, err := s.groupRepo.FindByName(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}
