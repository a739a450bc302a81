package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/yakidesk/internal/domain"
	userRepo "github.com/m04kA/yakidesk/internal/infra/storage/user"
	"github.com/m04kA/yakidesk/internal/integrations/identity"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

// Service сервис профилей пользователей
//
// Привилегия root выдается только на сервере: существующим root
// или через список bootstrap e-mail из конфигурации.
type Service struct {
	userRepo    UserRepository
	adminEmails map[string]struct{}
	logger      Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, adminEmails []string, logger Logger) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = normalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}

	return &Service{
		userRepo:    userRepo,
		adminEmails: admins,
		logger:      logger,
	}
}

// ResolveActor строит Actor для проверенной личности
// Root: claim провайдера, роль в профиле или bootstrap e-mail.
func (s *Service) ResolveActor(ctx context.Context, id *identity.Identity) (domain.Actor, error) {
	actor := domain.Actor{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		Root:   id.Root || s.isBootstrapAdmin(id.Email),
	}
	if actor.Root {
		return actor, nil
	}

	profile, err := s.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return actor, nil
		}
		s.logger.Error("ResolveActor: failed to get profile id=%s: %v", id.UserID, err)
		return domain.Anonymous, fmt.Errorf("%w: ResolveActor - repository error: %v", ErrStoreUnavailable, err)
	}

	actor.Root = profile.IsRoot()
	return actor, nil
}

// UpsertProfile создает профиль при первом входе (status=pending) или обновляет
// имя, e-mail и аватар существующего. Статус и роли при этом не меняются.
func (s *Service) UpsertProfile(ctx context.Context, actor domain.Actor, req *models.UpsertProfileRequest) (*models.ProfileResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	fields, err := s.validateProfile(actor, req)
	if err != nil {
		s.logger.Warn("UpsertProfile: validation failed for user=%s: %v", actor.UserID, err)
		return nil, err
	}

	s.logger.Info("UpsertProfile: user=%s, email=%s", actor.UserID, fields.Email)

	// Только e-mail из проверенного токена, не из тела запроса
	bootstrap := s.isBootstrapAdmin(actor.Email)

	profile := &domain.UserProfile{
		ID:        actor.UserID,
		Name:      fields.Name,
		Email:     fields.Email,
		AvatarURL: fields.AvatarURL,
		Status:    domain.UserStatusPending,
		Roles:     []domain.Role{},
	}
	if bootstrap {
		profile.Status = domain.UserStatusApproved
		profile.Roles = []domain.Role{domain.RoleRoot}
	}

	stored, err := s.userRepo.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error("UpsertProfile: repository error for user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: UpsertProfile - repository error: %v", ErrStoreUnavailable, err)
	}

	// Bootstrap-администратор с уже существующим профилем
	if bootstrap && (!stored.IsRoot() || !stored.IsApproved()) {
		if err := s.promote(ctx, stored); err != nil {
			return nil, err
		}
	}

	return models.FromDomainProfile(stored), nil
}

// GetProfile возвращает профиль; доступно самому пользователю и root
func (s *Service) GetProfile(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if actor.UserID != userID && !actor.CanOverride() {
		return nil, ErrAccessDenied
	}

	profile, err := s.getProfile(ctx, "GetProfile", userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProfile(profile), nil
}

// ListByStatus возвращает пользователей с заданным статусом (только root)
func (s *Service) ListByStatus(ctx context.Context, actor domain.Actor, rawStatus string) (*models.ProfileListResponse, error) {
	if err := s.requireRoot(actor, "ListByStatus"); err != nil {
		return nil, err
	}

	if rawStatus == "" {
		rawStatus = string(domain.UserStatusPending)
	}
	status, err := domain.ParseUserStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	profiles, err := s.userRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("ListByStatus: repository error for status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: ListByStatus - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListByStatus: %d users with status=%s", len(profiles), status)
	return models.FromDomainProfileList(profiles), nil
}

// UpdateStatus одобряет или отклоняет пользователя (только root)
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, userID string, req *models.UpdateStatusRequest) (*models.ProfileResponse, error) {
	if err := s.requireRoot(actor, "UpdateStatus"); err != nil {
		return nil, err
	}

	status, err := domain.ParseUserStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("UpdateStatus: user=%s -> %s by root=%s", userID, status, actor.UserID)

	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateStatus: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrStoreUnavailable, err)
	}

	profile, err := s.getProfile(ctx, "UpdateStatus", userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProfile(profile), nil
}

// GrantRoot выдает роль root (только root)
func (s *Service) GrantRoot(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error) {
	if err := s.requireRoot(actor, "GrantRoot"); err != nil {
		return nil, err
	}

	profile, err := s.getProfile(ctx, "GrantRoot", userID)
	if err != nil {
		return nil, err
	}
	if profile.IsRoot() {
		return models.FromDomainProfile(profile), nil
	}

	profile.Roles = profile.WithRole(domain.RoleRoot)
	if err := s.setRoles(ctx, "GrantRoot", profile); err != nil {
		return nil, err
	}

	s.logger.Info("GrantRoot: user=%s granted root by %s", userID, actor.UserID)
	return models.FromDomainProfile(profile), nil
}

// RevokeRoot отзывает роль root (только root)
// Снять root с себя можно, только если в системе остается другой root.
func (s *Service) RevokeRoot(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error) {
	if err := s.requireRoot(actor, "RevokeRoot"); err != nil {
		return nil, err
	}

	profile, err := s.getProfile(ctx, "RevokeRoot", userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsRoot() {
		return models.FromDomainProfile(profile), nil
	}

	if userID == actor.UserID {
		roots, err := s.userRepo.CountByRole(ctx, domain.RoleRoot)
		if err != nil {
			s.logger.Error("RevokeRoot: failed to count roots: %v", err)
			return nil, fmt.Errorf("%w: RevokeRoot - repository error: %v", ErrStoreUnavailable, err)
		}
		if roots <= 1 {
			s.logger.Warn("RevokeRoot: user=%s is the last root", actor.UserID)
			return nil, fmt.Errorf("%w: cannot revoke root from the last root user", ErrInvalidInput)
		}
	}

	profile.Roles = profile.WithoutRole(domain.RoleRoot)
	if err := s.setRoles(ctx, "RevokeRoot", profile); err != nil {
		return nil, err
	}

	s.logger.Info("RevokeRoot: user=%s lost root, revoked by %s", userID, actor.UserID)
	return models.FromDomainProfile(profile), nil
}

// Вспомогательные методы

func (s *Service) promote(ctx context.Context, profile *domain.UserProfile) error {
	if !profile.IsRoot() {
		profile.Roles = profile.WithRole(domain.RoleRoot)
		if err := s.setRoles(ctx, "UpsertProfile", profile); err != nil {
			return err
		}
	}
	if !profile.IsApproved() {
		if err := s.userRepo.UpdateStatus(ctx, profile.ID, domain.UserStatusApproved); err != nil {
			s.logger.Error("UpsertProfile: failed to approve bootstrap admin=%s: %v", profile.ID, err)
			return fmt.Errorf("%w: UpsertProfile - repository error: %v", ErrStoreUnavailable, err)
		}
		profile.Status = domain.UserStatusApproved
	}
	s.logger.Info("UpsertProfile: bootstrap admin=%s promoted to root", profile.ID)
	return nil
}

func (s *Service) setRoles(ctx context.Context, op string, profile *domain.UserProfile) error {
	if err := s.userRepo.SetRoles(ctx, profile.ID, profile.Roles); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("%s: failed to set roles for user=%s: %v", op, profile.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return nil
}

func (s *Service) getProfile(ctx context.Context, op, userID string) (*domain.UserProfile, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%s not found", op, userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user=%s: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return profile, nil
}

func (s *Service) requireRoot(actor domain.Actor, op string) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !actor.CanOverride() {
		s.logger.Warn("%s: user=%s is not root", op, actor.UserID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) validateProfile(actor domain.Actor, req *models.UpsertProfileRequest) (domain.ProfileFields, error) {
	fields := domain.ProfileFields{
		Name:      strings.TrimSpace(req.Name),
		Email:     normalizeEmail(req.Email),
		AvatarURL: req.AvatarURL,
	}

	if fields.Name == "" {
		fields.Name = actor.Name
	}
	tokenEmail := normalizeEmail(actor.Email)
	if fields.Email == "" {
		fields.Email = tokenEmail
	}
	if tokenEmail != "" && fields.Email != tokenEmail {
		return fields, fmt.Errorf("%w: email differs from the verified identity", ErrInvalidInput)
	}

	if fields.Name == "" {
		return fields, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(fields.Name) > domain.MaxNameLength {
		return fields, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if len(fields.Email) > domain.MaxEmailLength {
		return fields, fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}
	if fields.Email != "" {
		if _, err := mail.ParseAddress(fields.Email); err != nil {
			return fields, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}
	if fields.AvatarURL != nil && len(*fields.AvatarURL) > domain.MaxAvatarURLLength {
		return fields, fmt.Errorf("%w: avatarUrl is too long", ErrInvalidInput)
	}

	return fields, nil
}

func (s *Service) isBootstrapAdmin(email string) bool {
	_, ok := s.adminEmails[normalizeEmail(email)]
	return ok && email != ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
