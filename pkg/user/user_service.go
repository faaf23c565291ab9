package user

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/logging"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
	"context"
	"crypto/subtle"
	"errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.SignupRequest) (domain.SignupResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error)
		PromoteToAdmin(ctx context.Context, actor domain.Actor, key string) (domain.Session, error)
		Profile(ctx context.Context, actor domain.Actor) (domain.Profile, error)
		ChangeUsername(ctx context.Context, actor domain.Actor, req domain.ChangeUsernameRequest) error
		ChangeEmail(ctx context.Context, actor domain.Actor, req domain.ChangeEmailRequest) error
		ChangePassword(ctx context.Context, actor domain.Actor, req domain.ChangePasswordRequest) error
		Restrictions(ctx context.Context, actor domain.Actor) ([]string, error)
		UpdateRestrictions(ctx context.Context, actor domain.Actor, req domain.DietRestrictionsRequest) ([]string, error)
		DeleteAccount(ctx context.Context, actor domain.Actor) error
	}

	UserServiceConfig struct {
		AdminSecurityKey string
		Mail             mailing.MailConfig
		// PasswordCost defaults to bcrypt.DefaultCost.
		PasswordCost int
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		storage        storage.ImageStorage
		mailer         mailing.Mailer
		config         UserServiceConfig
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	imageStorage storage.ImageStorage,
	mailer mailing.Mailer,
	config UserServiceConfig,
) UserService {
	if config.PasswordCost == 0 {
		config.PasswordCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		storage:        imageStorage,
		mailer:         mailer,
		config:         config,
	}
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *userService) Register(ctx context.Context, req domain.SignupRequest) (domain.SignupResponse, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return domain.SignupResponse{}, err
	}

	account := &entities.Account{
		ID:       uuid.New(),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: hash,
	}
	if err := s.userRepository.CreateRegularUser(ctx, account); err != nil {
		return domain.SignupResponse{}, err
	}

	subject, body := mailing.WelcomeMail(s.config.Mail, account.Username)
	if err := s.mailer.SendMail(account.Email, subject, body); err != nil {
		logging.Warn().Err(err).Str("account_id", account.ID.String()).Msg("failed to send welcome mail")
	}

	logging.Info().Str("account_id", account.ID.String()).Msg("account registered")
	return domain.SignupResponse{AccountID: account.ID.String()}, nil
}

func (s *userService) session(accountID uuid.UUID, isAdmin bool) (domain.Session, error) {
	role := domain.RoleUser
	if isAdmin {
		role = domain.RoleAdmin
	}
	token, err := s.jwtService.GenerateTokenUser(accountID.String(), role)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{AccountID: accountID.String(), IsAdmin: isAdmin, Token: token}, nil
}

// Login resolves the admin flag once; the issued session keeps it until it
// expires.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	account, err := s.userRepository.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	isAdmin, err := s.userRepository.IsAdmin(ctx, account.ID)
	if err != nil {
		return domain.Session{}, err
	}
	return s.session(account.ID, isAdmin)
}

func (s *userService) PromoteToAdmin(ctx context.Context, actor domain.Actor, key string) (domain.Session, error) {
	expected := s.config.AdminSecurityKey
	if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		return domain.Session{}, domain.ErrInvalidSecurityKey
	}

	account, err := s.userRepository.GetAccountByID(ctx, actor.AccountID)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.userRepository.PromoteToAdmin(ctx, account.ID, account.Username); err != nil {
		return domain.Session{}, err
	}

	logging.Info().Str("account_id", account.ID.String()).Msg("account promoted to admin")
	return s.session(account.ID, true)
}

func (s *userService) Profile(ctx context.Context, actor domain.Actor) (domain.Profile, error) {
	account, err := s.userRepository.GetAccountByID(ctx, actor.AccountID)
	if err != nil {
		return domain.Profile{}, err
	}
	isAdmin, err := s.userRepository.IsAdmin(ctx, account.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	restrictions, err := s.userRepository.GetRestrictions(ctx, account.ID)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		ID:           account.ID.String(),
		Username:     account.Username,
		Email:        account.Email,
		IsAdmin:      isAdmin,
		Restrictions: restrictions,
		AllTags:      domain.AllTags,
		CreatedAt:    account.CreatedAt,
	}, nil
}

func (s *userService) ChangeUsername(ctx context.Context, actor domain.Actor, req domain.ChangeUsernameRequest) error {
	return s.userRepository.UpdateUsername(ctx, actor.AccountID, strings.TrimSpace(req.NewUsername))
}

func (s *userService) ChangeEmail(ctx context.Context, actor domain.Actor, req domain.ChangeEmailRequest) error {
	return s.userRepository.UpdateEmail(ctx, actor.AccountID, strings.TrimSpace(req.NewEmail))
}

func (s *userService) ChangePassword(ctx context.Context, actor domain.Actor, req domain.ChangePasswordRequest) error {
	account, err := s.userRepository.GetAccountByID(ctx, actor.AccountID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, account.ID, hash)
}

func (s *userService) Restrictions(ctx context.Context, actor domain.Actor) ([]string, error) {
	return s.userRepository.GetRestrictions(ctx, actor.AccountID)
}

// UpdateRestrictions replaces the restriction set. Choosing None alongside
// real tags keeps only None.
func (s *userService) UpdateRestrictions(ctx context.Context, actor domain.Actor, req domain.DietRestrictionsRequest) ([]string, error) {
	tags := make([]string, 0, len(req.Restrictions))
	seen := map[string]bool{}
	for _, tag := range req.Restrictions {
		if !domain.IsDietaryRestriction(tag) {
			return nil, domain.ErrInvalidRestriction
		}
		if tag == domain.RestrictionNone {
			tags = []string{domain.RestrictionNone}
			break
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if err := s.userRepository.ReplaceRestrictions(ctx, actor.AccountID, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *userService) DeleteAccount(ctx context.Context, actor domain.Actor) error {
	images, err := s.userRepository.DeleteAccount(ctx, actor.AccountID)
	if err != nil {
		return err
	}

	for _, link := range images {
		if key := s.storage.GetObjectKeyFromLink(link); key != "" {
			if err := s.storage.DeleteFile(key); err != nil {
				logging.Warn().Err(err).Str("key", key).Msg("failed to delete recipe image")
			}
		}
	}

	logging.Info().Str("account_id", actor.AccountID.String()).Msg("account deleted")
	return nil
}
