package service

import (
	"context"

	"gvcargo/internal/config"
	"gvcargo/internal/domain"
	"gvcargo/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo         domain.Repository
	config       *config.Config
	logger       *zerolog.Logger
	adminsMap    map[int64]bool
	blacklistMap map[int64]bool
}

func NewUserService(repo domain.Repository, config *config.Config, logger *zerolog.Logger) *UserService {
	adminsMap := make(map[int64]bool)
	for _, id := range config.Admins {
		adminsMap[id] = true
	}

	blacklistMap := make(map[int64]bool)
	for _, id := range config.Blacklist {
		blacklistMap[id] = true
	}

	return &UserService{
		repo:         repo,
		config:       config,
		logger:       logger,
		adminsMap:    adminsMap,
		blacklistMap: blacklistMap,
	}
}

func (s *UserService) IsAdmin(userID int64) bool {
	return s.adminsMap[userID]
}

func (s *UserService) IsBlacklisted(userID int64) bool {
	return s.blacklistMap[userID]
}

func (s *UserService) GetOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	user, err := s.repo.GetOrCreateUser(ctx, telegramID, username)
	if err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", telegramID).Msg("failed to get or create user")
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetLanguage(ctx context.Context, telegramID int64, lang string) error {
	return s.repo.SetUserLanguage(ctx, telegramID, lang)
}

func (s *UserService) SetConsent(ctx context.Context, telegramID int64) error {
	return s.repo.SetUserConsent(ctx, telegramID)
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.CountUsers(ctx)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx)
}
