package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/models"
)

// ChallengeRepository defines data operations for the challenge catalog.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	Update(ctx context.Context, challenge *models.Challenge) error
	GetByID(ctx context.Context, id uint) (models.Challenge, error)
	GetActiveByRound(ctx context.Context, round int) (models.Challenge, error)
	List(ctx context.Context) ([]models.Challenge, error)
}

type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository instantiates the repository.
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *challengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Save(challenge).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id uint) (models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).First(&challenge, id).Error; err != nil {
		return models.Challenge{}, err
	}
	return challenge, nil
}

func (r *challengeRepository) GetActiveByRound(ctx context.Context, round int) (models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).
		Where("round = ?", round).
		Where("active = ?", true).
		Order("created_at DESC").
		First(&challenge).Error; err != nil {
		return models.Challenge{}, err
	}
	return challenge, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := r.db.WithContext(ctx).Order("round ASC, created_at ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}
