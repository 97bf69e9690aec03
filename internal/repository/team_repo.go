package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/models"
)

// TeamRepository defines data operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uint) (models.Team, error)
	GetByAccessCode(ctx context.Context, code string) (models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	AddScore(ctx context.Context, id uint, delta float64) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository instantiates the repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (r *teamRepository) GetByAccessCode(ctx context.Context, code string) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("access_code = ?", code).First(&team).Error; err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("total_score DESC, name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// AddScore increments the cumulative total in a single expression update so
// concurrent passing submissions never lose increments.
func (r *teamRepository) AddScore(ctx context.Context, id uint, delta float64) error {
	result := r.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", id).
		UpdateColumn("total_score", gorm.Expr("total_score + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
