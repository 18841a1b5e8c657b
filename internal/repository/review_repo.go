package repository

import (
	"context"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListForUser returns reviews written about the user.
func (r *ReviewRepository) ListForUser(ctx context.Context, revieweeID int64, limit, offset int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"review_count"`
}

func (r *ReviewRepository) RatingForUser(ctx context.Context, revieweeID int64) (*RatingSummary, error) {
	var out RatingSummary
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}
