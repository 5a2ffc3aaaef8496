package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// ErrTermsNotAccepted is returned when onboarding is attempted without
// accepting the terms of service.
var ErrTermsNotAccepted = errors.New("terms of service must be accepted")

// ProfileService manages user profiles and their dietary relations.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new profile service.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user's profile with allergen and dislike sets, or
// nil when the user has not completed onboarding.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileDTO, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	allergens, err := s.allergenIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	dislikes, err := s.dislikeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &types.ProfileDTO{
		UserID:          profile.UserID,
		DisplayName:     profile.DisplayName,
		DietID:          profile.DietID,
		Allergens:       allergens,
		Dislikes:        dislikes,
		TermsAcceptedAt: profile.TermsAcceptedAt,
	}, nil
}

// GetConstraints returns the dietary constraints for prompt building. A user
// without a profile yields (nil, nil).
func (s *ProfileService) GetConstraints(ctx context.Context, userID uuid.UUID) (*types.ProfileConstraints, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return &types.ProfileConstraints{
		DietID:    profile.DietID,
		Allergens: profile.Allergens,
		Dislikes:  profile.Dislikes,
	}, nil
}

// UpsertProfile creates or updates the profile and replaces the allergen and
// dislike sets wholesale. First-time onboarding requires accepting the terms.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*types.ProfileDTO, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.UserProfile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !req.AcceptTerms {
				return ErrTermsNotAccepted
			}
			now := time.Now()
			profile = models.UserProfile{
				ID:              uuid.New(),
				UserID:          userID,
				DisplayName:     req.DisplayName,
				DietID:          req.DietID,
				TermsAcceptedAt: &now,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to load profile: %w", err)
		default:
			if profile.TermsAcceptedAt == nil && !req.AcceptTerms {
				return ErrTermsNotAccepted
			}
			profile.DisplayName = req.DisplayName
			profile.DietID = req.DietID
			if profile.TermsAcceptedAt == nil {
				now := time.Now()
				profile.TermsAcceptedAt = &now
			}
			if err := tx.Save(&profile).Error; err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.ProfileAllergen{}).Error; err != nil {
			return fmt.Errorf("failed to clear allergens: %w", err)
		}
		for _, allergenID := range req.AllergenIDs {
			link := models.ProfileAllergen{UserID: userID, AllergenID: allergenID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to save allergen: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.ProfileDislike{}).Error; err != nil {
			return fmt.Errorf("failed to clear dislikes: %w", err)
		}
		for _, ingredientID := range req.DislikeIDs {
			link := models.ProfileDislike{UserID: userID, IngredientID: ingredientID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to save dislike: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *ProfileService) allergenIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.ProfileAllergen{}).
		Where("user_id = ?", userID).
		Order("allergen_id").
		Pluck("allergen_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load allergens: %w", err)
	}
	return ids, nil
}

func (s *ProfileService) dislikeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.ProfileDislike{}).
		Where("user_id = ?", userID).
		Order("ingredient_id").
		Pluck("ingredient_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load dislikes: %w", err)
	}
	return ids, nil
}
