package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/roadmap/internal/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	DB *gorm.DB
}

// CreateUser inserts u unless a user with the same email exists.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepo) FindBySessionDigest(ctx context.Context, digest string) (*models.User, error) {
	return r.findOne(ctx, "session_digest = ?", digest)
}

func (r *UserRepo) FindByResetDigest(ctx context.Context, digest string) (*models.User, error) {
	return r.findOne(ctx, "reset_digest = ?", digest)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Save(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

// DeleteWithRoadmaps removes the user and everything the user owns.
func (r *UserRepo) DeleteWithRoadmaps(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roadmapIDs []string
		if err := tx.Model(&models.Roadmap{}).Where("user_id = ?", id).Pluck("id", &roadmapIDs).Error; err != nil {
			return err
		}
		if err := deleteRoadmapTrees(tx, roadmapIDs); err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
