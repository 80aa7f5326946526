package repo

import (
	"context"

	"github.com/Skotchmaster/roadmap/internal/models"
	"gorm.io/gorm"
)

type RoadmapRepo struct {
	DB *gorm.DB
}

// CreateAggregate persists the roadmap and, in input order, each topic followed by
// its objectives and resources. Everything commits or nothing does.
func (r *RoadmapRepo) CreateAggregate(ctx context.Context, roadmap *models.Roadmap, topics []models.TopicTree) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(roadmap).Error; err != nil {
			return err
		}

		for i := range topics {
			t := &topics[i]
			t.Topic.RoadmapID = roadmap.ID
			if err := tx.Create(&t.Topic).Error; err != nil {
				return err
			}

			for j := range t.Objectives {
				t.Objectives[j].TopicID = t.Topic.ID
				if err := tx.Create(&t.Objectives[j]).Error; err != nil {
					return err
				}
			}
			for j := range t.Resources {
				t.Resources[j].TopicID = t.Topic.ID
				if err := tx.Create(&t.Resources[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// List returns every roadmap, most recent first.
func (r *RoadmapRepo) List(ctx context.Context) ([]models.Roadmap, error) {
	var items []models.Roadmap
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RoadmapRepo) Get(ctx context.Context, id string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&roadmap).Error; err != nil {
		return nil, err
	}
	return &roadmap, nil
}

func (r *RoadmapRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res := r.DB.WithContext(ctx).Model(&models.Roadmap{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the roadmap with all of its topics, objectives and resources.
func (r *RoadmapRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Roadmap{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteRoadmapTrees(tx, []string{id})
	})
}
