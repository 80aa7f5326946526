package repo

import (
	"context"

	"github.com/Skotchmaster/roadmap/internal/models"
	"gorm.io/gorm"
)

type TopicRepo struct {
	DB *gorm.DB
}

// ListByRoadmap returns the roadmap's topics in display order.
func (r *TopicRepo) ListByRoadmap(ctx context.Context, roadmapID string) ([]models.Topic, error) {
	var items []models.Topic
	if err := r.DB.WithContext(ctx).Where("roadmap_id = ?", roadmapID).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TopicRepo) ListObjectives(ctx context.Context, topicIDs []string) ([]models.Objective, error) {
	items := []models.Objective{}
	if len(topicIDs) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).Where("topic_id IN ?", topicIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TopicRepo) ListResources(ctx context.Context, topicIDs []string) ([]models.Resource, error) {
	items := []models.Resource{}
	if len(topicIDs) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).Where("topic_id IN ?", topicIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
