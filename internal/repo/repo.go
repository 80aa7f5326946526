package repo

import (
	"errors"

	"github.com/Skotchmaster/roadmap/internal/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Roadmap{},
		&models.Topic{},
		&models.Objective{},
		&models.Resource{},
	)
}

// deleteRoadmapTrees removes the given roadmaps and every topic, objective and
// resource below them. It must run inside a transaction.
func deleteRoadmapTrees(tx *gorm.DB, roadmapIDs []string) error {
	if len(roadmapIDs) == 0 {
		return nil
	}

	var topicIDs []string
	if err := tx.Model(&models.Topic{}).Where("roadmap_id IN ?", roadmapIDs).Pluck("id", &topicIDs).Error; err != nil {
		return err
	}

	if len(topicIDs) > 0 {
		if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.Objective{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.Resource{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", roadmapIDs).Delete(&models.Roadmap{}).Error
}
