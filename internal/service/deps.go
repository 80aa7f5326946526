package service

import (
	"context"
	"log/slog"

	"github.com/Skotchmaster/roadmap/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindBySessionDigest(ctx context.Context, digest string) (*models.User, error)
	FindByResetDigest(ctx context.Context, digest string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	DeleteWithRoadmaps(ctx context.Context, id string) error
}

type RoadmapStore interface {
	CreateAggregate(ctx context.Context, roadmap *models.Roadmap, topics []models.TopicTree) error
	List(ctx context.Context) ([]models.Roadmap, error)
	Get(ctx context.Context, id string) (*models.Roadmap, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	DeleteCascade(ctx context.Context, id string) error
}

type TopicStore interface {
	ListByRoadmap(ctx context.Context, roadmapID string) ([]models.Topic, error)
	ListObjectives(ctx context.Context, topicIDs []string) ([]models.Objective, error)
	ListResources(ctx context.Context, topicIDs []string) ([]models.Resource, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

type RoadmapIndex interface {
	IndexRoadmap(ctx context.Context, roadmap *models.Roadmap) error
	DeleteRoadmap(ctx context.Context, id string) error
}

// Generator produces a completion for prompt under the given system instruction.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

const (
	TopicUserEvents    = "user_events"
	TopicRoadmapEvents = "roadmap_events"
)

func publish(ctx context.Context, l *slog.Logger, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		l.Error("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
