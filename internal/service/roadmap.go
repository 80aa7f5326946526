package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/transport"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type RoadmapService struct {
	Roadmaps RoadmapStore
	Topics   TopicStore
	Users    UserLookup
	Events   EventPublisher
	Index    RoadmapIndex
}

type RoadmapDetail struct {
	Roadmap models.Roadmap
	Topics  []models.TopicTree
}

func (s *RoadmapService) CreateRoadmap(ctx context.Context, userID string, payload *transport.RoadmapPayload) (string, error) {
	l := logging.FromContext(ctx).With("svc", "roadmap.create", "user_id", userID)

	if userID == "" {
		return "", fmt.Errorf("user_id is required: %w", ErrMissingField)
	}
	if payload == nil {
		return "", fmt.Errorf("Roadmap is required: %w", ErrMissingField)
	}

	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user id: %s: %w", userID, ErrUserNotFound)
		}
		return "", err
	}

	roadmap, topics, err := buildAggregate(userID, payload)
	if err != nil {
		l.Warn("create_roadmap_rejected", "error", err)
		return "", err
	}

	if err := s.Roadmaps.CreateAggregate(ctx, roadmap, topics); err != nil {
		l.Error("create_roadmap_failed", "error", err)
		return "", err
	}

	l.Info("roadmap_created", "roadmap_id", roadmap.ID, "topics", len(topics))
	publish(ctx, l, s.Events, TopicRoadmapEvents, roadmap.ID, map[string]any{
		"type":       "roadmap_created",
		"roadmap_id": roadmap.ID,
		"user_id":    userID,
		"title":      roadmap.Title,
	})
	s.index(ctx, roadmap)
	return roadmap.ID, nil
}

func buildAggregate(userID string, p *transport.RoadmapPayload) (*models.Roadmap, []models.TopicTree, error) {
	switch {
	case p.Title == nil:
		return nil, nil, fmt.Errorf("Title: %w", ErrMissingField)
	case p.Introduction == nil:
		return nil, nil, fmt.Errorf("Introduction: %w", ErrMissingField)
	case p.AdditionalInfo == nil:
		return nil, nil, fmt.Errorf("AdditionalInfo: %w", ErrMissingField)
	case len(p.Topics) == 0:
		return nil, nil, fmt.Errorf("Topics: %w", ErrMissingField)
	}

	roadmap := &models.Roadmap{
		UserID:         userID,
		Title:          *p.Title,
		Introduction:   *p.Introduction,
		AdditionalInfo: p.AdditionalInfo.String(),
		Status:         models.StatusPlanning,
	}

	topics := make([]models.TopicTree, 0, len(p.Topics))
	for i, tp := range p.Topics {
		if tp.TopicName == "" {
			return nil, nil, fmt.Errorf("Topics[%d].TopicName: %w", i, ErrMissingField)
		}
		tree := models.TopicTree{
			Topic: models.Topic{
				Position:    i + 1,
				Name:        tp.TopicName,
				Description: tp.Descriptions.String(),
				Milestones:  tp.Milestones.String(),
			},
			Objectives: make([]models.Objective, 0, len(tp.LearningObjectives)),
			Resources:  make([]models.Resource, 0, len(tp.Resources)),
		}
		for _, o := range tp.LearningObjectives {
			tree.Objectives = append(tree.Objectives, models.Objective{Name: o.String()})
		}
		for _, r := range tp.Resources {
			tree.Resources = append(tree.Resources, models.Resource{Link: r.String()})
		}
		topics = append(topics, tree)
	}
	return roadmap, topics, nil
}

func (s *RoadmapService) ListRoadmaps(ctx context.Context) ([]models.Roadmap, error) {
	items, err := s.Roadmaps.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *RoadmapService) GetRoadmapDetail(ctx context.Context, id string) (*RoadmapDetail, error) {
	roadmap, err := s.getRoadmap(ctx, id)
	if err != nil {
		return nil, err
	}

	topics, err := s.Topics.ListByRoadmap(ctx, roadmap.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Position < topics[j].Position })

	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	objectives, err := s.Topics.ListObjectives(ctx, ids)
	if err != nil {
		return nil, err
	}
	resources, err := s.Topics.ListResources(ctx, ids)
	if err != nil {
		return nil, err
	}

	byTopic := make(map[string]*models.TopicTree, len(topics))
	detail := &RoadmapDetail{Roadmap: *roadmap, Topics: make([]models.TopicTree, len(topics))}
	for i, t := range topics {
		detail.Topics[i] = models.TopicTree{Topic: t, Objectives: []models.Objective{}, Resources: []models.Resource{}}
		byTopic[t.ID] = &detail.Topics[i]
	}
	for _, o := range objectives {
		if tree, ok := byTopic[o.TopicID]; ok {
			tree.Objectives = append(tree.Objectives, o)
		}
	}
	for _, r := range resources {
		if tree, ok := byTopic[r.TopicID]; ok {
			tree.Resources = append(tree.Resources, r)
		}
	}
	return detail, nil
}

func (s *RoadmapService) UpdateStatus(ctx context.Context, id, newStatus string) (models.Status, error) {
	l := logging.FromContext(ctx).With("svc", "roadmap.update_status", "roadmap_id", id)

	roadmap, err := s.getRoadmap(ctx, id)
	if err != nil {
		return "", err
	}

	status, err := models.ParseStatus(newStatus)
	if err != nil {
		return "", fmt.Errorf("%q: %w", newStatus, ErrInvalidStatus)
	}

	if err := s.Roadmaps.UpdateStatus(ctx, roadmap.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("roadmap %s: %w", id, ErrNotFound)
		}
		l.Error("update_status_failed", "error", err)
		return "", err
	}
	roadmap.Status = status

	publish(ctx, l, s.Events, TopicRoadmapEvents, roadmap.ID, map[string]any{
		"type":       "roadmap_status_updated",
		"roadmap_id": roadmap.ID,
		"status":     string(status),
	})
	s.index(ctx, roadmap)
	return status, nil
}

func (s *RoadmapService) DeleteRoadmap(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "roadmap.delete", "roadmap_id", id)

	if err := s.Roadmaps.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("roadmap %s: %w", id, ErrNotFound)
		}
		l.Error("delete_roadmap_failed", "error", err)
		return err
	}

	publish(ctx, l, s.Events, TopicRoadmapEvents, id, map[string]any{
		"type":       "roadmap_deleted",
		"roadmap_id": id,
	})
	if s.Index != nil {
		if err := s.Index.DeleteRoadmap(ctx, id); err != nil {
			l.Error("search_unindex_failed", "error", err)
		}
	}
	return nil
}

func (s *RoadmapService) getRoadmap(ctx context.Context, id string) (*models.Roadmap, error) {
	roadmap, err := s.Roadmaps.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("roadmap %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return roadmap, nil
}

func (s *RoadmapService) index(ctx context.Context, roadmap *models.Roadmap) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexRoadmap(ctx, roadmap); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "roadmap_id", roadmap.ID, "error", err)
	}
}
