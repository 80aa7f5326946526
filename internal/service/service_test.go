package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/internal/repo/repotest"
)

type recordedEvent struct {
	Topic string
	Key   string
	Type  string
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	typ, _ := event.(map[string]any)["type"].(string)
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Type: typ})
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type fakeIndex struct {
	indexed map[string]models.Status
	deleted []string
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[string]models.Status{}}
}

func (f *fakeIndex) IndexRoadmap(_ context.Context, roadmap *models.Roadmap) error {
	f.indexed[roadmap.ID] = roadmap.Status
	return f.err
}

func (f *fakeIndex) DeleteRoadmap(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return f.err
}

type fixture struct {
	db       *gorm.DB
	events   *recorder
	index    *fakeIndex
	auth     *AuthService
	roadmaps *RoadmapService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := repotest.NewDB(t)
	users := &repo.UserRepo{DB: db}
	events := &recorder{}
	index := newFakeIndex()
	return &fixture{
		db:     db,
		events: events,
		index:  index,
		auth:   &AuthService{Users: users, Events: events},
		roadmaps: &RoadmapService{
			Roadmaps: &repo.RoadmapRepo{DB: db},
			Topics:   &repo.TopicRepo{DB: db},
			Users:    users,
			Events:   events,
			Index:    index,
		},
	}
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

var errBoom = errors.New("boom")
