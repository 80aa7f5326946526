package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/internal/repo/repotest"
)

func seedOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := newUser("owner@example.com")
	require.NoError(t, (&repo.UserRepo{DB: db}).CreateUser(context.Background(), u))
	return u
}

func TestRoadmapRepo_CreateAggregate_PersistsTree(t *testing.T) {
	db := repotest.NewDB(t)
	owner := seedOwner(t, db)
	roadmaps := &repo.RoadmapRepo{DB: db}
	topics := &repo.TopicRepo{DB: db}
	ctx := context.Background()

	rm := &models.Roadmap{UserID: owner.ID, Title: "Rust", Status: models.StatusPlanning}
	tree := []models.TopicTree{
		{Topic: models.Topic{Position: 1, Name: "A"}, Objectives: []models.Objective{{Name: "a1"}, {Name: "a2"}}},
		{Topic: models.Topic{Position: 2, Name: "B"}, Resources: []models.Resource{{Link: "https://b"}}},
	}
	require.NoError(t, roadmaps.CreateAggregate(ctx, rm, tree))
	require.NotEmpty(t, rm.ID)

	got, err := topics.ListByRoadmap(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "B", got[1].Name)

	objs, err := topics.ListObjectives(ctx, []string{got[0].ID, got[1].ID})
	require.NoError(t, err)
	assert.Len(t, objs, 2)
	for _, o := range objs {
		assert.Equal(t, got[0].ID, o.TopicID)
	}

	res, err := topics.ListResources(ctx, []string{got[0].ID, got[1].ID})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, got[1].ID, res[0].TopicID)
}

func TestRoadmapRepo_CreateAggregate_RollsBackOnFailure(t *testing.T) {
	db := repotest.NewDB(t)
	owner := seedOwner(t, db)
	roadmaps := &repo.RoadmapRepo{DB: db}
	ctx := context.Background()

	rm := &models.Roadmap{UserID: owner.ID, Title: "Broken", Status: models.StatusPlanning}
	duplicatePosition := []models.TopicTree{
		{Topic: models.Topic{Position: 1, Name: "A"}},
		{Topic: models.Topic{Position: 1, Name: "B"}},
	}
	require.Error(t, roadmaps.CreateAggregate(ctx, rm, duplicatePosition))

	for _, m := range []any{&models.Roadmap{}, &models.Topic{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
}

func TestRoadmapRepo_List_NewestFirst(t *testing.T) {
	db := repotest.NewDB(t)
	owner := seedOwner(t, db)
	roadmaps := &repo.RoadmapRepo{DB: db}
	ctx := context.Background()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []struct {
		title string
		at    time.Time
	}{
		{"t2", t1.Add(time.Hour)},
		{"t1", t1},
		{"t3", t1.Add(2 * time.Hour)},
	} {
		rm := &models.Roadmap{Base: models.Base{CreatedAt: c.at}, UserID: owner.ID, Title: c.title, Status: models.StatusPlanning}
		require.NoError(t, roadmaps.CreateAggregate(ctx, rm, nil))
	}

	items, err := roadmaps.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{items[0].Title, items[1].Title, items[2].Title})
}

func TestRoadmapRepo_UpdateStatus(t *testing.T) {
	db := repotest.NewDB(t)
	owner := seedOwner(t, db)
	roadmaps := &repo.RoadmapRepo{DB: db}
	ctx := context.Background()

	rm := &models.Roadmap{UserID: owner.ID, Title: "Go", Status: models.StatusPlanning}
	require.NoError(t, roadmaps.CreateAggregate(ctx, rm, nil))

	require.NoError(t, roadmaps.UpdateStatus(ctx, rm.ID, models.StatusCompleted))
	got, err := roadmaps.Get(ctx, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	assert.ErrorIs(t, roadmaps.UpdateStatus(ctx, "missing", models.StatusPlanning), gorm.ErrRecordNotFound)
}

func TestRoadmapRepo_DeleteCascade(t *testing.T) {
	db := repotest.NewDB(t)
	owner := seedOwner(t, db)
	roadmaps := &repo.RoadmapRepo{DB: db}
	ctx := context.Background()

	keep := &models.Roadmap{UserID: owner.ID, Title: "keep", Status: models.StatusPlanning}
	require.NoError(t, roadmaps.CreateAggregate(ctx, keep, []models.TopicTree{
		{Topic: models.Topic{Position: 1, Name: "K"}, Objectives: []models.Objective{{Name: "k"}}},
	}))
	drop := &models.Roadmap{UserID: owner.ID, Title: "drop", Status: models.StatusPlanning}
	require.NoError(t, roadmaps.CreateAggregate(ctx, drop, []models.TopicTree{
		{Topic: models.Topic{Position: 1, Name: "D"}, Objectives: []models.Objective{{Name: "d"}}, Resources: []models.Resource{{Link: "https://d"}}},
	}))

	require.NoError(t, roadmaps.DeleteCascade(ctx, drop.ID))

	_, err := roadmaps.Get(ctx, drop.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var topics, objectives, resources int64
	require.NoError(t, db.Model(&models.Topic{}).Count(&topics).Error)
	require.NoError(t, db.Model(&models.Objective{}).Count(&objectives).Error)
	require.NoError(t, db.Model(&models.Resource{}).Count(&resources).Error)
	assert.EqualValues(t, 1, topics)
	assert.EqualValues(t, 1, objectives)
	assert.EqualValues(t, 0, resources)

	assert.ErrorIs(t, roadmaps.DeleteCascade(ctx, drop.ID), gorm.ErrRecordNotFound)
}
