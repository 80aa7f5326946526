package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/internal/repo/repotest"
)

func newUser(email string) *models.User {
	return &models.User{FirstName: "Ada", LastName: "Lovelace", Email: email, HashedPassword: "x"}
}

func TestUserRepo_CreateUser_AssignsIDAndRejectsDuplicate(t *testing.T) {
	db := repotest.NewDB(t)
	r := &repo.UserRepo{DB: db}
	ctx := context.Background()

	first := newUser("ada@example.com")
	require.NoError(t, r.CreateUser(ctx, first))
	require.NotEmpty(t, first.ID)

	second := newUser("ada@example.com")
	second.FirstName = "Other"
	err := r.CreateUser(ctx, second)
	assert.ErrorIs(t, err, repo.ErrEmailTaken)

	got, err := r.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Ada", got.FirstName)
}

func TestUserRepo_FindByDigests(t *testing.T) {
	db := repotest.NewDB(t)
	r := &repo.UserRepo{DB: db}
	ctx := context.Background()

	u := newUser("grace@example.com")
	require.NoError(t, r.CreateUser(ctx, u))

	session, reset := "sess-digest", "reset-digest"
	u.SessionDigest = &session
	u.ResetDigest = &reset
	require.NoError(t, r.Save(ctx, u))

	got, err := r.FindBySessionDigest(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.FindByResetDigest(ctx, reset)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.FindBySessionDigest(ctx, "unknown")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	u.SessionDigest = nil
	require.NoError(t, r.Save(ctx, u))
	_, err = r.FindBySessionDigest(ctx, session)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepo_DeleteWithRoadmaps(t *testing.T) {
	db := repotest.NewDB(t)
	users := &repo.UserRepo{DB: db}
	roadmaps := &repo.RoadmapRepo{DB: db}
	ctx := context.Background()

	u := newUser("linus@example.com")
	require.NoError(t, users.CreateUser(ctx, u))

	rm := &models.Roadmap{UserID: u.ID, Title: "Go", Status: models.StatusPlanning}
	require.NoError(t, roadmaps.CreateAggregate(ctx, rm, []models.TopicTree{{
		Topic:      models.Topic{Position: 1, Name: "Syntax"},
		Objectives: []models.Objective{{Name: "loops"}},
		Resources:  []models.Resource{{Link: "https://go.dev/tour"}},
	}}))

	require.NoError(t, users.DeleteWithRoadmaps(ctx, u.ID))

	_, err := users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	for _, m := range []any{&models.Roadmap{}, &models.Topic{}, &models.Objective{}, &models.Resource{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}

	assert.ErrorIs(t, users.DeleteWithRoadmaps(ctx, u.ID), gorm.ErrRecordNotFound)
}
