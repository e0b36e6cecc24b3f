package service_test

import (
	"context"
	"net/http"
	"shareit/config"
	"shareit/infras/otel/mocks"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/repository"
	"shareit/internal/domains/user/service"
	"shareit/shared/cache"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/testdb"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo  repository.User
	redis *miniredis.Miniredis
	svc   service.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	repo := repository.New(testdb.Open(t, testdb.Users), mocks.NewOtel())

	return &fixture{
		repo:  repo,
		redis: s,
		svc:   service.New(repo, cfg, cache.NewRedisCache(client, mocks.NewOtel()), mocks.NewOtel()),
	}
}

func strPtr(s string) *string {
	return &s
}

func TestUser_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, dto.CreateUserRequest{Name: " Alice ", Email: "Alice@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)

	_, err = f.svc.Create(ctx, dto.CreateUserRequest{Name: "Impostor", Email: "alice@example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestUser_GetCachesResponse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, dto.CreateUserRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	require.Eventually(t, func() bool { return f.redis.Exists("user:get:1") }, time.Second, 10*time.Millisecond)

	_, err = f.svc.Get(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUser_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice, err := f.svc.Create(ctx, dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, dto.CreateUserRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.redis.Exists("user:get:1") }, time.Second, 10*time.Millisecond)

	updated, err := f.svc.Update(ctx, dto.UpdateUserRequest{Name: strPtr("Alicia")}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	require.Eventually(t, func() bool { return !f.redis.Exists("user:get:1") }, time.Second, 10*time.Millisecond)

	got, err := f.svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)

	sameEmail, err := f.svc.Update(ctx, dto.UpdateUserRequest{Email: strPtr("ALICE@example.com")}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sameEmail.Email)

	_, err = f.svc.Update(ctx, dto.UpdateUserRequest{Email: strPtr("bob@example.com")}, alice.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.Update(ctx, dto.UpdateUserRequest{Name: strPtr("Nobody")}, 42)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUser_GetAllAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := f.svc.Create(ctx, dto.CreateUserRequest{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	page, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 2, SortBy: "name", SortDir: gDto.SortDirAsc})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalData)
	assert.Equal(t, 2, page.TotalPage)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "Alice", page.Users[0].Name)
	assert.Equal(t, "Bob", page.Users[1].Name)

	require.NoError(t, f.svc.Delete(ctx, 1))

	err = f.svc.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	directory := service.NewDirectory(f.repo, mocks.NewOtel())

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := f.svc.Create(ctx, dto.CreateUserRequest{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	exists, err := directory.Exists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = directory.Exists(ctx, 9)
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := directory.NamesFor(ctx, []int64{1, 3, 9})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Alice", 3: "Carol"}, names)

	names, err = directory.NamesFor(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}
