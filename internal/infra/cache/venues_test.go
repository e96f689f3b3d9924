package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

type countingSource struct {
	venues []domain.Venue
	calls  int
	err    error
}

func (s *countingSource) List(ctx context.Context) ([]domain.Venue, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.venues, nil
}

func (s *countingSource) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	for _, v := range s.venues {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, errors.New("not found")
}

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func TestVenueCatalog_ReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &countingSource{venues: []domain.Venue{
		{ID: "main-hall", Name: "Main Hall", Capacity: 100, Facilities: []string{"Projector", "AC"}, Building: "A", Floor: 1},
	}}
	c := NewVenueCatalog(src, client, time.Minute, nopLogger{})
	ctx := context.Background()

	first, err := c.List(ctx)
	require.NoError(t, err)
	second, err := c.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls, "second call must be served from cache")
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, []string{"Projector", "AC"}, second[0].Facilities)
	assert.Equal(t, uint(100), second[0].Capacity)

	c.Invalidate(ctx)
	_, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	mr.FastForward(2 * time.Minute)
	_, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls, "expired entry goes back to source")
}

func TestVenueCatalog_WithoutRedis(t *testing.T) {
	src := &countingSource{venues: []domain.Venue{{ID: "lab", Name: "Lab"}}}
	c := NewVenueCatalog(src, nil, time.Minute, nopLogger{})

	_, err := c.List(context.Background())
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	c.Invalidate(context.Background())
}

func TestVenueCatalog_SourceError(t *testing.T) {
	src := &countingSource{err: errors.New("db down")}
	c := NewVenueCatalog(src, nil, time.Minute, nopLogger{})

	_, err := c.List(context.Background())
	assert.Error(t, err)
}
