package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

const catalogKey = "eventsync:venues:catalog"

// VenueSource первичный источник каталога площадок
type VenueSource interface {
	List(ctx context.Context) ([]domain.Venue, error)
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// VenueCatalog read-through кэш каталога площадок в Redis
// Без клиента Redis или с нулевым TTL работает как прямой проход к источнику
type VenueCatalog struct {
	source VenueSource
	redis  redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewVenueCatalog создает кэш каталога; redisClient может быть nil
func NewVenueCatalog(source VenueSource, redisClient redis.Cmdable, ttl time.Duration, logger Logger) *VenueCatalog {
	return &VenueCatalog{
		source: source,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedVenue JSON-представление площадки в кэше
type cachedVenue struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Capacity   uint     `json:"capacity"`
	Facilities []string `json:"facilities"`
	Building   string   `json:"building"`
	Floor      int      `json:"floor"`
}

// List возвращает каталог, читая из кэша при наличии
func (c *VenueCatalog) List(ctx context.Context) ([]domain.Venue, error) {
	var cached []cachedVenue
	if c.readCache(ctx, catalogKey, &cached) {
		venues := make([]domain.Venue, 0, len(cached))
		for _, v := range cached {
			venues = append(venues, v.toDomain())
		}
		return venues, nil
	}

	venues, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}

	toCache := make([]cachedVenue, 0, len(venues))
	for _, v := range venues {
		toCache = append(toCache, fromDomain(v))
	}
	c.writeCache(ctx, catalogKey, toCache)

	return venues, nil
}

// GetByID читает площадку из источника
// Запись нужна в транзакции submit, поэтому кэш не используется
func (c *VenueCatalog) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	return c.source.GetByID(ctx, id)
}

// Invalidate сбрасывает кэш каталога (после загрузки seed-файла)
func (c *VenueCatalog) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, catalogKey).Err(); err != nil {
		c.logger.Warn("VenueCatalog.Invalidate: failed to delete cache key: %v", err)
	}
}

func (c *VenueCatalog) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.ttl <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("VenueCatalog: cache read failed, falling back to source: %v", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *VenueCatalog) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("VenueCatalog: cache write failed: %v", err)
	}
}

func fromDomain(v domain.Venue) cachedVenue {
	return cachedVenue{
		ID:         v.ID,
		Name:       v.Name,
		Capacity:   v.Capacity,
		Facilities: v.Facilities,
		Building:   v.Building,
		Floor:      v.Floor,
	}
}

func (v cachedVenue) toDomain() domain.Venue {
	facilities := v.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return domain.Venue{
		ID:         v.ID,
		Name:       v.Name,
		Capacity:   v.Capacity,
		Facilities: facilities,
		Building:   v.Building,
		Floor:      v.Floor,
	}
}
