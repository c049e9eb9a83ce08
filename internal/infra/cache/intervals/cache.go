package intervals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const (
	DefaultTTL       = 30 * time.Second
	DefaultKeyPrefix = "studio:intervals:"
)

type cachedInterval struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

// Cache кэширует занятые интервалы за дату в Redis поверх Source
// Недоступность Redis не ломает чтение: запрос уходит в Source
type Cache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	prefix string
	logger Logger
}

// NewCache создает кэш. ttl <= 0 заменяется на DefaultTTL, пустой prefix на DefaultKeyPrefix
func NewCache(client *redis.Client, source Source, ttl time.Duration, prefix string, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

// IntervalsForDate отдает интервалы из кэша или загружает их из Source
// Запись делается под поколением даты, прочитанным до обращения к Source:
// если между чтением и записью прошёл Invalidate, устаревший снимок ляжет
// под старое поколение и читаться уже не будет
func (c *Cache) IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error) {
	gen, err := c.generation(ctx, date)
	if err != nil {
		c.logger.Warn("intervals cache: get generation for %s: %v", date.Format(domain.DateFormat), err)
		return c.source.IntervalsForDate(ctx, date)
	}

	key := c.dataKey(date, gen)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		intervals, decodeErr := decode(data, date)
		if decodeErr == nil {
			c.logger.Debug("intervals cache: hit key=%s", key)
			return intervals, nil
		}
		c.logger.Warn("intervals cache: corrupted entry key=%s: %v", key, decodeErr)
	case errors.Is(err, redis.Nil):
		c.logger.Debug("intervals cache: miss key=%s", key)
	default:
		c.logger.Warn("intervals cache: get key=%s: %v", key, err)
	}

	intervals, err := c.source.IntervalsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if encoded, err := encode(intervals); err != nil {
		c.logger.Warn("intervals cache: encode key=%s: %v", key, err)
	} else if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("intervals cache: set key=%s: %v", key, err)
	}

	return intervals, nil
}

// Invalidate переводит дату на новое поколение, все прежние записи перестают читаться
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	genKey := c.genKey(date)
	// Счётчик поколений хранится без TTL
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidate, err)
	}
	return nil
}

// generation текущее поколение даты, 0 если Invalidate ещё не вызывался
func (c *Cache) generation(ctx context.Context, date time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Cache) genKey(date time.Time) string {
	return c.prefix + "gen:" + date.Format(domain.DateFormat)
}

func (c *Cache) dataKey(date time.Time, gen int64) string {
	return c.prefix + date.Format(domain.DateFormat) + ":" + strconv.FormatInt(gen, 10)
}

func encode(intervals []domain.BookedInterval) ([]byte, error) {
	items := make([]cachedInterval, len(intervals))
	for i, iv := range intervals {
		items[i] = cachedInterval{
			Start:  iv.Start.String(),
			End:    iv.End.String(),
			Status: string(iv.Status),
		}
	}
	return json.Marshal(items)
}

func decode(data []byte, date time.Time) ([]domain.BookedInterval, error) {
	var items []cachedInterval
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	intervals := make([]domain.BookedInterval, len(items))
	for i, item := range items {
		start, err := types.NewTimeStringFromString(item.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(item.End)
		if err != nil {
			return nil, err
		}
		intervals[i] = domain.BookedInterval{
			Date:   date,
			Start:  start,
			End:    end,
			Status: domain.IntervalStatus(item.Status),
		}
	}
	return intervals, nil
}

// NoopInvalidator используется, когда кэш выключен
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(context.Context, time.Time) error { return nil }
