package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const (
	envDBPassword    = "DB_PASSWORD"
	envRedisPassword = "REDIS_PASSWORD"

	defaultAdvanceBookingDays = 90
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Cache    CacheConfig    `toml:"cache"`
	Studio   StudioConfig   `toml:"studio"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
	KeyPrefix  string `toml:"key_prefix"`
}

// TTL время жизни записи кэша
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type StudioConfig struct {
	Name               string `toml:"name"`
	Timezone           string `toml:"timezone"`
	MinNoticeMinutes   int    `toml:"min_notice_minutes"`
	AdvanceBookingDays int    `toml:"advance_booking_days"`
}

// Location часовой пояс студии
func (c StudioConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CatalogConfig слоты и сценарии бронирования
type CatalogConfig struct {
	Slots []SlotConfig `toml:"slots"`
	Flows []FlowConfig `toml:"flows"`
}

type SlotConfig struct {
	Key      string `toml:"key"`
	Start    string `toml:"start"`
	End      string `toml:"end"`
	Label    string `toml:"label"`
	Weekdays []int  `toml:"weekdays"`
}

type FlowConfig struct {
	Name     string   `toml:"name"`
	Slots    []string `toml:"slots"`
	Weekdays []int    `toml:"weekdays"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию
// и секреты из окружения, затем валидирует
func Load(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrReadConfig, undecoded)
	}

	cfg.applyDefaults(meta)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(meta toml.MetaData) {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "studio_booking"
	}

	setDefault(&c.Cache.TTLSeconds, 30)

	if c.Studio.Timezone == "" {
		c.Studio.Timezone = "UTC"
	}
	// 0 в файле означает "без ограничения", поэтому подставляем только отсутствующий ключ
	if !meta.IsDefined("studio", "advance_booking_days") {
		c.Studio.AdvanceBookingDays = defaultAdvanceBookingDays
	}

	if len(c.Catalog.Slots) == 0 {
		c.Catalog.Slots = defaultSlots()
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		c.Cache.Password = v
	}
}

// Validate проверяет конфигурацию целиком, включая каталог
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}
	if _, err := c.Studio.Location(); err != nil {
		return fmt.Errorf("%w: studio.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Studio.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: studio.min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Studio.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: studio.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Catalog.Registry(); err != nil {
		return fmt.Errorf("%w: catalog: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Registry строит реестр каталогов из конфигурации
func (c CatalogConfig) Registry() (*catalog.Registry, error) {
	slots := make([]domain.TimeSlot, 0, len(c.Slots))
	for _, s := range c.Slots {
		start, err := types.NewTimeStringFromString(s.Start)
		if err != nil {
			return nil, fmt.Errorf("slot %q start: %v", s.Key, err)
		}
		end, err := types.NewTimeStringFromString(s.End)
		if err != nil {
			return nil, fmt.Errorf("slot %q end: %v", s.Key, err)
		}
		slots = append(slots, domain.TimeSlot{
			Key:              s.Key,
			Start:            start,
			End:              end,
			Label:            s.Label,
			EligibleWeekdays: s.Weekdays,
		})
	}

	flows := make([]catalog.Flow, 0, len(c.Flows))
	for _, f := range c.Flows {
		flows = append(flows, catalog.Flow{
			Name:     f.Name,
			SlotKeys: f.Slots,
			Weekdays: f.Weekdays,
		})
	}

	return catalog.NewRegistry(slots, flows)
}

// defaultSlots каталог студии по умолчанию
func defaultSlots() []SlotConfig {
	everyDay := []int{0, 1, 2, 3, 4, 5, 6}
	return []SlotConfig{
		{Key: "morning", Start: "10:00", End: "12:30", Label: "10:00 AM - 12:30 PM", Weekdays: everyDay},
		{Key: "afternoon", Start: "13:30", End: "15:00", Label: "1:30 PM - 3:00 PM", Weekdays: everyDay},
		{Key: "late-afternoon", Start: "16:00", End: "17:30", Label: "4:00 PM - 5:30 PM", Weekdays: everyDay},
		{Key: "evening", Start: "18:30", End: "20:00", Label: "6:30 PM - 8:00 PM", Weekdays: everyDay},
		{Key: "night", Start: "21:00", End: "22:30", Label: "9:00 PM - 10:30 PM", Weekdays: []int{4, 5}},
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
