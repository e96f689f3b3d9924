package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// VenueConfig площадка в seed-файле
type VenueConfig struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Capacity   int      `yaml:"capacity"`
	Facilities []string `yaml:"facilities"`
	Building   string   `yaml:"building"`
	Floor      int      `yaml:"floor"`
}

// File корень venues.yaml
type File struct {
	Venues []VenueConfig `yaml:"venues"`
}

// VenueWriter хранилище, в которое загружается каталог
type VenueWriter interface {
	Upsert(ctx context.Context, v domain.Venue) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Load читает и валидирует seed-файл каталога
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read venue catalog: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse venue catalog: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validate venue catalog: %w", err)
	}

	return &f, nil
}

// Validate проверяет каталог на ошибки
func (f *File) Validate() error {
	if len(f.Venues) == 0 {
		return fmt.Errorf("no venues defined")
	}

	ids := make(map[string]bool)
	for i, v := range f.Venues {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("venue[%d]: id is required", i)
		}
		if ids[v.ID] {
			return fmt.Errorf("venue[%d]: duplicate id '%s'", i, v.ID)
		}
		ids[v.ID] = true

		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("venue[%d]: name is required", i)
		}
		if v.Capacity <= 0 {
			return fmt.Errorf("venue[%d]: capacity must be positive, got %d", i, v.Capacity)
		}
		for j, fac := range v.Facilities {
			if strings.TrimSpace(fac) == "" {
				return fmt.Errorf("venue[%d].facilities[%d]: empty facility", i, j)
			}
		}
	}

	return nil
}

// DomainVenues переводит seed-файл в доменные площадки
func (f *File) DomainVenues() []domain.Venue {
	venues := make([]domain.Venue, 0, len(f.Venues))
	for _, v := range f.Venues {
		facilities := make([]string, 0, len(v.Facilities))
		for _, fac := range v.Facilities {
			facilities = append(facilities, strings.TrimSpace(fac))
		}
		venues = append(venues, domain.Venue{
			ID:         strings.TrimSpace(v.ID),
			Name:       strings.TrimSpace(v.Name),
			Capacity:   uint(v.Capacity),
			Facilities: facilities,
			Building:   v.Building,
			Floor:      v.Floor,
		})
	}
	return venues
}

// Seed загружает каталог в хранилище; возвращает количество площадок
func Seed(ctx context.Context, path string, w VenueWriter, logger Logger) (int, error) {
	f, err := Load(path)
	if err != nil {
		return 0, err
	}

	venues := f.DomainVenues()
	for _, v := range venues {
		if err := w.Upsert(ctx, v); err != nil {
			return 0, fmt.Errorf("upsert venue %s: %w", v.ID, err)
		}
	}

	logger.Info("Catalog.Seed: loaded %d venues from %s", len(venues), path)
	return len(venues), nil
}
