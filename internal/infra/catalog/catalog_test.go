package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

const sample = `
venues:
  - id: main-hall
    name: Main Hall
    capacity: 100
    facilities: [Projector, AC]
    building: A
    floor: 1
  - id: lab-204
    name: " Computer Lab 204 "
    capacity: 30
    facilities: ["Computers ", WiFi]
    building: B
    floor: 2
`

type memWriter struct {
	venues []domain.Venue
	err    error
}

func (w *memWriter) Upsert(ctx context.Context, v domain.Venue) error {
	if w.err != nil {
		return w.err
	}
	w.venues = append(w.venues, v)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{}) {}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venues.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeed(t *testing.T) {
	w := &memWriter{}
	n, err := Seed(context.Background(), writeFile(t, sample), w, nopLogger{})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	require.Len(t, w.venues, 2)
	assert.Equal(t, "Computer Lab 204", w.venues[1].Name)
	assert.Equal(t, []string{"Computers", "WiFi"}, w.venues[1].Facilities)
	assert.Equal(t, uint(100), w.venues[0].Capacity)
}

func TestSeed_WriterError(t *testing.T) {
	w := &memWriter{err: errors.New("db down")}
	_, err := Seed(context.Background(), writeFile(t, sample), w, nopLogger{})
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := map[string]string{
		"empty":        "venues: []",
		"missing id":   "venues:\n  - name: X\n    capacity: 1\n",
		"duplicate id": "venues:\n  - {id: a, name: A, capacity: 1}\n  - {id: a, name: B, capacity: 1}\n",
		"zero cap":     "venues:\n  - {id: a, name: A, capacity: 0}\n",
		"blank fac":    "venues:\n  - {id: a, name: A, capacity: 1, facilities: [\" \"]}\n",
		"bad yaml":     "venues: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
