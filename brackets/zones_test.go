package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/models"
)

func zone(name string, min, max int) models.ClassificationZone {
	return models.ClassificationZone{ID: name, Name: name, RankMin: min, RankMax: max, ColorClass: "bg-" + name}
}

func TestResolveZones(t *testing.T) {
	table := make([]models.Standing, 6)
	for i := range table {
		table[i] = models.Standing{TeamID: string(rune('a' + i)), Rank: i + 1}
	}
	zones := []models.ClassificationZone{
		zone("relegation", 5, 6),
		zone("promotion", 1, 2),
	}

	got := ResolveZones(table, zones)
	require.Len(t, got, 6)

	want := []string{"promotion", "promotion", "", "", "relegation", "relegation"}
	for i, s := range got {
		assert.Equal(t, want[i], s.ClassificationZoneName, "rank %d", s.Rank)
		if want[i] != "" {
			assert.Equal(t, "bg-"+want[i], s.ZoneColorClass)
		} else {
			assert.Empty(t, s.ZoneColorClass)
		}
	}
	assert.Empty(t, table[0].ClassificationZoneName, "input must stay untouched")
}

func TestResolveZonesPrefersLowestRankMin(t *testing.T) {
	// Overlapping zones cannot be added through validation, but stored data
	// may still contain them; the first by RankMin wins.
	got := ResolveZones(
		[]models.Standing{{TeamID: "a", Rank: 3}},
		[]models.ClassificationZone{zone("wide", 2, 5), zone("top", 1, 3)},
	)
	assert.Equal(t, "top", got[0].ClassificationZoneName)
}

func TestValidateZone(t *testing.T) {
	existing := []models.ClassificationZone{zone("promotion", 1, 2), zone("relegation", 7, 8)}

	tests := []struct {
		name      string
		candidate models.ClassificationZone
		wantErr   error
	}{
		{"fits between", zone("playoff", 3, 4), nil},
		{"single rank", zone("sixth", 6, 6), nil},
		{"empty name", models.ClassificationZone{RankMin: 3, RankMax: 4}, ErrZoneNameRequired},
		{"zero min", zone("bad", 0, 3), ErrZoneInvalidRange},
		{"negative", zone("bad", -2, -1), ErrZoneInvalidRange},
		{"inverted", zone("bad", 5, 4), ErrZoneInvalidRange},
		{"touches upper", zone("bad", 2, 3), ErrZoneOverlap},
		{"covers lower", zone("bad", 6, 9), ErrZoneOverlap},
		{"contains all", zone("bad", 1, 10), ErrZoneOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZone(existing, tt.candidate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestZoneSetNeverOverlaps(t *testing.T) {
	var zones []models.ClassificationZone
	attempts := []models.ClassificationZone{
		zone("a", 1, 3), zone("b", 3, 4), zone("c", 4, 6), zone("d", 2, 2), zone("e", 7, 7), zone("f", 6, 8),
	}
	for _, z := range attempts {
		if ValidateZone(zones, z) == nil {
			zones = append(zones, z)
		}
	}
	require.Len(t, zones, 3)
	for i := range zones {
		for j := i + 1; j < len(zones); j++ {
			assert.False(t, zones[i].Overlaps(zones[j]), "%s overlaps %s", zones[i].Name, zones[j].Name)
		}
	}
}
