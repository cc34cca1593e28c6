package brackets

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-manager/models"
)

// ResolveZones tags each ranked standing with the first zone (by ascending
// RankMin) whose range contains its rank. Rows outside every zone are left
// without a zone. The input slice is not modified.
func ResolveZones(standings []models.Standing, zones []models.ClassificationZone) []models.Standing {
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, func(a, b models.ClassificationZone) int {
		return cmp.Compare(a.RankMin, b.RankMin)
	})

	out := slices.Clone(standings)
	for i := range out {
		out[i].ClassificationZoneName = ""
		out[i].ZoneColorClass = ""
		for _, z := range sorted {
			if z.Contains(out[i].Rank) {
				out[i].ClassificationZoneName = z.Name
				out[i].ZoneColorClass = z.ColorClass
				break
			}
		}
	}
	return out
}

// ValidateZone checks a candidate zone against the zones already owned by the
// same group or league.
func ValidateZone(existing []models.ClassificationZone, candidate models.ClassificationZone) error {
	if strings.TrimSpace(candidate.Name) == "" {
		return ErrZoneNameRequired
	}
	if candidate.RankMin <= 0 || candidate.RankMax <= 0 || candidate.RankMin > candidate.RankMax {
		return fmt.Errorf("%w: [%d, %d]", ErrZoneInvalidRange, candidate.RankMin, candidate.RankMax)
	}
	for _, z := range existing {
		if z.Overlaps(candidate) {
			return fmt.Errorf("%w: %q covers ranks %d-%d", ErrZoneOverlap, z.Name, z.RankMin, z.RankMax)
		}
	}
	return nil
}
