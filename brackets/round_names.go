package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-manager/models"
)

// RoundNamer names a knockout round after the number of teams entering it.
type RoundNamer func(teamsInRound int) string

func EnglishRoundNames(teamsInRound int) string {
	switch teamsInRound {
	case 2:
		return "Final"
	case 4:
		return "Semifinals"
	case 8:
		return "Quarterfinals"
	case 16:
		return "Round of 16"
	default:
		return fmt.Sprintf("Round of %d", teamsInRound)
	}
}

func SpanishRoundNames(teamsInRound int) string {
	switch teamsInRound {
	case 2:
		return "Final"
	case 4:
		return "Semifinales"
	case 8:
		return "Cuartos de Final"
	case 16:
		return "Octavos de Final"
	default:
		return fmt.Sprintf("Ronda de %d", teamsInRound)
	}
}

// Locale bundles round names with the display names of the sentinel team refs.
type Locale struct {
	Code        string
	RoundNames  RoundNamer
	PendingName string
	RemovedName string
}

var (
	LocaleEnglish = Locale{Code: "en", RoundNames: EnglishRoundNames, PendingName: "TBD", RemovedName: "Deleted team"}
	LocaleSpanish = Locale{Code: "es", RoundNames: SpanishRoundNames, PendingName: "A Definir", RemovedName: "Equipo Eliminado"}
)

// LocaleFor returns the locale for a language code, defaulting to English.
func LocaleFor(code string) Locale {
	if strings.EqualFold(strings.TrimSpace(code), LocaleSpanish.Code) {
		return LocaleSpanish
	}
	return LocaleEnglish
}

// SentinelName returns the fixed display name of a pending or removed ref.
func (l Locale) SentinelName(ref models.TeamRef) (string, bool) {
	switch ref.Kind {
	case models.TeamPending:
		return l.PendingName, true
	case models.TeamRemoved:
		return l.RemovedName, true
	default:
		return "", false
	}
}

func (n RoundNamer) orDefault() RoundNamer {
	if n == nil {
		return EnglishRoundNames
	}
	return n
}
