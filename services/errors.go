package services

import (
	"errors"

	"github.com/Dosada05/tournament-manager/brackets"
)

// Общие ошибки сервисов, используемые в маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrNameRequired           = errors.New("name is required")
	ErrTeamAlreadyInContainer = errors.New("team is already part of this group or league")
	ErrTeamNotInContainer     = errors.New("team is not part of this group or league")
	ErrDuplicateTeam          = errors.New("team is listed more than once")
	ErrInvalidMode            = errors.New("match generation mode must be automatic or manual")
	ErrManualModeRequired     = errors.New("operation requires manual match generation mode")
	ErrAutomaticModeRequired  = errors.New("operation requires automatic match generation mode")
	ErrNoChampion             = errors.New("knockout stage has no champion yet")
	ErrUnsupportedExportType  = errors.New("export must be an image")

	// Ошибки конфликтов
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials   = errors.New("invalid admin password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation requires admin privileges")

	ErrExportUnavailable = errors.New("image export storage is not configured")

	// Ошибки, специфичные для сущностей
	ErrTeamNotFound     = errors.New("team not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrLeagueNotFound   = errors.New("league not found")
	ErrKnockoutNotFound = errors.New("knockout stage not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrZoneNotFound     = errors.New("classification zone not found")
	ErrArchiveNotFound  = errors.New("archived winner not found")
)

// IsRuleViolation reports whether err is an engine rejection of invalid input.
func IsRuleViolation(err error) bool {
	for _, target := range []error{
		brackets.ErrNotEnoughTeams,
		brackets.ErrInvalidRounds,
		brackets.ErrNotPowerOfTwo,
		brackets.ErrSlotCountMismatch,
		brackets.ErrDuplicateSlot,
		brackets.ErrDrawNotAllowed,
		brackets.ErrNegativeScore,
		brackets.ErrSentinelMatch,
		brackets.ErrMatchAlreadyPlayed,
		brackets.ErrSameTeamBothSides,
		brackets.ErrZoneNameRequired,
		brackets.ErrZoneInvalidRange,
		brackets.ErrZoneOverlap,
		brackets.ErrInvalidGroupCount,
		brackets.ErrInvalidTeamsPerGroup,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
