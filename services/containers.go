package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
)

// container is a view over the fields a group and the league have in common,
// so that roster, fixture and zone rules are written once.
type container struct {
	teamIDs *[]string
	matches *[]models.Match
	zones   *[]models.ClassificationZone
	mode    *models.MatchGenerationMode
	rounds  *int
}

type containerLocator func(s *models.TournamentState) (*container, error)

func groupLocator(groupID string) containerLocator {
	return func(s *models.TournamentState) (*container, error) {
		i := s.GroupIndex(groupID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}
		return groupContainer(&s.Groups[i]), nil
	}
}

func groupContainer(g *models.Group) *container {
	return &container{
		teamIDs: &g.TeamIDs,
		matches: &g.Matches,
		zones:   &g.ClassificationZones,
		mode:    &g.MatchGenerationMode,
		rounds:  &g.Rounds,
	}
}

func leagueLocator(s *models.TournamentState) (*container, error) {
	if s.League == nil {
		return nil, ErrLeagueNotFound
	}
	l := s.League
	return &container{
		teamIDs: &l.TeamIDs,
		matches: &l.Matches,
		zones:   &l.ClassificationZones,
		mode:    &l.MatchGenerationMode,
		rounds:  &l.Settings.Rounds,
	}, nil
}

func (c *container) hasTeam(teamID string) bool {
	return slices.Contains(*c.teamIDs, teamID)
}

func (c *container) addTeam(s *models.TournamentState, teamID string) error {
	if !s.HasTeam(teamID) {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	if c.hasTeam(teamID) {
		return ErrTeamAlreadyInContainer
	}
	*c.teamIDs = append(*c.teamIDs, teamID)
	return nil
}

// removeTeam drops the team from the roster only. Its matches stay in the
// list and stop counting towards standings.
func (c *container) removeTeam(teamID string) error {
	if !c.hasTeam(teamID) {
		return ErrTeamNotInContainer
	}
	*c.teamIDs = slices.DeleteFunc(*c.teamIDs, func(id string) bool { return id == teamID })
	return nil
}

// purgeTeam removes the team together with every match it played.
func (c *container) purgeTeam(teamID string) {
	*c.teamIDs = slices.DeleteFunc(*c.teamIDs, func(id string) bool { return id == teamID })
	*c.matches = slices.DeleteFunc(*c.matches, func(m models.Match) bool { return m.Involves(teamID) })
}

// setMode switches the generation mode; a switch wipes the fixture list.
func (c *container) setMode(mode models.MatchGenerationMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if *c.mode == mode {
		return nil
	}
	*c.mode = mode
	*c.matches = []models.Match{}
	return nil
}

func (c *container) setRounds(rounds int, rng brackets.Shuffler) error {
	if !models.ValidRounds(rounds) {
		return fmt.Errorf("%w: %d", brackets.ErrInvalidRounds, rounds)
	}
	*c.rounds = rounds
	if *c.mode == models.ModeAutomatic {
		c.regenerate(rng)
	}
	return nil
}

func (c *container) generate(rng brackets.Shuffler) error {
	if *c.mode != models.ModeAutomatic {
		return ErrAutomaticModeRequired
	}
	c.regenerate(rng)
	return nil
}

// regenerate replaces the fixture list. With fewer than two teams the
// existing list is left alone.
func (c *container) regenerate(rng brackets.Shuffler) {
	if fixtures := brackets.GenerateFixtures(*c.teamIDs, *c.rounds, rng); fixtures != nil {
		*c.matches = fixtures
	}
}

func (c *container) addManualMatch(teamA, teamB string) (models.Match, error) {
	if *c.mode != models.ModeManual {
		return models.Match{}, ErrManualModeRequired
	}
	if !c.hasTeam(teamA) || !c.hasTeam(teamB) {
		return models.Match{}, ErrTeamNotInContainer
	}
	if teamA == teamB {
		return models.Match{}, brackets.ErrSameTeamBothSides
	}
	m := models.Match{
		ID:    uuid.NewString(),
		TeamA: models.Known(teamA),
		TeamB: models.Known(teamB),
	}
	*c.matches = append(*c.matches, m)
	return m, nil
}

func (c *container) removeManualMatch(matchID string) error {
	if *c.mode != models.ModeManual {
		return ErrManualModeRequired
	}
	i := c.matchIndex(matchID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	*c.matches = slices.Delete(*c.matches, i, i+1)
	return nil
}

func (c *container) clearMatches() {
	*c.matches = []models.Match{}
}

func (c *container) matchIndex(matchID string) int {
	return slices.IndexFunc(*c.matches, func(m models.Match) bool { return m.ID == matchID })
}

// recordScore sets a result. Draws are allowed here, unlike the knockout stage.
func (c *container) recordScore(matchID string, scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return brackets.ErrNegativeScore
	}
	i := c.matchIndex(matchID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	m := &(*c.matches)[i]
	if m.HasSentinel() {
		return brackets.ErrSentinelMatch
	}
	m.SetScore(scoreA, scoreB)
	return nil
}

func (c *container) addZone(input ZoneInput) (models.ClassificationZone, error) {
	zone := models.ClassificationZone{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		RankMin:    input.RankMin,
		RankMax:    input.RankMax,
		ColorClass: strings.TrimSpace(input.ColorClass),
	}
	if err := brackets.ValidateZone(*c.zones, zone); err != nil {
		return models.ClassificationZone{}, err
	}
	*c.zones = append(*c.zones, zone)
	return zone, nil
}

func (c *container) removeZone(zoneID string) error {
	i := slices.IndexFunc(*c.zones, func(z models.ClassificationZone) bool { return z.ID == zoneID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrZoneNotFound, zoneID)
	}
	*c.zones = slices.Delete(*c.zones, i, i+1)
	return nil
}

func (c *container) standings(nameOf func(string) string) []models.Standing {
	table := brackets.CalculateStandings(*c.teamIDs, *c.matches, nameOf)
	return brackets.ResolveZones(table, *c.zones)
}
