package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/tournament-manager/models"
)

// Side selects one half of a match.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) Valid() bool { return s == SideA || s == SideB }

// AdvancementKind is the action a completed (or incomplete) round asks for.
type AdvancementKind int

const (
	AdvanceNone AdvancementKind = iota
	AdvanceChampion
	AdvanceCreateRound
	AdvanceResetRound
)

func (k AdvancementKind) String() string {
	switch k {
	case AdvanceChampion:
		return "champion"
	case AdvanceCreateRound:
		return "create_round"
	case AdvanceResetRound:
		return "reset_round"
	default:
		return "none"
	}
}

// Advancement is the result of evaluating a knockout round after a score
// commit. EvaluateRound only computes it; ApplyAdvancement performs it.
type Advancement struct {
	Kind       AdvancementKind
	ChampionID string
	// RoundIndex is the evaluated round for AdvanceChampion and the target
	// round (evaluated + 1) for the create/reset kinds.
	RoundIndex int
	Round      models.KnockoutRound
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// NewKnockoutStage validates the slot assignment and builds a stage with its
// first round. Slot 2k meets slot 2k+1. Pending slots are allowed and stay
// unplayable until an admin fills them. With shuffle set the slots are
// randomly permuted before pairing.
//
// Existence of the known team ids is the caller's concern.
func NewKnockoutStage(name string, numTeams int, slots []models.TeamRef, shuffle bool, rng Shuffler, names RoundNamer) (*models.KnockoutStage, error) {
	if !isPowerOfTwo(numTeams) {
		return nil, fmt.Errorf("%w: got %d", ErrNotPowerOfTwo, numTeams)
	}
	if len(slots) != numTeams {
		return nil, fmt.Errorf("%w: %d slots for %d teams", ErrSlotCountMismatch, len(slots), numTeams)
	}

	order := make([]models.TeamRef, numTeams)
	seen := make(map[string]struct{}, numTeams)
	for i, ref := range slots {
		if ref.IsSentinel() {
			order[i] = models.Pending()
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, ref.ID)
		}
		seen[ref.ID] = struct{}{}
		order[i] = ref
	}

	if shuffle {
		orDefault(rng).Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	first := models.KnockoutRound{
		ID:      newID(),
		Name:    names.orDefault()(numTeams),
		Matches: pairSlots(order),
	}
	for i := range first.Matches {
		first.Matches[i].RoundName = first.Name
	}

	return &models.KnockoutStage{
		ID:       newID(),
		Name:     name,
		NumTeams: numTeams,
		TeamIDs:  order,
		Rounds:   []models.KnockoutRound{first},
	}, nil
}

// pairSlots turns an ordered list of sides into unplayed matches. A trailing
// side without a partner faces a pending slot.
func pairSlots(order []models.TeamRef) []models.Match {
	matches := make([]models.Match, 0, (len(order)+1)/2)
	for i := 0; i < len(order); i += 2 {
		b := models.Pending()
		if i+1 < len(order) {
			b = order[i+1]
		}
		matches = append(matches, models.Match{ID: newID(), TeamA: order[i], TeamB: b})
	}
	return matches
}

func findMatch(stage *models.KnockoutStage, roundID, matchID string) (int, int, error) {
	for ri := range stage.Rounds {
		if stage.Rounds[ri].ID != roundID {
			continue
		}
		for mi := range stage.Rounds[ri].Matches {
			if stage.Rounds[ri].Matches[mi].ID == matchID {
				return ri, mi, nil
			}
		}
		return 0, 0, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
}

// CommitScore records a knockout result and returns the index of the owning
// round. Draws and matches with a pending or removed side are rejected.
// A played match may be re-scored; EvaluateRound then cascades the change.
func CommitScore(stage *models.KnockoutStage, roundID, matchID string, scoreA, scoreB int) (int, error) {
	if scoreA < 0 || scoreB < 0 {
		return 0, ErrNegativeScore
	}
	if scoreA == scoreB {
		return 0, ErrDrawNotAllowed
	}
	ri, mi, err := findMatch(stage, roundID, matchID)
	if err != nil {
		return 0, err
	}
	m := &stage.Rounds[ri].Matches[mi]
	if m.HasSentinel() {
		return 0, ErrSentinelMatch
	}
	m.SetScore(scoreA, scoreB)
	return ri, nil
}

// EvaluateRound is the post-condition check run after every score commit.
// Until all matches of the round are played nothing happens. A complete
// single-match round decides the champion. Otherwise the winners are shuffled
// and paired into the next round, either a new one or, when a next round of
// the expected size already exists, that round with its teams overwritten and
// its scores cleared.
func EvaluateRound(stage *models.KnockoutStage, roundIndex int, rng Shuffler, names RoundNamer) Advancement {
	if stage == nil || roundIndex < 0 || roundIndex >= len(stage.Rounds) {
		return Advancement{Kind: AdvanceNone}
	}
	round := stage.Rounds[roundIndex]
	if len(round.Matches) == 0 {
		return Advancement{Kind: AdvanceNone}
	}

	winners := make([]models.TeamRef, 0, len(round.Matches))
	for _, m := range round.Matches {
		if !m.Played {
			return Advancement{Kind: AdvanceNone}
		}
		if w, ok := m.Winner(); ok && w.IsKnown() {
			winners = append(winners, w)
		}
	}

	if len(round.Matches) == 1 {
		if len(winners) == 0 {
			return Advancement{Kind: AdvanceNone}
		}
		return Advancement{Kind: AdvanceChampion, ChampionID: winners[0].ID, RoundIndex: roundIndex}
	}
	if len(winners) == 0 {
		return Advancement{Kind: AdvanceNone}
	}

	orDefault(rng).Shuffle(len(winners), func(i, j int) {
		winners[i], winners[j] = winners[j], winners[i]
	})
	pairs := pairSlots(winners)
	next := roundIndex + 1

	if next < len(stage.Rounds) && len(stage.Rounds[next].Matches) == len(pairs) {
		existing := stage.Rounds[next]
		reset := models.KnockoutRound{
			ID:      existing.ID,
			Name:    existing.Name,
			Matches: make([]models.Match, len(pairs)),
		}
		for i, p := range pairs {
			reset.Matches[i] = models.Match{
				ID:        existing.Matches[i].ID,
				TeamA:     p.TeamA,
				TeamB:     p.TeamB,
				RoundName: existing.Name,
			}
		}
		return Advancement{Kind: AdvanceResetRound, RoundIndex: next, Round: reset}
	}

	created := models.KnockoutRound{
		ID:      newID(),
		Name:    names.orDefault()(len(winners)),
		Matches: pairs,
	}
	for i := range created.Matches {
		created.Matches[i].RoundName = created.Name
	}
	return Advancement{Kind: AdvanceCreateRound, RoundIndex: next, Round: created}
}

// ApplyAdvancement performs an advancement on the stage. Rounds after the
// affected one are truncated, and the champion is cleared unless the
// advancement sets it.
func ApplyAdvancement(stage *models.KnockoutStage, adv Advancement) {
	if stage == nil {
		return
	}
	switch adv.Kind {
	case AdvanceChampion:
		if adv.RoundIndex < len(stage.Rounds) {
			stage.Rounds = stage.Rounds[:adv.RoundIndex+1]
		}
		stage.ChampionID = adv.ChampionID
	case AdvanceCreateRound:
		if adv.RoundIndex > len(stage.Rounds) {
			return
		}
		stage.Rounds = append(stage.Rounds[:adv.RoundIndex], adv.Round)
		stage.ChampionID = ""
	case AdvanceResetRound:
		if adv.RoundIndex >= len(stage.Rounds) {
			return
		}
		stage.Rounds[adv.RoundIndex] = adv.Round
		stage.Rounds = stage.Rounds[:adv.RoundIndex+1]
		stage.ChampionID = ""
	}
}

// RecordScore commits a score and runs the resulting advancement.
func RecordScore(stage *models.KnockoutStage, roundID, matchID string, scoreA, scoreB int, rng Shuffler, names RoundNamer) (Advancement, error) {
	ri, err := CommitScore(stage, roundID, matchID, scoreA, scoreB)
	if err != nil {
		return Advancement{}, err
	}
	adv := EvaluateRound(stage, ri, rng, names)
	ApplyAdvancement(stage, adv)
	return adv, nil
}

// ReassignTeam replaces one side of an unplayed match whose sides are both
// real teams. The new side may be a known team or a pending slot.
func ReassignTeam(stage *models.KnockoutStage, roundID, matchID string, side Side, team models.TeamRef) error {
	if !side.Valid() {
		return fmt.Errorf("unknown match side %d", side)
	}
	if team.Kind == models.TeamRemoved {
		return ErrSentinelMatch
	}
	ri, mi, err := findMatch(stage, roundID, matchID)
	if err != nil {
		return err
	}
	m := &stage.Rounds[ri].Matches[mi]
	if m.Played {
		return ErrMatchAlreadyPlayed
	}
	if m.HasSentinel() {
		return ErrSentinelMatch
	}

	target, other := &m.TeamA, m.TeamB
	if side == SideB {
		target, other = &m.TeamB, m.TeamA
	}
	if team.IsKnown() && other.Is(team.ID) {
		return ErrSameTeamBothSides
	}
	if team.IsKnown() && placedElsewhere(stage, ri, mi, team.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateSlot, team.ID)
	}
	previous := *target
	*target = team

	if ri == 0 {
		if i := slices.Index(stage.TeamIDs, previous); i >= 0 {
			stage.TeamIDs[i] = team
		}
	}
	return nil
}

// placedElsewhere reports whether teamID already occupies a slot of round ri
// outside match mi. First-round slots are also checked against the roster.
func placedElsewhere(stage *models.KnockoutStage, ri, mi int, teamID string) bool {
	for i, m := range stage.Rounds[ri].Matches {
		if i != mi && m.Involves(teamID) {
			return true
		}
	}
	if ri == 0 {
		m := stage.Rounds[ri].Matches[mi]
		for _, ref := range stage.TeamIDs {
			if ref.Is(teamID) && ref != m.TeamA && ref != m.TeamB {
				return true
			}
		}
	}
	return false
}

// RemoveTeamFromStage drops a deleted team from the roster and replaces it
// with the removed sentinel in every match. Matches left with two removed
// sides are discarded. Reports whether anything changed.
func RemoveTeamFromStage(stage *models.KnockoutStage, teamID string) bool {
	if stage == nil {
		return false
	}
	changed := false

	roster := stage.TeamIDs[:0]
	for _, ref := range stage.TeamIDs {
		if ref.Is(teamID) {
			changed = true
			continue
		}
		roster = append(roster, ref)
	}
	stage.TeamIDs = roster

	for ri := range stage.Rounds {
		kept := stage.Rounds[ri].Matches[:0]
		for _, m := range stage.Rounds[ri].Matches {
			if m.TeamA.Is(teamID) {
				m.TeamA = models.Removed()
				changed = true
			}
			if m.TeamB.Is(teamID) {
				m.TeamB = models.Removed()
				changed = true
			}
			if m.TeamA.Kind == models.TeamRemoved && m.TeamB.Kind == models.TeamRemoved {
				changed = true
				continue
			}
			kept = append(kept, m)
		}
		stage.Rounds[ri].Matches = kept
	}

	if stage.ChampionID == teamID {
		stage.ChampionID = ""
		changed = true
	}
	return changed
}
