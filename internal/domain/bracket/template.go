package bracket

// Team ids of the seeded field.
const (
	TeamCC           = "team-cc"
	TeamT1           = "t1"
	TeamFalcons      = "team-falcons"
	TeamVarrel       = "varrel"
	TeamAlQadsiah    = "al-qadsiah"
	TeamGeekay       = "geekay-esports"
	TeamSpacestation = "spacestation"
	TeamPeps         = "team-peps"
	TeamRaccoon      = "crazy-raccoon"
	TeamWeibo        = "weibo-gaming"
	TeamTwisted      = "twisted-minds"
	TeamLiquid       = "team-liquid"
)

const (
	roundOne          = "Round 1"
	roundUpperTwo     = "Upper Round 2"
	roundLowerOne     = "Lower Round 1"
	roundLowerTwo     = "Lower Round 2"
	roundUpperSemi    = "Upper Semifinal"
	roundLowerThree   = "Lower Round 3"
	roundLowerFour    = "Lower Round 4"
	roundUpperFinal   = "Upper Bracket Final"
	roundLowerFinal   = "Lower Bracket Final"
	templateMatchSize = 21
)

// DefaultTemplate is the 12-team double-elimination bracket played over five days.
// Round 1 and the seeded half of Upper Round 2 are fixed; every other slot is sourced.
func DefaultTemplate() []Match {
	out := make([]Match, 0, templateMatchSize)

	// Day 1
	out = append(out,
		fixed("M1", 1, TeamCC, TeamT1, 1, "3:00 PM", roundOne),
		fixed("M2", 2, TeamFalcons, TeamVarrel, 1, "4:15 PM", roundOne),
		fixed("M3", 3, TeamAlQadsiah, TeamGeekay, 1, "5:30 PM", roundOne),
		fixed("M4", 4, TeamSpacestation, TeamPeps, 1, "6:45 PM", roundOne),
	)

	// Day 2
	out = append(out,
		seeded("M5", 5, TeamRaccoon, Winner("M4"), 2, "3:00 PM"),
		seeded("M6", 6, TeamWeibo, Winner("M3"), 2, "4:45 PM"),
		seeded("M7", 7, TeamTwisted, Winner("M1"), 2, "6:30 PM"),
		seeded("M8", 8, TeamLiquid, Winner("M2"), 2, "8:15 PM"),
	)

	// Day 3
	out = append(out,
		sourced("M9", 9, Loser("M4"), Loser("M5"), 3, "3:00 PM", roundLowerOne, false),
		sourced("M10", 10, Loser("M7"), Loser("M3"), 3, "4:15 PM", roundLowerOne, false),
		sourced("M11", 11, Loser("M6"), Loser("M1"), 3, "5:30 PM", roundLowerOne, false),
		sourced("M12", 12, Loser("M8"), Loser("M2"), 3, "6:45 PM", roundLowerOne, false),
		sourced("M13", 13, Winner("M9"), Winner("M10"), 3, "8:00 PM", roundLowerTwo, false),
		sourced("M14", 14, Winner("M11"), Winner("M12"), 3, "9:45 PM", roundLowerTwo, false),
	)

	// Day 4
	out = append(out,
		sourced("M15", 15, Winner("M5"), Winner("M6"), 4, "2:00 PM", roundUpperSemi, true),
		sourced("M16", 16, Winner("M7"), Winner("M8"), 4, "3:45 PM", roundUpperSemi, true),
		sourced("M17", 17, Loser("M15"), Winner("M13"), 4, "5:30 PM", roundLowerThree, false),
		sourced("M18", 18, Winner("M14"), Winner("M16"), 4, "9:30 PM", roundLowerFour, false),
	)

	// Day 5
	out = append(out,
		sourced(MatchIDUpperFinal, 19, Winner("M15"), Winner("M16"), 5, "2:00 PM", roundUpperFinal, true),
		sourced(MatchIDLowerFinal, 20, Loser(MatchIDUpperFinal), Winner("M18"), 5, "3:45 PM", roundLowerFinal, false),
		sourced(MatchIDGrandFinal, 21, Winner(MatchIDUpperFinal), Winner(MatchIDLowerFinal), 5, "6:30 PM", RoundGrandFinal, true),
	)

	return out
}

// DefaultGraph indexes DefaultTemplate. The template is static, so a build error is a bug.
func DefaultGraph() *Graph {
	g, err := NewGraph(DefaultTemplate())
	if err != nil {
		panic(err)
	}
	return g
}

func fixed(id string, number int, team1, team2 string, day int, start, round string) Match {
	return Match{
		ID:             id,
		MatchNumber:    number,
		Team1ID:        team1,
		Team2ID:        team2,
		Day:            day,
		StartTime:      start,
		Round:          round,
		IsUpperBracket: true,
	}
}

func seeded(id string, number int, team1 string, team2 *DependencyRef, day int, start string) Match {
	return Match{
		ID:             id,
		MatchNumber:    number,
		Team1ID:        team1,
		Team2Source:    team2,
		Day:            day,
		StartTime:      start,
		Round:          roundUpperTwo,
		IsUpperBracket: true,
	}
}

func sourced(id string, number int, team1, team2 *DependencyRef, day int, start, round string, upper bool) Match {
	return Match{
		ID:             id,
		MatchNumber:    number,
		Team1Source:    team1,
		Team2Source:    team2,
		Day:            day,
		StartTime:      start,
		Round:          round,
		IsUpperBracket: upper,
	}
}
