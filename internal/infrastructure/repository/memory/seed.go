package memory

import (
	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/domain/team"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: bracket.TeamRaccoon, Name: "Crazy Raccoon", Logo: "/logos/crazy-raccoon.png", Seed: 1},
		{ID: bracket.TeamWeibo, Name: "Weibo Gaming", Logo: "/logos/weibo-gaming.png", Seed: 2},
		{ID: bracket.TeamTwisted, Name: "Twisted Minds", Logo: "/logos/twisted-minds.png", Seed: 3},
		{ID: bracket.TeamLiquid, Name: "Team Liquid", Logo: "/logos/team-liquid.png", Seed: 4},
		{ID: bracket.TeamCC, Name: "Team CC", Logo: "/logos/team-cc.png"},
		{ID: bracket.TeamT1, Name: "T1", Logo: "/logos/t1.png"},
		{ID: bracket.TeamFalcons, Name: "Team Falcons", Logo: "/logos/team-falcons.png"},
		{ID: bracket.TeamVarrel, Name: "VARREL", Logo: "/logos/varrel.png"},
		{ID: bracket.TeamAlQadsiah, Name: "Al Qadsiah", Logo: "/logos/al-qadsiah.png"},
		{ID: bracket.TeamGeekay, Name: "Geekay Esports", Logo: "/logos/geekay-esports.png"},
		{ID: bracket.TeamSpacestation, Name: "Spacestation", Logo: "/logos/spacestation.png"},
		{ID: bracket.TeamPeps, Name: "Team Peps", Logo: "/logos/team-peps.png"},
	}
}

func SeedMatches() []bracket.Match {
	return bracket.DefaultTemplate()
}

// SeedDaySettings enables every calendar day.
func SeedDaySettings(cal schedule.Calendar) []schedule.DaySetting {
	days := cal.Days()
	out := make([]schedule.DaySetting, 0, len(days))
	for _, day := range days {
		out = append(out, schedule.DaySetting{Day: day, IsEnabled: true})
	}
	return out
}
