package ingest

import (
	"fmt"

	"nba-games-ingest/internal/balldontlie"
)

const unknown = "Unknown"

// GameSummary is the per-game line of the invocation result.
type GameSummary struct {
	Matchup string `json:"matchup"`
	Score   string `json:"score"`
	Status  string `json:"status"`
}

// Summarize builds one summary per game, in order. The result is never nil.
func Summarize(games []balldontlie.Game) []GameSummary {
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, GameSummary{
			Matchup: fmt.Sprintf("%s @ %s", teamName(g.VisitorTeam), teamName(g.HomeTeam)),
			Score:   fmt.Sprintf("%s - %s", g.VisitorTeamScore.Text("0"), g.HomeTeamScore.Text("0")),
			Status:  g.Status.Text(unknown),
		})
	}
	return out
}

func teamName(t *balldontlie.Team) string {
	if t == nil {
		return unknown
	}
	return t.FullName.Text(unknown)
}
