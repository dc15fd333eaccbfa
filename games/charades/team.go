/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

// Team is one side of the game. Score only goes up until the game is reset.
type Team struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	Class      string `json:"class"`
	Background string `json:"background"`
	Score      int    `json:"score"`
}

var palette = [MaxTeams]Team{
	{Name: "Red", Color: "red", Class: "team-red", Background: "#e74c3c"},
	{Name: "Blue", Color: "blue", Class: "team-blue", Background: "#3498db"},
	{Name: "Yellow", Color: "yellow", Class: "team-yellow", Background: "#f1c40f"},
	{Name: "Green", Color: "green", Class: "team-green", Background: "#2ecc71"},
}

// newTeams returns the first n palette entries with zero scores.
func newTeams(n int) []Team {
	teams := make([]Team, n)
	copy(teams, palette[:n])

	return teams
}
