package rankings

import "github.com/Billy-Davies-2/ff-draft-assistant/internal/models"

// FallbackPlayers returns the static ranking board served when no live
// source is usable. Each call returns a fresh copy.
func FallbackPlayers() []models.Player {
	return []models.Player{
		{ID: "1", Name: "Christian McCaffrey", Position: models.PositionRB, Team: "SF", Rank: 1, ADP: 1.2, Tier: 1, Bye: 9, ProjectedPoints: 320},
		{ID: "2", Name: "Tyreek Hill", Position: models.PositionWR, Team: "MIA", Rank: 2, ADP: 2.1, Tier: 1, Bye: 11, ProjectedPoints: 310},
		{ID: "3", Name: "Austin Ekeler", Position: models.PositionRB, Team: "WAS", Rank: 3, ADP: 3.5, Tier: 1, Bye: 14, ProjectedPoints: 295},
		{ID: "4", Name: "CeeDee Lamb", Position: models.PositionWR, Team: "DAL", Rank: 4, ADP: 4.2, Tier: 1, Bye: 7, ProjectedPoints: 290},
		{ID: "5", Name: "Bijan Robinson", Position: models.PositionRB, Team: "ATL", Rank: 5, ADP: 5.8, Tier: 1, Bye: 11, ProjectedPoints: 285},
		{ID: "6", Name: "Ja'Marr Chase", Position: models.PositionWR, Team: "CIN", Rank: 6, ADP: 6.1, Tier: 2, Bye: 7, ProjectedPoints: 280},
		{ID: "7", Name: "Saquon Barkley", Position: models.PositionRB, Team: "PHI", Rank: 7, ADP: 7.3, Tier: 2, Bye: 10, ProjectedPoints: 275},
		{ID: "8", Name: "Amon-Ra St. Brown", Position: models.PositionWR, Team: "DET", Rank: 8, ADP: 8.5, Tier: 2, Bye: 9, ProjectedPoints: 270},
		{ID: "9", Name: "Jonathan Taylor", Position: models.PositionRB, Team: "IND", Rank: 9, ADP: 9.2, Tier: 2, Bye: 11, ProjectedPoints: 265},
		{ID: "10", Name: "Stefon Diggs", Position: models.PositionWR, Team: "HOU", Rank: 10, ADP: 10.1, Tier: 2, Bye: 7, ProjectedPoints: 260},
		{ID: "11", Name: "Derrick Henry", Position: models.PositionRB, Team: "BAL", Rank: 11, ADP: 11.3, Tier: 3, Bye: 14, ProjectedPoints: 255},
		{ID: "12", Name: "Garrett Wilson", Position: models.PositionWR, Team: "NYJ", Rank: 12, ADP: 12.2, Tier: 3, Bye: 7, ProjectedPoints: 250},
		{ID: "13", Name: "Josh Jacobs", Position: models.PositionRB, Team: "GB", Rank: 13, ADP: 13.1, Tier: 3, Bye: 10, ProjectedPoints: 245},
		{ID: "14", Name: "Davante Adams", Position: models.PositionWR, Team: "LV", Rank: 14, ADP: 14.4, Tier: 3, Bye: 13, ProjectedPoints: 240},
		{ID: "15", Name: "Travis Etienne Jr.", Position: models.PositionRB, Team: "JAX", Rank: 15, ADP: 15.2, Tier: 3, Bye: 12, ProjectedPoints: 235},
		{ID: "16", Name: "DeVonta Smith", Position: models.PositionWR, Team: "PHI", Rank: 16, ADP: 16.3, Tier: 4, Bye: 10, ProjectedPoints: 230},
		{ID: "17", Name: "Rachaad White", Position: models.PositionRB, Team: "TB", Rank: 17, ADP: 17.1, Tier: 4, Bye: 5, ProjectedPoints: 225},
		{ID: "18", Name: "Jaylen Waddle", Position: models.PositionWR, Team: "MIA", Rank: 18, ADP: 18.2, Tier: 4, Bye: 11, ProjectedPoints: 220},
		{ID: "19", Name: "Alvin Kamara", Position: models.PositionRB, Team: "NO", Rank: 19, ADP: 19.4, Tier: 4, Bye: 12, ProjectedPoints: 215},
		{ID: "20", Name: "DK Metcalf", Position: models.PositionWR, Team: "SEA", Rank: 20, ADP: 20.1, Tier: 4, Bye: 5, ProjectedPoints: 210},
		{ID: "21", Name: "Josh Allen", Position: models.PositionQB, Team: "BUF", Rank: 21, ADP: 21.3, Tier: 4, Bye: 12, ProjectedPoints: 380},
		{ID: "22", Name: "Jalen Hurts", Position: models.PositionQB, Team: "PHI", Rank: 22, ADP: 22.1, Tier: 4, Bye: 10, ProjectedPoints: 375},
		{ID: "23", Name: "Lamar Jackson", Position: models.PositionQB, Team: "BAL", Rank: 23, ADP: 23.2, Tier: 4, Bye: 14, ProjectedPoints: 370},
		{ID: "24", Name: "Patrick Mahomes", Position: models.PositionQB, Team: "KC", Rank: 24, ADP: 24.5, Tier: 4, Bye: 10, ProjectedPoints: 365},
		{ID: "25", Name: "Dak Prescott", Position: models.PositionQB, Team: "DAL", Rank: 25, ADP: 25.8, Tier: 4, Bye: 7, ProjectedPoints: 360},
		{ID: "26", Name: "Joe Mixon", Position: models.PositionRB, Team: "HOU", Rank: 26, ADP: 26.3, Tier: 5, Bye: 7, ProjectedPoints: 205},
		{ID: "27", Name: "James Cook", Position: models.PositionRB, Team: "BUF", Rank: 27, ADP: 27.1, Tier: 5, Bye: 12, ProjectedPoints: 200},
		{ID: "28", Name: "Zamir White", Position: models.PositionRB, Team: "LV", Rank: 28, ADP: 28.4, Tier: 5, Bye: 13, ProjectedPoints: 195},
		{ID: "29", Name: "Tyler Allgeier", Position: models.PositionRB, Team: "ATL", Rank: 29, ADP: 29.2, Tier: 5, Bye: 11, ProjectedPoints: 190},
		{ID: "30", Name: "Brian Robinson Jr.", Position: models.PositionRB, Team: "WAS", Rank: 30, ADP: 30.1, Tier: 5, Bye: 14, ProjectedPoints: 185},
		{ID: "31", Name: "Chris Olave", Position: models.PositionWR, Team: "NO", Rank: 31, ADP: 31.3, Tier: 5, Bye: 12, ProjectedPoints: 180},
		{ID: "32", Name: "Tee Higgins", Position: models.PositionWR, Team: "CIN", Rank: 32, ADP: 32.2, Tier: 5, Bye: 7, ProjectedPoints: 175},
		{ID: "33", Name: "Drake London", Position: models.PositionWR, Team: "ATL", Rank: 33, ADP: 33.1, Tier: 5, Bye: 11, ProjectedPoints: 170},
		{ID: "34", Name: "Brandon Aiyuk", Position: models.PositionWR, Team: "SF", Rank: 34, ADP: 34.4, Tier: 5, Bye: 9, ProjectedPoints: 165},
		{ID: "35", Name: "Nico Collins", Position: models.PositionWR, Team: "HOU", Rank: 35, ADP: 35.2, Tier: 5, Bye: 7, ProjectedPoints: 160},
		{ID: "36", Name: "Sam LaPorta", Position: models.PositionTE, Team: "DET", Rank: 36, ADP: 36.1, Tier: 5, Bye: 9, ProjectedPoints: 155},
		{ID: "37", Name: "Travis Kelce", Position: models.PositionTE, Team: "KC", Rank: 37, ADP: 37.3, Tier: 5, Bye: 10, ProjectedPoints: 150},
		{ID: "38", Name: "T.J. Hockenson", Position: models.PositionTE, Team: "MIN", Rank: 38, ADP: 38.2, Tier: 5, Bye: 6, ProjectedPoints: 145},
		{ID: "39", Name: "Mark Andrews", Position: models.PositionTE, Team: "BAL", Rank: 39, ADP: 39.1, Tier: 5, Bye: 14, ProjectedPoints: 140},
		{ID: "40", Name: "Evan Engram", Position: models.PositionTE, Team: "JAX", Rank: 40, ADP: 40.4, Tier: 5, Bye: 12, ProjectedPoints: 135},
		{ID: "41", Name: "C.J. Stroud", Position: models.PositionQB, Team: "HOU", Rank: 41, ADP: 41.2, Tier: 5, Bye: 7, ProjectedPoints: 355},
		{ID: "42", Name: "Justin Herbert", Position: models.PositionQB, Team: "LAC", Rank: 42, ADP: 42.1, Tier: 5, Bye: 5, ProjectedPoints: 350},
		{ID: "43", Name: "Kyler Murray", Position: models.PositionQB, Team: "ARI", Rank: 43, ADP: 43.3, Tier: 5, Bye: 11, ProjectedPoints: 345},
		{ID: "44", Name: "Anthony Richardson", Position: models.PositionQB, Team: "IND", Rank: 44, ADP: 44.2, Tier: 5, Bye: 11, ProjectedPoints: 340},
		{ID: "45", Name: "Jordan Love", Position: models.PositionQB, Team: "GB", Rank: 45, ADP: 45.1, Tier: 5, Bye: 10, ProjectedPoints: 335},
		{ID: "46", Name: "Justin Tucker", Position: models.PositionK, Team: "BAL", Rank: 46, ADP: 46.5, Tier: 6, Bye: 14, ProjectedPoints: 130},
		{ID: "47", Name: "Harrison Butker", Position: models.PositionK, Team: "KC", Rank: 47, ADP: 47.2, Tier: 6, Bye: 10, ProjectedPoints: 125},
		{ID: "48", Name: "Evan McPherson", Position: models.PositionK, Team: "CIN", Rank: 48, ADP: 48.1, Tier: 6, Bye: 7, ProjectedPoints: 120},
		{ID: "49", Name: "Jake Elliott", Position: models.PositionK, Team: "PHI", Rank: 49, ADP: 49.3, Tier: 6, Bye: 10, ProjectedPoints: 115},
		{ID: "50", Name: "Brandon Aubrey", Position: models.PositionK, Team: "DAL", Rank: 50, ADP: 50.2, Tier: 6, Bye: 7, ProjectedPoints: 110},
		{ID: "51", Name: "San Francisco 49ers", Position: models.PositionDEF, Team: "SF", Rank: 51, ADP: 51.1, Tier: 6, Bye: 9, ProjectedPoints: 105},
		{ID: "52", Name: "Dallas Cowboys", Position: models.PositionDEF, Team: "DAL", Rank: 52, ADP: 52.3, Tier: 6, Bye: 7, ProjectedPoints: 100},
		{ID: "53", Name: "Baltimore Ravens", Position: models.PositionDEF, Team: "BAL", Rank: 53, ADP: 53.2, Tier: 6, Bye: 14, ProjectedPoints: 95},
		{ID: "54", Name: "Buffalo Bills", Position: models.PositionDEF, Team: "BUF", Rank: 54, ADP: 54.1, Tier: 6, Bye: 12, ProjectedPoints: 90},
		{ID: "55", Name: "New York Jets", Position: models.PositionDEF, Team: "NYJ", Rank: 55, ADP: 55.4, Tier: 6, Bye: 7, ProjectedPoints: 85},
	}
}

// FallbackCount is the size of the static board.
const FallbackCount = 55
