package game

const (
	maxEfficiency   = 100
	efficiencyScale = 10
	timeBonusBase   = 1000
	moveBonusBase   = 500
)

// Efficiency is how close a run came to the shortest route, in percent.
// It is 0 when either count is 0 and never exceeds 100.
func Efficiency(moves, shortest int) int {
	if moves <= 0 || shortest <= 0 {
		return 0
	}
	return min(maxEfficiency, shortest*100/moves)
}

// Score rewards efficient, quick runs with few moves.
func Score(moves int, elapsedSeconds int64, shortest int) int {
	timeBonus := max(0, timeBonusBase-int(elapsedSeconds))
	moveBonus := max(0, moveBonusBase-moves)
	return Efficiency(moves, shortest)*efficiencyScale + timeBonus + moveBonus
}
