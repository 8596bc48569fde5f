package scoring

// NextStreak decides the streak counter for a user's first completion of the
// day. A completion the day after the previous one continues the streak, and
// a zero counter bootstraps to 1; anything else means the streak broke and
// restarts at 1.
func NextStreak(current int, completedYesterday bool) int {
	if completedYesterday || current == 0 {
		return current + 1
	}
	return 1
}
