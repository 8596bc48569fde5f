package scoring

// Answer is the two-slot choice record for one exercise within an attempt:
// the current guess, the guess it replaced, and how many times the learner
// has submitted.
type Answer struct {
	Choice       *int64
	SecondChoice *int64
	Correct      bool
	Submissions  int
}

// Merge folds a new submission into the previous answer for the same
// exercise. When the previous submission was wrong and the caller did not
// supply an explicit second choice, the previous first guess is carried into
// the second slot, preserving the "first guess, second guess" pair without
// the client resending it. The submission counter starts at 1 on create and
// increments on every resubmission.
func Merge(prev *Answer, next Answer) Answer {
	if prev == nil {
		next.Submissions = 1
		return next
	}
	merged := next
	if merged.SecondChoice == nil && !prev.Correct {
		merged.SecondChoice = prev.Choice
	}
	merged.Submissions = prev.Submissions + 1
	return merged
}
