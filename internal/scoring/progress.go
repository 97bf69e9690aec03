package scoring

// Attempt is one historic scoring attempt as consumed by the progress
// calculation. Only round and score matter for unlock logic.
type Attempt struct {
	Round int
	Score float64
}

// RoundProgress is the derived state of one round for a team. It is
// recomputed on every query and never persisted.
type RoundProgress struct {
	Round      int      `json:"round"`
	Unlocked   bool     `json:"unlocked"`
	Accessible bool     `json:"accessible"`
	Locked     bool     `json:"locked"`
	Completed  bool     `json:"completed"`
	BestScore  *float64 `json:"best_score"`
	Attempts   int      `json:"attempts"`
}

// RoundCount is the number of rounds in the competition funnel.
const RoundCount = 3

// ComputeProgress derives the per-round unlock state from a team's attempt
// history. The history order is irrelevant.
//
// Evaluation runs in two passes: best score, attempts, completed and unlocked
// for every round first, then accessible/locked in a second pass over the
// finished unlocked flags. This avoids the order-of-evaluation trap where a
// round's accessibility reads a lock flag that is only assigned later.
func ComputeProgress(history []Attempt) []RoundProgress {
	best := make(map[int]float64, RoundCount)
	attempts := make(map[int]int, RoundCount)
	for _, attempt := range history {
		attempts[attempt.Round]++
		if attempt.Score > best[attempt.Round] {
			best[attempt.Round] = attempt.Score
		}
	}

	progress := make([]RoundProgress, 0, RoundCount)
	for round := 1; round <= RoundCount; round++ {
		entry := RoundProgress{
			Round:     round,
			Attempts:  attempts[round],
			Completed: best[round] >= PassingThreshold,
		}
		if attempts[round] > 0 {
			score := best[round]
			entry.BestScore = &score
		}
		progress = append(progress, entry)
	}

	// A round unlocks once the prior round's best score clears the threshold.
	for i := range progress {
		if i == 0 {
			progress[i].Unlocked = true
			continue
		}
		progress[i].Unlocked = progress[i-1].Completed
	}

	// Progressing forward retires the previous round: a round becomes locked
	// once its successor unlocks. The terminal round is never locked.
	for i := range progress {
		hasNext := i+1 < len(progress)
		if hasNext && progress[i+1].Unlocked {
			progress[i].Locked = true
		}
		progress[i].Accessible = progress[i].Unlocked && !progress[i].Locked
	}

	return progress
}
