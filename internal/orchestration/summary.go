package orchestration

import "time"

// StrategyStats aggregates the successful runs of one strategy.
type StrategyStats struct {
	Name    string
	Runs    int
	Sum     int
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	Total   time.Duration
}

// Summary is the comparison of all strategies.
type Summary struct {
	// Strategies keeps the order in which strategies first appear.
	Strategies []StrategyStats
	// Speedup is 1 - avg(parallel)/avg(sequential). Positive means the
	// parallel strategy is quicker. Only valid when HasSpeedup is set.
	Speedup    float64
	HasSpeedup bool
}

// Stats returns the statistics of the named strategy.
func (s Summary) Stats(name string) (StrategyStats, bool) {
	for _, st := range s.Strategies {
		if st.Name == name {
			return st, true
		}
	}
	return StrategyStats{}, false
}

// Summarize computes per-strategy averages over the successful runs and the
// parallel speedup. Averages divide by the number of runs actually recorded.
func Summarize(results []TrialResult) Summary {
	var summary Summary
	index := make(map[string]int)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		i, ok := index[r.Strategy]
		if !ok {
			i = len(summary.Strategies)
			index[r.Strategy] = i
			summary.Strategies = append(summary.Strategies, StrategyStats{
				Name: r.Strategy, Min: r.Duration, Max: r.Duration,
			})
		}
		st := &summary.Strategies[i]
		st.Runs++
		st.Sum = r.Sum
		st.Total += r.Duration
		st.Min = min(st.Min, r.Duration)
		st.Max = max(st.Max, r.Duration)
	}
	for i := range summary.Strategies {
		st := &summary.Strategies[i]
		st.Average = st.Total / time.Duration(st.Runs)
	}

	seq, okSeq := summary.Stats(SequentialName)
	par, okPar := summary.Stats(ParallelName)
	if okSeq && okPar && seq.Average > 0 {
		summary.Speedup = 1 - float64(par.Average)/float64(seq.Average)
		summary.HasSpeedup = true
	}
	return summary
}
