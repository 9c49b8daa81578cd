package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/autoplay"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games     int
	Seed      int64
	DrawCount int
	Policy    string
	Workers   int
	MaxMoves  int
	Timeout   time.Duration // per game; zero means no limit
	Logger    *log.Logger
}

// Simulator plays batches of seeded Klondike games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.DrawCount == 0 {
		config.DrawCount = klondike.DefaultDrawCount
	}
	if config.Policy == "" {
		config.Policy = "greedy"
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config}
}

// Run plays Config.Games games in parallel. Game i is dealt from seed
// Seed+i, so a run is reproducible regardless of the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	start := time.Now()
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.PlayGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"wins", stats.Wins,
		"policy", s.config.Policy,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// PlayGame deals the game for seed and plays it out. Every intermediate
// state is validated; a violation is returned as an error.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	state, err := klondike.Deal(deck.NewDeck(rng), s.config.DrawCount)
	if err != nil {
		return statistics.GameResult{}, err
	}
	policy, err := autoplay.NewPolicy(s.config.Policy, rng)
	if err != nil {
		return statistics.GameResult{}, err
	}

	res, err := autoplay.Play(ctx, state, policy, autoplay.Options{
		MaxMoves: s.config.MaxMoves,
		Validate: true,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return statistics.GameResult{}, fmt.Errorf("game timed out after %v: %w", s.config.Timeout, err)
	}
	if err != nil {
		return statistics.GameResult{}, err
	}

	s.config.Logger.Debug("Game finished",
		"seed", seed,
		"reason", res.Reason,
		"moves", res.Moves,
		"foundation", res.Foundation)

	return statistics.GameResult{
		Seed:       seed,
		DrawCount:  s.config.DrawCount,
		Won:        res.Won(),
		Moves:      res.Moves,
		Draws:      res.Draws,
		Foundation: res.Foundation,
		Reason:     res.Reason.String(),
	}, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, seed int64, drawCount int, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:     games,
		Seed:      seed,
		DrawCount: drawCount,
		Logger:    logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results to w
func PrintSummary(w io.Writer, stats *statistics.Statistics, policy string, drawCount int) {
	low, high := stats.WinRateInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s policy, draw %d ===\n", policy, drawCount)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Games won: %d (%.2f%%, 95%% CI [%.2f%%, %.2f%%])\n",
		stats.Wins, stats.WinRate()*100, low*100, high*100)

	fmt.Fprintf(w, "\n=== FOUNDATION CARDS ===\n")
	fmt.Fprintf(w, "Mean: %.2f  Median: %.1f  Std Dev: %.2f  Std Error: %.3f\n",
		stats.Mean(), stats.Median(), stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== MOVES ===\n")
	fmt.Fprintf(w, "Average per game: %.1f (%.1f draws)\n",
		stats.AvgMoves(), float64(stats.SumDraws)/float64(max(stats.Games, 1)))
	if stats.Wins > 0 {
		fmt.Fprintf(w, "Winning games: %.1f average, %d fewest, %d most\n",
			stats.AvgWinMoves(), stats.FewestWinMoves, stats.MostWinMoves)
	}

	fmt.Fprintf(w, "\n=== ENDINGS ===\n")
	reasons := make([]string, 0, len(stats.Reasons))
	for r := range stats.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		n := stats.Reasons[r]
		fmt.Fprintf(w, "%-12s %6d (%.1f%%)\n", r, n, float64(n)/float64(stats.Games)*100)
	}
}
