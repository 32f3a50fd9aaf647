package runner

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/outbreak/internal/config"
	"github.com/vovakirdan/outbreak/internal/logging"
)

// SweepOptions control a multi-seed sweep.
type SweepOptions struct {
	Scenario string
	Runs     int
	BaseSeed int64 // run i uses BaseSeed + i
	MaxTicks int
	Workers  int // 0 = GOMAXPROCS

	// Progress, if set, is called once per finished run. Calls are
	// serialized and done counts up by one each time.
	Progress func(done, total int)

	Logger *log.Logger
}

// SweepReport aggregates a sweep. Results are in seed order.
type SweepReport struct {
	Scenario string
	Results  []Result

	Infections int // agents ever infected, over all runs
	Deaths     int
	Recoveries int

	CaseFatality   float64 // deaths / (deaths + recoveries)
	StdErr         float64 // binomial standard error of CaseFatality
	ExpectedCFR    float64 // analytic fatality of the resolved cases pooled in CaseFatality
	MeanAttackRate float64
	MeanTicks      float64
}

// Sweep runs Runs independent outbreaks with consecutive seeds on a pool of
// workers. Each run owns its own random source, so the report does not
// depend on the number of workers. The first failing run cancels the rest.
func Sweep(ctx context.Context, cfg config.OutbreakConfig, opts SweepOptions) (SweepReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return SweepReport{}, err
	}
	runs := max(opts.Runs, 1)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	baseSeed := opts.BaseSeed
	if baseSeed == 0 {
		baseSeed = 1
	}

	report := SweepReport{Scenario: opts.Scenario, Results: make([]Result, runs)}

	var (
		mu   sync.Mutex
		done int
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, runs))
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			res, err := Run(ctx, cfg, Options{
				Scenario: opts.Scenario,
				Seed:     baseSeed + int64(i),
				MaxTicks: opts.MaxTicks,
			})
			if err != nil {
				return err
			}
			res.Curve = nil
			report.Results[i] = res

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, runs)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SweepReport{}, err
	}

	report.summarize(cfg)
	logger.Info("sweep finished",
		"scenario", opts.Scenario,
		"runs", runs,
		"cfr", report.CaseFatality,
		"expected", report.ExpectedCFR,
	)
	return report, nil
}

func (r *SweepReport) summarize(cfg config.OutbreakConfig) {
	var attack, ticks float64
	for _, res := range r.Results {
		r.Deaths += res.Final.Dead
		r.Recoveries += res.Final.Recovered
		r.Infections += res.Population - res.Final.Susceptible
		if res.Population > 0 {
			attack += float64(res.Population-res.Final.Susceptible) / float64(res.Population)
		}
		ticks += float64(res.Ticks)
	}
	n := float64(len(r.Results))
	if n > 0 {
		r.MeanAttackRate = attack / n
		r.MeanTicks = ticks / n
	}
	if resolved := r.Deaths + r.Recoveries; resolved > 0 {
		p := float64(r.Deaths) / float64(resolved)
		r.CaseFatality = p
		r.StdErr = math.Sqrt(p * (1 - p) / float64(resolved))
	}
	r.ExpectedCFR = pooledCaseFatality(r.Results, cfg.Simulation.Params().DeathChancePerTick(), cfg.Simulation.LengthOfInfection)
}

// pooledCaseFatality weights the analytic fatality by the cases each run
// resolved: patient zero at PatientZeroCaseFatality once it is resolved,
// everyone else at ExpectedCaseFatality. Agents still infected at the tick
// cap are not in the pool, matching CaseFatality.
func pooledCaseFatality(results []Result, hazard float64, lengthOfInfection int) float64 {
	zeroCFR := PatientZeroCaseFatality(hazard, lengthOfInfection)
	midCFR := ExpectedCaseFatality(hazard, lengthOfInfection)

	var cases, deaths float64
	for _, res := range results {
		resolved := res.Final.Dead + res.Final.Recovered
		if resolved == 0 {
			continue
		}
		// Patient zero has certainly resolved once its infection has run
		// its course or nobody is left infected.
		zero := 0
		if res.Ticks > lengthOfInfection || res.Final.Infected == 0 {
			zero = 1
		}
		cases += float64(resolved)
		deaths += float64(zero)*zeroCFR + float64(resolved-zero)*midCFR
	}
	if cases == 0 {
		return midCFR
	}
	return deaths / cases
}

// ExpectedCaseFatality is the probability that an agent infected mid-run
// dies: the hazard applies on the infection tick and on each of the
// lengthOfInfection+1 ticks after it, the last of which is the recovery
// tick.
func ExpectedCaseFatality(hazard float64, lengthOfInfection int) float64 {
	return 1 - math.Pow(1-hazard, float64(lengthOfInfection+2))
}

// PatientZeroCaseFatality is the probability that patient zero dies. It is
// infected by Start at tick 0, where no progression runs, so it faces one
// roll fewer than a mid-run infection.
func PatientZeroCaseFatality(hazard float64, lengthOfInfection int) float64 {
	return 1 - math.Pow(1-hazard, float64(lengthOfInfection+1))
}
