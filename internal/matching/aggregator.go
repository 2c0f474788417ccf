package matching

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/platform/obs"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// RunSummary is the outcome of one aggregation pass: the ranked candidate
// list plus the counters callers surface to operators.
type RunSummary struct {
	Candidates []domain.MatchCandidate

	RequestsConsidered int
	TripsConsidered    int
	PairsEvaluated     int

	// FallbackLookups counts distance lookups that degraded to the postal
	// estimate during this run. Non-zero means the run completed on
	// degraded-but-valid distances.
	FallbackLookups int64
	Degraded        bool

	// Interrupted reports that cancellation stopped pair dispatch early.
	// The candidates already evaluated are still ranked and returned.
	Interrupted bool
}

// Aggregator cross-products client requests against carrier trips (and
// against each other), runs every applicable scenario, packs grouped
// consolidations per trip and returns one ranked candidate list.
//
// Trips are read-only within a run: packing computes would-be residuals and
// never decrements volume in place.
type Aggregator struct {
	requests ports.RequestRepository
	trips    ports.TripRepository
	resolver *Resolver
	opts     Options
}

func NewAggregator(
	requests ports.RequestRepository,
	trips ports.TripRepository,
	resolver *Resolver,
	opts Options,
) *Aggregator {
	return &Aggregator{requests: requests, trips: trips, resolver: resolver, opts: opts}
}

// pairJob is one independent evaluation unit dispatched to the worker pool.
// Either trip is set (request-vs-trip scenarios) or partner is set
// (client-to-client).
type pairJob struct {
	request *domain.ClientRequest
	trip    *domain.CarrierTrip
	partner *domain.ClientRequest
}

// pairOutcome carries everything one job produced: zero or more candidate
// drafts plus, for an admissible grouped evaluation, the pack item the
// per-trip packer consumes after the pool drains.
type pairOutcome struct {
	candidates  []*domain.MatchCandidate
	groupedTrip int
	groupedItem *PackItem
}

// FindAllMatches runs one full matching pass.
//
// A data store read failure is fatal: an empty result set is a valid outcome,
// a failed read is not. Distance provider degradation is absorbed by the
// resolver and only surfaces as a warning count in the summary.
func (a *Aggregator) FindAllMatches(ctx context.Context) (_ *RunSummary, err error) {
	defer obs.Time(ctx, "matching.FindAllMatches")(&err)

	requests, err := a.requests.ListOpenRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("find matches: list open requests: %w", err)
	}
	trips, err := a.trips.ListAvailableTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("find matches: list available trips: %w", err)
	}

	now := a.opts.now()

	matchableRequests := make([]*domain.ClientRequest, 0, len(requests))
	for _, r := range requests {
		r.Normalize(a.opts.DefaultVolumeM3)
		if r.Matchable(now) {
			matchableRequests = append(matchableRequests, r)
		}
	}
	matchableTrips := make([]*domain.CarrierTrip, 0, len(trips))
	for _, t := range trips {
		if t.Matchable(now) {
			matchableTrips = append(matchableTrips, t)
		}
	}

	fallbacksBefore := a.resolver.FallbackCount()

	// Warm the distance cache up front so pair evaluation stays pure
	// in-memory computation.
	locations := make([]domain.Location, 0, 2*(len(matchableRequests)+len(matchableTrips)))
	for _, r := range matchableRequests {
		locations = append(locations, r.Departure, r.Arrival)
	}
	for _, t := range matchableTrips {
		locations = append(locations, t.Departure, t.Arrival)
	}
	if err := a.resolver.PrewarmMatrix(ctx, locations); err != nil {
		return nil, fmt.Errorf("find matches: prewarm distance cache: %w", err)
	}

	jobs := buildJobs(matchableRequests, matchableTrips)
	outcomes, interrupted := a.evaluatePairs(ctx, jobs)

	tripsByID := make(map[int]*domain.CarrierTrip, len(matchableTrips))
	for _, t := range matchableTrips {
		tripsByID[t.TripID] = t
	}

	candidates := make([]*domain.MatchCandidate, 0, len(outcomes))
	groupedByTrip := make(map[int][]PackItem)
	for _, out := range outcomes {
		candidates = append(candidates, out.candidates...)
		if out.groupedItem != nil {
			groupedByTrip[out.groupedTrip] = append(groupedByTrip[out.groupedTrip], *out.groupedItem)
		}
	}

	// One packer pass per trip; a trip yields at most one grouped candidate
	// per run.
	for tripID, items := range groupedByTrip {
		trip := tripsByID[tripID]
		if trip == nil {
			continue
		}
		pack := PackByVolume(items, trip.AvailableVolumeM3())
		if c := buildGroupedCandidate(trip, pack); c != nil {
			candidates = append(candidates, c)
		}
	}

	for _, c := range candidates {
		availableBefore := a.opts.StandardVehicleM3
		if trip, ok := tripsByID[c.TripID]; ok && c.TripID != 0 {
			availableBefore = trip.AvailableVolumeM3()
		}
		c.Score = scoreCandidate(c, availableBefore, a.opts.Weights)
	}

	sortCandidates(candidates)

	if a.opts.MaxCandidates > 0 && len(candidates) > a.opts.MaxCandidates {
		candidates = candidates[:a.opts.MaxCandidates]
	}

	ranked := make([]domain.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, *c)
	}

	fallbacks := a.resolver.FallbackCount() - fallbacksBefore
	summary := &RunSummary{
		Candidates:         ranked,
		RequestsConsidered: len(matchableRequests),
		TripsConsidered:    len(matchableTrips),
		PairsEvaluated:     len(jobs),
		FallbackLookups:    fallbacks,
		Degraded:           fallbacks > 0,
		Interrupted:        interrupted,
	}

	if summary.Degraded {
		log.Printf(
			"matching run degraded: fallback_lookups=%d requests=%d trips=%d",
			fallbacks, len(matchableRequests), len(matchableTrips),
		)
	}

	return summary, nil
}

// buildJobs lays out every independent evaluation unit: each (request, trip)
// pair plus each unordered (request, request) pair.
func buildJobs(requests []*domain.ClientRequest, trips []*domain.CarrierTrip) []pairJob {
	jobs := make([]pairJob, 0, len(requests)*len(trips)+len(requests)*len(requests)/2)
	for _, r := range requests {
		for _, t := range trips {
			jobs = append(jobs, pairJob{request: r, trip: t})
		}
	}
	for i := 0; i < len(requests); i++ {
		for j := i + 1; j < len(requests); j++ {
			jobs = append(jobs, pairJob{request: requests[i], partner: requests[j]})
		}
	}
	return jobs
}

// evaluatePairs fans jobs out over a bounded worker pool. Cancellation stops
// dispatching new jobs; workers already evaluating finish their job, since a
// partial candidate set is still meaningful once re-sorted.
func (a *Aggregator) evaluatePairs(ctx context.Context, jobs []pairJob) ([]pairOutcome, bool) {
	evaluator := NewEvaluator(a.resolver, a.opts)

	jobCh := make(chan pairJob)
	outCh := make(chan pairOutcome, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < a.opts.workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outCh <- a.evaluateJob(ctx, evaluator, job)
			}
		}()
	}

	interrupted := false
dispatch:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			interrupted = true
			break dispatch
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()
	close(outCh)

	outcomes := make([]pairOutcome, 0, len(jobs))
	for out := range outCh {
		outcomes = append(outcomes, out)
	}
	return outcomes, interrupted
}

// evaluateJob runs every applicable scenario for one pair.
func (a *Aggregator) evaluateJob(ctx context.Context, e *Evaluator, job pairJob) pairOutcome {
	var out pairOutcome

	if job.trip != nil {
		for _, matchType := range tripStrategies {
			if c := buildTripCandidate(ctx, e, matchType, job.request, job.trip); c != nil {
				out.candidates = append(out.candidates, c)
			}
		}
		// grouped_outbound admissibility feeds the per-trip packer instead
		// of producing a candidate directly.
		if ev := e.EvaluateTripMatch(ctx, domain.MatchGroupedOutbound, job.request, job.trip); ev != nil {
			item := groupedPackItem(ev, job.request)
			out.groupedTrip = job.trip.TripID
			out.groupedItem = &item
		}
		return out
	}

	// Client-to-client: the chained orientation is asymmetric, so try the
	// reverse pairing when the forward one is inadmissible.
	if c := buildClientPairCandidate(ctx, e, job.request, job.partner); c != nil {
		out.candidates = append(out.candidates, c)
	} else if c := buildClientPairCandidate(ctx, e, job.partner, job.request); c != nil {
		out.candidates = append(out.candidates, c)
	}
	return out
}

// sortCandidates orders by descending score with a full deterministic
// tie-break so identical inputs always rank identically.
func sortCandidates(candidates []*domain.MatchCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.RequestID != b.RequestID {
			return a.RequestID < b.RequestID
		}
		if a.TripID != b.TripID {
			return a.TripID < b.TripID
		}
		return a.PartnerRequestID < b.PartnerRequestID
	})
}
