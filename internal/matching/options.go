package matching

import (
	"runtime"
	"time"
)

// Default admissibility thresholds. Earlier iterations of the matcher carried
// slightly drifted copies of these constants; this table is the canonical set.
const (
	DefaultDirectRadiusKm       = 50.0
	DefaultReturnTripRadiusKm   = 100.0
	DefaultLoopRadiusKm         = 75.0
	DefaultGroupedRadiusKm      = 100.0
	DefaultClientPairRadiusKm   = 50.0
	DefaultDirectWindowDays     = 3
	DefaultReturnTripWindowDays = 7
	DefaultLoopWindowDays       = 5
	DefaultGroupedWindowDays    = 15
	DefaultClientPairWindowDays = 7

	// DefaultVolumeM3 is assumed when a request leaves its volume unset.
	DefaultVolumeM3 = 5.0
	// DefaultStandardVehicleM3 is the nominal capacity a client-to-client
	// pair is checked against to flag "feasible" vs "needs dedicated carrier".
	DefaultStandardVehicleM3 = 20.0

	DefaultMaxCandidates     = 20
	DefaultProviderBatchSize = 25
)

// Default scoring weights. Scores only order candidates within one run;
// scenario bonuses rank strategies by how much otherwise-wasted capacity
// they reuse: loop > return_trip > grouped_outbound > direct.
const (
	DefaultScoreBase            = 100.0
	DefaultDistancePenaltyPerKm = 0.5
	DefaultDatePenaltyPerDay    = 2.0
	DefaultVolumeBonusWeight    = 20.0

	DefaultLoopBonus       = 15.0
	DefaultReturnTripBonus = 12.0
	DefaultGroupedBonus    = 8.0
	DefaultClientPairBonus = 6.0
	DefaultDirectBonus     = 5.0
)

// Options carries every tunable of the engine so the concurrency model and
// thresholds are testable independent of the business logic.
type Options struct {
	DirectRadiusKm     float64
	ReturnTripRadiusKm float64
	LoopRadiusKm       float64
	GroupedRadiusKm    float64
	ClientPairRadiusKm float64

	DirectWindowDays     int
	ReturnTripWindowDays int
	LoopWindowDays       int
	GroupedWindowDays    int
	ClientPairWindowDays int

	DefaultVolumeM3   float64
	StandardVehicleM3 float64

	// MaxCandidates bounds the ranked list returned by a run; zero means
	// unbounded.
	MaxCandidates int
	// WorkerCount sizes the pair-evaluation pool; zero means GOMAXPROCS.
	WorkerCount int
	// ProviderBatchSize bounds locations per provider call during pre-warm.
	ProviderBatchSize int

	Weights ScoreWeights

	// Now supplies the run clock; injectable for deterministic tests.
	Now func() time.Time
}

// ScoreWeights parameterizes the scoring formula.
type ScoreWeights struct {
	Base                 float64
	DistancePenaltyPerKm float64
	DatePenaltyPerDay    float64
	VolumeBonusWeight    float64

	LoopBonus       float64
	ReturnTripBonus float64
	GroupedBonus    float64
	ClientPairBonus float64
	DirectBonus     float64
}

// DefaultOptions returns the canonical threshold table and weights.
func DefaultOptions() Options {
	return Options{
		DirectRadiusKm:     DefaultDirectRadiusKm,
		ReturnTripRadiusKm: DefaultReturnTripRadiusKm,
		LoopRadiusKm:       DefaultLoopRadiusKm,
		GroupedRadiusKm:    DefaultGroupedRadiusKm,
		ClientPairRadiusKm: DefaultClientPairRadiusKm,

		DirectWindowDays:     DefaultDirectWindowDays,
		ReturnTripWindowDays: DefaultReturnTripWindowDays,
		LoopWindowDays:       DefaultLoopWindowDays,
		GroupedWindowDays:    DefaultGroupedWindowDays,
		ClientPairWindowDays: DefaultClientPairWindowDays,

		DefaultVolumeM3:   DefaultVolumeM3,
		StandardVehicleM3: DefaultStandardVehicleM3,

		MaxCandidates:     DefaultMaxCandidates,
		WorkerCount:       0,
		ProviderBatchSize: DefaultProviderBatchSize,

		Weights: ScoreWeights{
			Base:                 DefaultScoreBase,
			DistancePenaltyPerKm: DefaultDistancePenaltyPerKm,
			DatePenaltyPerDay:    DefaultDatePenaltyPerDay,
			VolumeBonusWeight:    DefaultVolumeBonusWeight,
			LoopBonus:            DefaultLoopBonus,
			ReturnTripBonus:      DefaultReturnTripBonus,
			GroupedBonus:         DefaultGroupedBonus,
			ClientPairBonus:      DefaultClientPairBonus,
			DirectBonus:          DefaultDirectBonus,
		},

		Now: time.Now,
	}
}

// workerCount resolves the effective pool width.
func (o Options) workerCount() int {
	if o.WorkerCount > 0 {
		return o.WorkerCount
	}
	return runtime.GOMAXPROCS(0)
}

// batchSize resolves the effective provider batch size.
func (o Options) batchSize() int {
	if o.ProviderBatchSize > 0 {
		return o.ProviderBatchSize
	}
	return DefaultProviderBatchSize
}

// now resolves the run clock.
func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
