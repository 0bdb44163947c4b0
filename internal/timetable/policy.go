package timetable

// Policy collects every scoring constant and search bound the engine
// uses. The values are tuned heuristics, not invariants; tests pin the
// defaults and callers may override individual knobs.
type Policy struct {
	// Search bounds.
	MaxVariants     int // distinct variants the backtracking search may emit
	MaxKeptVariants int // variants surviving diversity selection

	// Selection-pass scorer (lower is better).
	GapPenaltyExponent float64 // exponent applied to the average gap
	CoverageWeight     float64 // subtracted per unique course

	// Mix scoring during the search.
	MixNewDay        int // slot lands on a day with no classes yet
	MixNewType       int // slot type absent from that day so far
	MixKeepsPattern  int // day already mixes types, slot fits in
	MixRepeatsType   int // slot repeats an already-present type
	MixPatternDayMin int // classes on a day before mix scoring applies

	// Presentation-pass ranker (higher is better).
	CourseWeight        float64 // per unique course
	CompactnessWeight   float64 // applied to the compactness ratio
	MixWeight           float64 // applied to the normalized mix score
	EarlyClassPenalty   float64 // per slot starting before EarlyMorningCutoff
	EarlyMorningCutoff  int     // minutes from midnight
	GapScoreBase        float64
	TightGapThreshold   float64 // average gaps below this are penalized lightly
	TightGapPenalty     float64 // per minute under the tight threshold
	WideGapThreshold    float64 // average gaps above this are penalized harder
	WideGapPenalty      float64 // per minute over the wide threshold
	DaySpreadWeight     float64 // per day carrying classes
	DayImbalancePenalty float64 // per course deviation from IdealCoursesPerDay
	IdealCoursesPerDay  float64
	AlternatingDayBonus float64 // day strictly alternates class types
	MixedDayBonus       float64 // day mixes types without alternating
}

// DefaultPolicy returns the documented heuristic constants.
func DefaultPolicy() Policy {
	return Policy{
		MaxVariants:     20,
		MaxKeptVariants: 20,

		GapPenaltyExponent: 1.5,
		CoverageWeight:     1000,

		MixNewDay:        5,
		MixNewType:       10,
		MixKeepsPattern:  8,
		MixRepeatsType:   2,
		MixPatternDayMin: 2,

		CourseWeight:        150,
		CompactnessWeight:   0.8,
		MixWeight:           15,
		EarlyClassPenalty:   15,
		EarlyMorningCutoff:  9 * 60,
		GapScoreBase:        100,
		TightGapThreshold:   10,
		TightGapPenalty:     3,
		WideGapThreshold:    20,
		WideGapPenalty:      2,
		DaySpreadWeight:     10,
		DayImbalancePenalty: 5,
		IdealCoursesPerDay:  3,
		AlternatingDayBonus: 20,
		MixedDayBonus:       10,
	}
}
