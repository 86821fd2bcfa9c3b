package engine

import "github.com/mobile-next/facepointer/types"

// HistorySize bounds the raw sample history kept by the motion filter.
const HistorySize = 100

// MotionFilter turns raw head samples into per-tick cursor offsets:
// velocity, per-direction scaling, then an exponential step filter.
type MotionFilter struct {
	prevRaw  types.Vec2
	prevStep types.Vec2
	seeded   bool

	// ring buffer of raw samples, oldest at head
	history [HistorySize]types.Vec2
	head    int
	count   int
}

// NewMotionFilter returns a filter with empty state.
func NewMotionFilter() *MotionFilter {
	return &MotionFilter{}
}

// Offset consumes one raw sample and returns how far the cursor should move
// this tick. gapFrames is the number of ticks since the tracker last produced
// a sample; values below 1 are treated as 1.
func (f *MotionFilter) Offset(raw types.Vec2, gapFrames int, cfg Config) types.Vec2 {
	if gapFrames < 1 {
		gapFrames = 1
	}

	// first sample only establishes the reference point
	if !f.seeded {
		f.prevRaw = raw
		f.seeded = true
	}

	vel := types.Vec2{X: raw.X - f.prevRaw.X, Y: raw.Y - f.prevRaw.Y}
	f.prevRaw = raw
	vel = scaleAsymmetric(vel, cfg)

	n := float64(max(cfg.Smoothing, 0))
	gap := float64(gapFrames)
	step := types.Vec2{
		X: (n*f.prevStep.X + vel.X/gap) / (n + 1),
		Y: (n*f.prevStep.Y + vel.Y/gap) / (n + 1),
	}
	f.prevStep = step

	f.record(raw)
	return step
}

// scaleAsymmetric applies the direction dependent speed multipliers.
func scaleAsymmetric(vel types.Vec2, cfg Config) types.Vec2 {
	mx := cfg.LeftSpeed
	if vel.X > 0 {
		mx = cfg.RightSpeed
	}
	my := cfg.UpSpeed
	if vel.Y > 0 {
		my = cfg.DownSpeed
	}
	return types.Vec2{X: vel.X * mx, Y: vel.Y * my}
}

func (f *MotionFilter) record(raw types.Vec2) {
	if f.count < HistorySize {
		f.history[(f.head+f.count)%HistorySize] = raw
		f.count++
		return
	}
	f.history[f.head] = raw
	f.head = (f.head + 1) % HistorySize
}

// History returns the retained raw samples, oldest first.
func (f *MotionFilter) History() []types.Vec2 {
	out := make([]types.Vec2, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.history[(f.head+i)%HistorySize]
	}
	return out
}

// PreviousStep returns the last smoothed offset.
func (f *MotionFilter) PreviousStep() types.Vec2 {
	return f.prevStep
}

// Reseed keeps the history but makes the next sample the new reference
// point, so motion that happened while the cursor was frozen is not replayed.
func (f *MotionFilter) Reseed() {
	f.seeded = false
	f.prevStep = types.Vec2{}
}
