package pump

import "go.uber.org/zap/zapcore"

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("polls", s.Polls)
	enc.AddUint64("written", s.Written)
	enc.AddUint64("read", s.Read)
	enc.AddUint64("rejected", s.Rejected)
	enc.AddUint64("dropped", s.Dropped)
	enc.AddUint64("gaps", s.Gaps)
	enc.AddInt("max_fill", s.MaxFill)
	enc.AddInt("max_available", s.MaxAvailable)
	enc.AddUint64("count", s.Count)
	if s.Elapsed > 0 {
		enc.AddDuration("elapsed", s.Elapsed)
	}
	return nil
}

// Pending returns the samples accepted but neither read nor dropped.
func (s Stats) Pending() uint64 {
	return s.Written - s.Read - s.Dropped
}
