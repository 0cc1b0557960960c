package gltfdoc

import "errors"

// Failure categories for one extraction run. Every error returned by this
// package and by the extractors wraps exactly one of these, so callers can
// classify with errors.Is while the message carries the diagnostic detail
// (which accessor, expected vs. actual type).
var (
	ErrStructuralViolation      = errors.New("structural violation")
	ErrTypeMismatch             = errors.New("accessor type mismatch")
	ErrUnsupportedAnimationPath = errors.New("unsupported animation path")
	ErrIO                       = errors.New("io failure")
)
