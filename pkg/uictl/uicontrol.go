// Package uictl defines small read-only controls that UI components poll.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// Levels is a control that can read a window of recent sample levels.
type Levels[N Number] interface {
	Read() []N
}

// DialFunc adapts a function to a Dial.
type DialFunc[N Number] func() N

// Read calls f.
func (f DialFunc[N]) Read() N {
	return f()
}

// LevelsFunc adapts a function to Levels.
type LevelsFunc[N Number] func() []N

// Read calls f.
func (f LevelsFunc[N]) Read() []N {
	return f()
}
