// Package control turns held input actions into camera motion.
package control

import (
	"sync"
	"time"
)

// Action is a camera command bound to one or more keys.
type Action int

const (
	Forward Action = iota
	Back
	Left
	Right
	Up
	Down
	YawLeft
	YawRight
	PitchUp
	PitchDown
	ZoomIn
	ZoomOut
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	"forward", "back", "left", "right", "up", "down",
	"yaw-left", "yaw-right", "pitch-up", "pitch-down",
	"zoom-in", "zoom-out", "quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Set is a set of actions.
type Set uint32

// NewSet returns a set holding actions.
func NewSet(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns s with a added.
func (s Set) With(a Action) Set {
	return s | 1<<uint(a)
}

// Without returns s with a removed.
func (s Set) Without(a Action) Set {
	return s &^ (1 << uint(a))
}

// Has reports whether a is in s.
func (s Set) Has(a Action) bool {
	return s&(1<<uint(a)) != 0
}

// axis returns +1, -1 or 0 for a pair of opposing actions.
func (s Set) axis(pos, neg Action) float64 {
	var v float64
	if s.Has(pos) {
		v++
	}
	if s.Has(neg) {
		v--
	}
	return v
}

// State is the set of held actions, shared between an input goroutine and
// the render loop.
//
// Terminals report key presses but usually not releases, so an action can
// also be held for a fixed time with Tap; repeated presses extend it.
type State struct {
	mu     sync.Mutex
	sticky Set
	until  [actionCount]time.Time
}

// Press holds a until Release.
func (s *State) Press(a Action) {
	s.mu.Lock()
	s.sticky = s.sticky.With(a)
	s.mu.Unlock()
}

// Release stops holding a, whether it was pressed or tapped.
func (s *State) Release(a Action) {
	s.mu.Lock()
	s.sticky = s.sticky.Without(a)
	if a >= 0 && a < actionCount {
		s.until[a] = time.Time{}
	}
	s.mu.Unlock()
}

// Tap holds a until now+d.
func (s *State) Tap(a Action, now time.Time, d time.Duration) {
	if a < 0 || a >= actionCount {
		return
	}
	s.mu.Lock()
	if t := now.Add(d); t.After(s.until[a]) {
		s.until[a] = t
	}
	s.mu.Unlock()
}

// Held returns the actions held at now.
func (s *State) Held(now time.Time) Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	held := s.sticky
	for a := range actionCount {
		if now.Before(s.until[a]) {
			held = held.With(a)
		}
	}
	return held
}

// Clear releases every action.
func (s *State) Clear() {
	s.mu.Lock()
	s.sticky = 0
	s.until = [actionCount]time.Time{}
	s.mu.Unlock()
}

// Bindings maps each action to key names in ultraviolet's MatchString
// syntax.
type Bindings map[Action][]string

// DefaultBindings returns the standard layout: WASD or arrows to move,
// x and z for up and down, n and m to turn, u and j to look up and down,
// f and v to zoom.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:   {"w", "up"},
		Back:      {"s", "down"},
		Left:      {"a", "left"},
		Right:     {"d", "right"},
		Up:        {"x"},
		Down:      {"z"},
		YawLeft:   {"n"},
		YawRight:  {"m"},
		PitchUp:   {"u"},
		PitchDown: {"j"},
		ZoomIn:    {"f"},
		ZoomOut:   {"v"},
		Quit:      {"escape", "ctrl+c", "q"},
	}
}

// Match returns the first action, in Action order, whose keys satisfy
// match. It is typically called with a key event's MatchString method.
func (b Bindings) Match(match func(...string) bool) (Action, bool) {
	for a := range actionCount {
		if keys, ok := b[a]; ok && len(keys) > 0 && match(keys...) {
			return a, true
		}
	}
	return 0, false
}
