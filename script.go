package rowan

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// scriptKeys maps script key names to logical keys.
var scriptKeys = map[string]Key{
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"enter": KeyEnter,
}

// ScriptedEvents is an EventSource that replays a JSON-scripted sequence of
// key presses, releases, and waits, one step per polled frame. It drives a
// GameLoop deterministically with no real input backend — the loop's tests
// and headless demos run on it.
type ScriptedEvents struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a JSON input script.
//
//	{"steps": [
//		{"action": "press", "key": "right"},
//		{"action": "wait", "frames": 10},
//		{"action": "release", "key": "right"},
//		{"action": "quit"}
//	]}
func LoadInputScript(jsonData []byte) (*ScriptedEvents, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("rowan: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("rowan: parse input script: no steps")
	}
	for i, step := range script.Steps {
		switch step.Action {
		case "press", "release":
			if _, ok := scriptKeys[step.Key]; !ok {
				return nil, fmt.Errorf("rowan: parse input script: step %d has unknown key %q", i, step.Key)
			}
		case "wait", "quit":
		default:
			return nil, fmt.Errorf("rowan: parse input script: step %d has unknown action %q", i, step.Action)
		}
	}
	return &ScriptedEvents{steps: script.Steps}, nil
}

// Done reports whether every step has been replayed.
func (s *ScriptedEvents) Done() bool { return s.done }

// Poll emits the next step's events. Wait steps emit nothing for their frame
// count; an exhausted script emits nothing forever.
func (s *ScriptedEvents) Poll() []InputEvent {
	if s.done {
		return nil
	}
	if s.waitCount > 0 {
		s.waitCount--
		return nil
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}

	step := s.steps[s.cursor]
	s.cursor++
	if s.cursor >= len(s.steps) && step.Action != "wait" {
		s.done = true
	}

	switch step.Action {
	case "press":
		return []InputEvent{{Kind: EventKeyDown, Key: scriptKeys[step.Key]}}
	case "release":
		return []InputEvent{{Kind: EventKeyUp, Key: scriptKeys[step.Key]}}
	case "quit":
		return []InputEvent{{Kind: EventQuit}}
	case "wait":
		if step.Frames > 0 {
			s.waitCount = step.Frames - 1 // this frame counts as one
		}
	}
	return nil
}

// FixedClock is a TimeSource that reports the same delta every tick. It
// pairs with ScriptedEvents for frame-exact simulation runs.
type FixedClock struct {
	// Delta is the seconds reported by every Tick.
	Delta float64
}

// Tick returns the fixed delta.
func (c FixedClock) Tick() float64 { return c.Delta }
