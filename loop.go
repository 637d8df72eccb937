package rowan

// maxDelta caps the per-frame delta time so a resumed or stalled process
// steps the simulation by at most a quarter second instead of tunneling
// sprites through walls.
const maxDelta = 0.25

// GameLoop is the top-level frame driver. It connects a SceneManager with
// the backend capabilities and executes the fixed per-frame sequence:
// poll events, update, render, present.
type GameLoop struct {
	manager  *SceneManager
	renderer Renderer
	events   EventSource
	clock    TimeSource
	quit     bool
}

// NewGameLoop wires a scene manager to backend adapters.
func NewGameLoop(manager *SceneManager, renderer Renderer, events EventSource, clock TimeSource) *GameLoop {
	return &GameLoop{
		manager:  manager,
		renderer: renderer,
		events:   events,
		clock:    clock,
	}
}

// Run executes frames until a quit event arrives or the active scene
// requests exit. A scene update error is fatal and propagates unchanged;
// the loop never swallows it.
func (l *GameLoop) Run() error {
	for {
		done, err := l.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step executes exactly one frame and reports whether the loop is finished.
// Backends that own their own outer loop (ebiten) call Step once per frame.
// Events are fully applied before the update, the update completes before
// the render, and the frame is always presented, even when no events were
// polled. A quit event or a pending scene exit request still finishes the
// current frame; the loop stops afterwards.
func (l *GameLoop) Step() (done bool, err error) {
	batch := l.events.Poll()
	for _, event := range batch {
		if event.Kind == EventQuit {
			l.quit = true
		}
	}
	l.manager.HandleEvents(batch)

	done = l.quit || l.manager.ShouldExit()

	dt := l.clock.Tick()
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}

	if err := l.manager.Update(dt); err != nil {
		return true, err
	}

	l.manager.Render(l.renderer)
	l.renderer.Present()
	return done, nil
}
