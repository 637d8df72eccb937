package rowan

// Scene is one screen of the game: a title menu, a playable map, a demo.
// The SceneManager routes the frame loop's events, update, and render calls
// to exactly one active scene.
type Scene interface {
	// OnEnter is called when the scene becomes active. It must leave the
	// scene renderable: a scene switched in mid-update is rendered the same
	// frame.
	OnEnter()
	// OnExit is called when the scene is replaced.
	OnExit()
	// HandleEvents processes this frame's input batch. It runs before
	// Update within the same frame.
	HandleEvents(events []InputEvent)
	// Update advances the scene by dt seconds. A returned error is fatal:
	// the game loop propagates it and terminates.
	Update(dt float64) error
	// Render issues draw calls for the current state. It never observes a
	// partially updated frame.
	Render(renderer Renderer)
	// ShouldExit reports whether the scene asked the loop to stop.
	ShouldExit() bool
}

// SceneBase provides the exit-request flag shared by every scene. Embed it
// and the embedding scene only needs to implement the hooks it cares about.
type SceneBase struct {
	exitRequested bool
}

// RequestExit asks the game loop to end after the current frame. It is
// cooperative: the loop checks the flag at the top of the next iteration,
// never mid-update.
func (b *SceneBase) RequestExit() { b.exitRequested = true }

// ShouldExit reports whether RequestExit was called.
func (b *SceneBase) ShouldExit() bool { return b.exitRequested }

// OnEnter is a no-op default.
func (b *SceneBase) OnEnter() {}

// OnExit is a no-op default.
func (b *SceneBase) OnExit() {}

// HandleEvents is a no-op default.
func (b *SceneBase) HandleEvents(events []InputEvent) {}

// SceneManager owns the single active scene and coordinates its lifecycle
// hooks. The initial scene's OnEnter fires at construction.
type SceneManager struct {
	current Scene
	config  Config
}

// NewSceneManager creates a manager with the given initial scene, calling
// its OnEnter. initial may be nil; frames are then no-ops until SwitchTo.
func NewSceneManager(initial Scene, config Config) *SceneManager {
	m := &SceneManager{config: config}
	if initial != nil {
		m.SwitchTo(initial)
	}
	return m
}

// Current returns the active scene, or nil.
func (m *SceneManager) Current() Scene { return m.current }

// Config returns the shared configuration.
func (m *SceneManager) Config() Config { return m.config }

// ConfigAware scenes receive the manager's shared Config before OnEnter.
type ConfigAware interface {
	SetConfig(config Config)
}

// SwitchTo replaces the active scene. The outgoing scene's OnExit always
// runs before the incoming scene's OnEnter. Safe to call from within a
// scene's Update; the new scene renders its first frame normally.
func (m *SceneManager) SwitchTo(scene Scene) {
	if m.current != nil {
		m.current.OnExit()
	}
	if aware, ok := scene.(ConfigAware); ok {
		aware.SetConfig(m.config)
	}
	m.current = scene
	m.current.OnEnter()
}

// HandleEvents forwards the frame's input batch to the active scene.
func (m *SceneManager) HandleEvents(events []InputEvent) {
	if m.current != nil {
		m.current.HandleEvents(events)
	}
}

// Update advances the active scene.
func (m *SceneManager) Update(dt float64) error {
	if m.current == nil {
		return nil
	}
	return m.current.Update(dt)
}

// Render draws the active scene.
func (m *SceneManager) Render(renderer Renderer) {
	if m.current != nil {
		m.current.Render(renderer)
	}
}

// ShouldExit reports whether the active scene requested ending the loop.
func (m *SceneManager) ShouldExit() bool {
	return m.current != nil && m.current.ShouldExit()
}
