package rowan

import "testing"

// probeScene records lifecycle calls into a shared log.
type probeScene struct {
	SceneBase
	name string
	log  *[]string

	config    Config
	hasConfig bool
	onUpdate  func(dt float64) error
}

func (s *probeScene) record(event string) { *s.log = append(*s.log, s.name+"."+event) }

func (s *probeScene) OnEnter() { s.record("enter") }
func (s *probeScene) OnExit()  { s.record("exit") }

func (s *probeScene) SetConfig(config Config) {
	s.config = config
	s.hasConfig = true
	s.record("config")
}

func (s *probeScene) Update(dt float64) error {
	s.record("update")
	if s.onUpdate != nil {
		return s.onUpdate(dt)
	}
	return nil
}

func (s *probeScene) Render(renderer Renderer) { s.record("render") }

func TestManagerEntersInitialScene(t *testing.T) {
	var log []string
	a := &probeScene{name: "a", log: &log}
	NewSceneManager(a, Config{})
	if len(log) < 1 || log[len(log)-1] != "a.enter" {
		t.Errorf("log = %v, want initial enter", log)
	}
}

func TestManagerSwitchExitsBeforeEnter(t *testing.T) {
	var log []string
	a := &probeScene{name: "a", log: &log}
	b := &probeScene{name: "b", log: &log}
	m := NewSceneManager(a, Config{})

	log = log[:0]
	m.SwitchTo(b)
	want := []string{"a.exit", "b.config", "b.enter"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestManagerDeliversConfig(t *testing.T) {
	var log []string
	a := &probeScene{name: "a", log: &log}
	NewSceneManager(a, Config{DebugCollision: true})
	if !a.hasConfig || !a.config.DebugCollision {
		t.Error("scene did not receive the shared config before enter")
	}
}

func TestManagerSwitchDuringUpdate(t *testing.T) {
	var log []string
	b := &probeScene{name: "b", log: &log}
	a := &probeScene{name: "a", log: &log}
	m := NewSceneManager(a, Config{})
	a.onUpdate = func(float64) error {
		m.SwitchTo(b)
		return nil
	}

	if err := m.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	log = log[:0]
	m.Render(nil)
	if len(log) != 1 || log[0] != "b.render" {
		t.Errorf("log = %v, want the switched-in scene to render", log)
	}
}

func TestManagerNilSceneFramesAreNoOps(t *testing.T) {
	m := NewSceneManager(nil, Config{})
	m.HandleEvents(nil)
	if err := m.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	m.Render(nil)
	if m.ShouldExit() {
		t.Error("empty manager reports exit")
	}
}

func TestManagerRoutesExitRequest(t *testing.T) {
	var log []string
	a := &probeScene{name: "a", log: &log}
	m := NewSceneManager(a, Config{})
	if m.ShouldExit() {
		t.Error("exit requested before scene asked")
	}
	a.RequestExit()
	if !m.ShouldExit() {
		t.Error("exit request not visible through the manager")
	}
}
