package rowan

import (
	"math"
	"testing"
)

func patrolNPC(t *testing.T, x, y, speed float64) *NPCMapSprite {
	t.Helper()
	npc := NewNPCMapSprite(walkSheet(t, "npc"))
	npc.X, npc.Y = x, y
	npc.Speed = speed
	return npc
}

func TestControllerHeadsTowardWaypoint(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, PathRoute{Waypoints: []Vec2{{X: 30, Y: 40}}})
	c.OnEnter()

	c.Update(0.1, nil)
	assertVec(t, "velocity", npc.Velocity, Vec2{X: 6, Y: 8}) // unit (0.6, 0.8) × 10
}

func TestControllerSnapsWithoutOvershoot(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, PathRoute{Waypoints: []Vec2{{X: 5}}})
	c.OnEnter()

	c.Update(1, nil) // step 10 covers the 5px remaining
	assertNear(t, "X", npc.X, 5)
	assertVec(t, "velocity", npc.Velocity, Vec2{})

	c.Update(1, nil) // finite route done, stays put
	assertNear(t, "X still", npc.X, 5)
	assertVec(t, "velocity still", npc.Velocity, Vec2{})
}

func TestControllerLoopCycles(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, LoopRoute{Waypoints: []Vec2{
		{X: 10}, {X: 10, Y: 10}, {Y: 10}, {},
	}})
	c.OnEnter()

	// Speed 10 at dt 1 lands exactly on each waypoint per update; arrival
	// costs the tick, so the next leg starts on the following update.
	stops := []Vec2{
		{X: 10}, {X: 10, Y: 10}, {Y: 10}, {},
		{X: 10}, // wrapped back to the first waypoint
	}
	for i, want := range stops {
		c.Update(1, nil)
		if math.Abs(npc.X-want.X) > epsilon || math.Abs(npc.Y-want.Y) > epsilon {
			t.Fatalf("update %d: position = (%v, %v), want %v", i, npc.X, npc.Y, want)
		}
	}
}

func TestControllerWaitsAtWaypoints(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, LoopRoute{
		Waypoints: []Vec2{{X: 10}, {X: 20}},
		WaitTime:  1,
	})
	c.OnEnter()

	c.Update(1, nil) // arrive at (10, 0), begin waiting
	assertNear(t, "arrival X", npc.X, 10)

	c.Update(0.4, nil)
	assertVec(t, "waiting", npc.Velocity, Vec2{})
	c.Update(0.4, nil)
	assertVec(t, "still waiting", npc.Velocity, Vec2{})

	c.Update(0.4, nil) // wait elapses mid-update, movement resumes
	if npc.Velocity == (Vec2{}) {
		t.Error("velocity zero after wait elapsed")
	}
}

func TestControllerDefaultPatrol(t *testing.T) {
	npc := patrolNPC(t, 100, 50, 20)
	c := NewNPCController(npc, nil)
	c.OnEnter()

	c.Update(1, nil) // 20px step reaches the left patrol point exactly
	assertVec(t, "left patrol point", Vec2{npc.X, npc.Y}, Vec2{X: 80, Y: 50})

	c.Update(1, nil)
	assertVec(t, "heads right", npc.Velocity, Vec2{X: 20})
}

func TestControllerReentryRestartsRoute(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, PathRoute{Waypoints: []Vec2{{X: 5}}})
	c.OnEnter()
	c.Update(1, nil)
	c.Update(1, nil) // done

	c.OnExit()
	npc.X = 0
	c.OnEnter()
	c.Update(0.1, nil)
	if npc.Velocity == (Vec2{}) {
		t.Error("route did not restart on re-entry")
	}
}

func TestControllerInteractHook(t *testing.T) {
	npc := patrolNPC(t, 0, 0, 10)
	c := NewNPCController(npc, nil)

	called := 0
	c.OnInteract = func(player *PCMapSprite) { called++ }
	c.Interact(nil)
	if called != 1 {
		t.Errorf("OnInteract called %d times, want 1", called)
	}

	c.OnInteract = nil
	c.Interact(nil) // no hook, no panic
}
