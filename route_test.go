package rowan

import "testing"

func TestLoopRouteResolvesToCycle(t *testing.T) {
	r := LoopRoute{Waypoints: []Vec2{{X: 1}, {X: 2}}, WaitTime: 0.5}
	plan := r.Resolve(Vec2{})
	if !plan.Loop {
		t.Error("LoopRoute plan not looping")
	}
	if len(plan.Waypoints) != 2 {
		t.Errorf("waypoints = %d, want 2", len(plan.Waypoints))
	}
	assertNear(t, "WaitTime", plan.WaitTime, 0.5)
}

func TestPathRouteResolvesFinite(t *testing.T) {
	r := PathRoute{Waypoints: []Vec2{{X: 1}}}
	if r.Resolve(Vec2{}).Loop {
		t.Error("PathRoute plan loops")
	}
}

func TestPingPongRouteUnrollsInterior(t *testing.T) {
	r := PingPongRoute{Waypoints: []Vec2{{X: 1}, {X: 2}, {X: 3}}}
	plan := r.Resolve(Vec2{})
	want := []Vec2{{X: 1}, {X: 2}, {X: 3}, {X: 2}}
	if len(plan.Waypoints) != len(want) {
		t.Fatalf("waypoints = %v, want %v", plan.Waypoints, want)
	}
	for i := range want {
		assertVec(t, "waypoint", plan.Waypoints[i], want[i])
	}
	if !plan.Loop {
		t.Error("ping-pong plan not looping")
	}
}

func TestPingPongRouteSingleWaypoint(t *testing.T) {
	r := PingPongRoute{Waypoints: []Vec2{{X: 1}}}
	plan := r.Resolve(Vec2{})
	if len(plan.Waypoints) != 1 {
		t.Errorf("waypoints = %v, want single point", plan.Waypoints)
	}
}

func TestRoutePlanIsItsOwnRoute(t *testing.T) {
	plan := RoutePlan{Waypoints: []Vec2{{X: 7}}, Loop: true}
	resolved := plan.Resolve(Vec2{X: 100})
	if len(resolved.Waypoints) != 1 || !resolved.Loop {
		t.Errorf("resolved = %+v, want the plan unchanged", resolved)
	}
}
