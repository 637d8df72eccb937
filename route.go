package rowan

// Route resolves a concrete waypoint plan from an NPC's starting position.
// Route values are plain data; controllers own all traversal state, so the
// same Route can drive any number of NPCs.
type Route interface {
	Resolve(start Vec2) RoutePlan
}

// RoutePlan is the resolved, ordered list of waypoints a controller steers
// its sprite through.
type RoutePlan struct {
	// Waypoints are the positions to traverse in order.
	Waypoints []Vec2
	// Loop restarts the plan at the first waypoint after the last. A
	// non-looping plan stops at its final waypoint.
	Loop bool
	// WaitTime pauses the sprite for this many seconds at each waypoint.
	WaitTime float64
}

// Resolve returns the plan itself; a RoutePlan is its own route.
func (p RoutePlan) Resolve(start Vec2) RoutePlan { return p }

// LoopRoute cycles through its waypoints indefinitely: after the last
// waypoint the sprite heads back to the first. The cycle is infinite and
// restartable; re-entering a scene restarts it from the first waypoint.
type LoopRoute struct {
	Waypoints []Vec2
	WaitTime  float64
}

// Resolve returns the looping plan.
func (r LoopRoute) Resolve(start Vec2) RoutePlan {
	return RoutePlan{Waypoints: r.Waypoints, Loop: true, WaitTime: r.WaitTime}
}

// PathRoute visits its waypoints once and stops at the last.
type PathRoute struct {
	Waypoints []Vec2
	WaitTime  float64
}

// Resolve returns the finite plan.
func (r PathRoute) Resolve(start Vec2) RoutePlan {
	return RoutePlan{Waypoints: r.Waypoints, Loop: false, WaitTime: r.WaitTime}
}

// PingPongRoute walks its waypoints forward and then back, looping forever:
// A B C B A B C... The turnaround endpoints are visited once per pass.
type PingPongRoute struct {
	Waypoints []Vec2
	WaitTime  float64
}

// Resolve unrolls the forward leg plus the reversed interior into a loop.
func (r PingPongRoute) Resolve(start Vec2) RoutePlan {
	if len(r.Waypoints) == 0 {
		return RoutePlan{Loop: true, WaitTime: r.WaitTime}
	}
	unrolled := make([]Vec2, 0, 2*len(r.Waypoints)-2)
	unrolled = append(unrolled, r.Waypoints...)
	for i := len(r.Waypoints) - 2; i >= 1; i-- {
		unrolled = append(unrolled, r.Waypoints[i])
	}
	return RoutePlan{Waypoints: unrolled, Loop: true, WaitTime: r.WaitTime}
}
