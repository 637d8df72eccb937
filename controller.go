package rowan

import "math"

// defaultPatrolSpan is the half-width in pixels of the fallback left/right
// patrol used when a controller is built without a route.
const defaultPatrolSpan = 20.0

// InteractFunc responds to the player triggering an interaction with an NPC.
type InteractFunc func(player *PCMapSprite)

// NPCController steers one NPC sprite along a route. It holds a non-owning
// reference to the sprite: the scene owns sprite lifetime, and route
// progress is reset every time the scene is entered.
type NPCController struct {
	npc   *NPCMapSprite
	route Route
	// OnInteract, when set, runs when the player interacts with this NPC.
	OnInteract InteractFunc

	plan    RoutePlan
	index   int
	waiting bool
	elapsed float64
	done    bool
}

// NewNPCController drives npc along route. A nil route produces a default
// patrol spanning defaultPatrolSpan pixels left and right of the sprite's
// position at scene entry. An idle NPC is a controller whose route resolves
// to a single waypoint — or simply no controller at all.
func NewNPCController(npc *NPCMapSprite, route Route) *NPCController {
	return &NPCController{npc: npc, route: route}
}

// Sprite returns the controlled NPC sprite.
func (c *NPCController) Sprite() *NPCMapSprite { return c.npc }

// OnEnter resets traversal state and resolves the route from the sprite's
// current position.
func (c *NPCController) OnEnter() {
	c.index = 0
	c.elapsed = 0
	c.waiting = false
	c.done = false

	start := Vec2{c.npc.X, c.npc.Y}
	if c.route != nil {
		c.plan = c.route.Resolve(start)
		return
	}
	c.plan = RoutePlan{
		Waypoints: []Vec2{
			{start.X - defaultPatrolSpan, start.Y},
			{start.X + defaultPatrolSpan, start.Y},
		},
		Loop: true,
	}
}

// OnExit releases nothing; traversal state is rebuilt on the next OnEnter.
func (c *NPCController) OnExit() {}

// Update writes the sprite's velocity for this tick. While short of the
// current waypoint the sprite heads toward it at its configured speed. When
// the remaining distance fits within this tick's step, the sprite snaps onto
// the waypoint exactly (no oscillation around it), velocity drops to zero,
// and the target index advances — the velocity toward the new target is
// recomputed on the next update, so arrival always costs one idle tick.
func (c *NPCController) Update(dt float64, player *PCMapSprite) {
	if c.npc == nil || dt <= 0 {
		return
	}
	if c.done || len(c.plan.Waypoints) == 0 {
		c.npc.Velocity = Vec2{}
		return
	}

	if c.waiting {
		c.npc.Velocity = Vec2{}
		c.elapsed += dt
		if c.elapsed < c.plan.WaitTime {
			return
		}
		c.waiting = false
		c.elapsed = 0
	}

	target := c.plan.Waypoints[c.index]
	dx := target.X - c.npc.X
	dy := target.Y - c.npc.Y
	distance := math.Hypot(dx, dy)

	step := c.npc.Speed * dt
	if distance <= step {
		c.npc.X = target.X
		c.npc.Y = target.Y
		c.npc.Velocity = Vec2{}
		c.advance()
		return
	}

	c.npc.Velocity = Vec2{dx / distance * c.npc.Speed, dy / distance * c.npc.Speed}
}

// Interact invokes the controller's interaction hook, if any.
func (c *NPCController) Interact(player *PCMapSprite) {
	if c.OnInteract != nil {
		c.OnInteract(player)
	}
}

// advance moves to the next waypoint, wrapping for looping plans and
// beginning a wait when the plan asks for one.
func (c *NPCController) advance() {
	c.waiting = c.plan.WaitTime > 0
	c.elapsed = 0
	if c.index >= len(c.plan.Waypoints)-1 {
		if c.plan.Loop {
			c.index = 0
		} else {
			c.done = true
		}
		return
	}
	c.index++
}
