// Package jostle is a 2D crowd-collision core for top-down simulations with
// many simultaneously moving circular agents. It advances agent positions
// under a fixed-rate physics clock, prevents disc-disc interpenetration
// inside independent simulation arenas ("layers"), optionally enforces
// static per-tile wall geometry, and exposes visually smooth positions to a
// higher-frequency render loop via interpolation.
//
// A World owns the agent and layer registries, the shared tile index, and
// the diagnostics store. Host integration is driven by two calls: Step
// advances the fixed-rate physics clock by exactly one tick of length dt
// (it keeps no clock of its own, so it is called once per elapsed fixed
// step), and Render, called once per render frame, writes each agent's
// interpolated, visually smooth position for the given overstep fraction.
//
// Rotation, angular velocity, non-circular bodies, mass/impulse dynamics,
// friction, stacking under gravity, continuous-time rigid constraints,
// sensors/triggers, pathfinding, steering behaviours, and
// networking/rollback are explicitly out of scope.
package jostle
