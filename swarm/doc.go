// Package swarm is the simulation core for the "swarm forms text" effect.
//
// A [Substrate] owns a fixed population of 2-D particles. Each frame the host
// updates inputs, advances the simulation and exports a flat buffer:
//
//	sub := swarm.New(1280, 720, 6000)
//	sub.SetTextCoords(coords) // [x0, y0, x1, y1, ...]
//	for running {
//		sub.SetMouse(mx, my, down)
//		sub.Step()
//		sub.UpdateRenderBuffer()
//		draw(sub.RenderBuffer()) // [x, y, size, forming] per particle
//	}
//
// Particles are stored as entities in an ark ECS world. Their creation order
// defines the particle index used by target assignment and by the render
// buffer layout.
//
// A Substrate is not safe for concurrent use.
package swarm
