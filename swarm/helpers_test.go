package swarm

// place overwrites the kinematic state of particle i.
func (s *Substrate) place(i int, x, y, vx, vy float32) {
	pos, vel, _, _, _, _ := s.particleMap.Get(s.entities[i])
	pos.X, pos.Y = x, y
	vel.X, vel.Y = vx, vy
}

// release clears the forming flag of particle i.
func (s *Substrate) release(i int) {
	_, _, tgt, _, _, _ := s.particleMap.Get(s.entities[i])
	tgt.Forming = false
}

func newTestSubstrate(width, height float32, count int) *Substrate {
	return NewWithOptions(width, height, count, WithSeed(7))
}
