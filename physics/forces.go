package physics

import (
	"math"

	"github.com/lixenwraith/forcegraph/vmath"
)

// applyLinks pulls linked nodes toward LinkDistance
// Uses next-step positions (x+vx) so springs do not overshoot against momentum
func (s *Simulation) applyLinks(alpha float64) {
	dist := s.cfg.LinkDistance
	for _, l := range s.bound {
		src, tgt := &s.nodes[l.source], &s.nodes[l.target]

		x := tgt.X + tgt.VX - src.X - src.VX
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if x == 0 {
			x = s.rng.Jiggle()
		}
		if y == 0 {
			y = s.rng.Jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - dist) / d * alpha * l.strength
		x *= k
		y *= k

		tgt.VX -= x * l.bias
		tgt.VY -= y * l.bias
		src.VX += x * (1 - l.bias)
		src.VY += y * (1 - l.bias)
	}
}

// applyManyBody repels every pair through the Barnes-Hut tree
func (s *Simulation) applyManyBody(alpha float64) {
	if s.cfg.Charge == 0 {
		return
	}
	s.tree.build(s.nodes)

	theta2 := s.cfg.Theta * s.cfg.Theta
	distMin2 := s.cfg.DistanceMin * s.cfg.DistanceMin
	distMax2 := s.cfg.DistanceMax * s.cfg.DistanceMax
	strength := s.cfg.Charge * alpha

	for i := range s.nodes {
		dvx, dvy := s.tree.forceOn(i, strength, theta2, distMin2, distMax2, s.rng)
		ApplyImpulse(&s.nodes[i], dvx, dvy)
	}
}

// applyCentering translates all nodes so the centroid sits on the center point
func (s *Simulation) applyCentering() {
	if !s.cfg.Centering {
		return
	}
	var sx, sy float64
	for i := range s.nodes {
		sx += s.nodes[i].X
		sy += s.nodes[i].Y
	}
	n := float64(len(s.nodes))
	dx := s.cfg.CenterX - sx/n
	dy := s.cfg.CenterY - sy/n
	for i := range s.nodes {
		s.nodes[i].X += dx
		s.nodes[i].Y += dy
	}
}

// applyGravity pulls each node toward the gravity target on both axes
func (s *Simulation) applyGravity(alpha float64) {
	k := s.cfg.Gravity * alpha
	if k == 0 {
		return
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		ApplyImpulse(n, (s.cfg.GravityX-n.X)*k, (s.cfg.GravityY-n.Y)*k)
	}
}

// applyCollision separates overlapping circles in proportion to their radii
func (s *Simulation) applyCollision() {
	if !s.cfg.Collision || s.cfg.Radius == nil {
		return
	}

	if cap(s.radii) < len(s.nodes) {
		s.radii = make([]float64, len(s.nodes))
	}
	radii := s.radii[:len(s.nodes)]
	maxR := 0.0
	for i := range s.nodes {
		r := s.cfg.Radius(&s.nodes[i])
		if !vmath.Finite(r) || r < 0 {
			r = 0
		}
		radii[i] = r
		maxR = math.Max(maxR, r)
	}
	if maxR == 0 {
		return
	}

	s.grid.Reset(2 * maxR)
	for i := range s.nodes {
		n := &s.nodes[i]
		s.grid.Add(i, n.X+n.VX, n.Y+n.VY)
	}

	strength := s.cfg.CollisionStrength
	for i := range s.nodes {
		ni := &s.nodes[i]
		ri := radii[i]
		xi, yi := ni.X+ni.VX, ni.Y+ni.VY

		s.grid.Around(xi, yi, ri+maxR, func(j int) {
			if j <= i {
				return
			}
			nj := &s.nodes[j]
			rj := radii[j]
			r := ri + rj
			x := xi - nj.X - nj.VX
			y := yi - nj.Y - nj.VY
			l := x*x + y*y
			if l >= r*r {
				return
			}
			if x == 0 {
				x = s.rng.Jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.rng.Jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			k := (r - d) / d * strength
			x *= k
			y *= k

			share := 0.5
			if denom := ri*ri + rj*rj; denom > 0 {
				share = rj * rj / denom
			}
			ni.VX += x * share
			ni.VY += y * share
			nj.VX -= x * (1 - share)
			nj.VY -= y * (1 - share)
		})
	}
}
