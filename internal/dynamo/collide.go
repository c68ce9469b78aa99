package dynamo

// Resolve applies an equal-mass elastic collision to a and b when their
// discs touch or overlap. The velocity components along the line of
// centres are exchanged; tangential components stay with each body.
// Coincident centres have no defined normal and are left unchanged.
func Resolve(a, b Body) (Body, Body, bool) {
	d := a.Pos.Sub(b.Pos)
	dist := d.Len()
	if dist == 0 || !d.IsFinite() {
		return a, b, false
	}
	if dist-(a.Radius+b.Radius) > 0 {
		return a, b, false
	}

	// n = (sinA, cosA), t = (-cosA, sinA)
	n := d.Scale(1 / dist)
	t := Vec2{-n.Y, n.X}

	an, at := a.Vel.Dot(n), a.Vel.Dot(t)
	bn, bt := b.Vel.Dot(n), b.Vel.Dot(t)

	a.Vel = n.Scale(bn).Add(t.Scale(at))
	b.Vel = n.Scale(an).Add(t.Scale(bt))
	return a, b, true
}
