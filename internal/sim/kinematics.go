package sim

// Body is the vertical state of the player.
type Body struct {
	Y  float64 // Offset from the world centre, positive is up
	VY float64 // Units per second, positive is up
}

// Integrate advances b by dt seconds under constant gravity.
// Position moves with the velocity from before this step; velocity is
// updated afterwards.
func Integrate(b Body, gravity, dt float64) Body {
	b.Y += b.VY * dt
	b.VY += gravity * dt
	return b
}

// Impulse applies n jump edges of the given boost. There is no velocity cap.
func Impulse(b Body, boost float64, n int) Body {
	b.VY += float64(n) * boost
	return b
}
