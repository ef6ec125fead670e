package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Particle moves from Start by Displacement over Travel, stays put for
// Linger and is then discarded.
type Particle struct {
	Start        cp.Vector
	Displacement cp.Vector
	Travel       time.Duration
	Linger       time.Duration
	Elapsed      time.Duration
}

func (p *Particle) Position() cp.Vector {
	frac := 1.0
	if p.Travel > 0 && p.Elapsed < p.Travel {
		frac = float64(p.Elapsed) / float64(p.Travel)
	}
	return p.Start.Add(p.Displacement.Mult(frac))
}

func (p *Particle) Done() bool {
	return p.Elapsed >= p.Travel+p.Linger
}

var ParticleComponent = NewComponent[Particle]()
