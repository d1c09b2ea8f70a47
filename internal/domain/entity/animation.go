package entity

import (
	"hash/fnv"
	"math/rand"
)

// randomExtra is how many random frames follow the shuffled pass of a
// randomized animation
const randomExtra = 20

// Animation is the frame timing of one actor state
type Animation struct {
	Frames    int
	FrameTime float64 // seconds per frame
	// NoLoop holds the last frame instead of wrapping
	NoLoop bool
	// Randomize plays every frame once in shuffled order, then random frames
	Randomize bool
}

// Animate advances the current animation by dt seconds
func (a *Actor) Animate(dt float64) {
	a.animTime += dt
}

// Frame returns the current 0-based frame of the actor's animation
func (a *Actor) Frame() int {
	an, ok := a.def.Animations[a.State]
	if !ok || an.Frames <= 1 || an.FrameTime <= 0 {
		return 0
	}
	length := an.Frames
	if an.Randomize {
		length = len(a.sequence)
	}
	n := int(a.animTime / an.FrameTime)
	if an.NoLoop {
		n = min(n, length-1)
	} else {
		n %= length
	}
	if an.Randomize {
		return a.sequence[n]
	}
	return n
}

// setState switches animation and restarts it
func (a *Actor) setState(state string) {
	a.State = state
	a.animTime = 0
	a.sequence = a.sequence[:0]

	an := a.def.Animations[state]
	if !an.Randomize || an.Frames <= 1 {
		return
	}
	if a.rng == nil {
		h := fnv.New64a()
		_, _ = h.Write([]byte(a.ID))
		a.rng = rand.New(rand.NewSource(int64(h.Sum64())))
	}
	a.sequence = append(a.sequence, a.rng.Perm(an.Frames)...)
	for i := 0; i < randomExtra; i++ {
		a.sequence = append(a.sequence, a.rng.Intn(an.Frames))
	}
}
