// Package cloth implements a deformable-surface physics core.
//
// A [Cloth] is a rectangular grid of point masses joined by distance
// constraints. Once per frame a [Solver] relaxes the constraints, applies the
// [Pointer] interaction and gravity, advances positions with a Verlet scheme,
// reflects particles back into the bounding box and prunes particles left
// owning no constraints:
//
//   - [Particle]: point mass with current/previous position and pin flag
//   - [Constraint]: distance link between two particles, tears when overstretched
//   - [Build], [BuildRing]: grid topology builders
//   - [Pointer]: grab/cut input shared by every particle in a frame
//   - [Solver]: per-frame integration and constraint relaxation
//
// # Example
//
//	c := cloth.Build(30, 20, 10, 10)
//	s, _ := cloth.NewSolver(cloth.DefaultParams())
//	ptr := cloth.NewPointer()
//	for i := 0; i < 100; i++ {
//	    s.Step(c, ptr)
//	}
//	samples := c.Snapshot()
//
// # Thread Safety
//
// A Cloth and its Solver are NOT thread-safe. Independent instances share
// nothing and may be stepped from different goroutines.
package cloth
