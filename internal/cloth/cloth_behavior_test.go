package cloth_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

var _ = Describe("Solver", func() {
	var (
		c      *cloth.Cloth
		solver *cloth.Solver
		ptr    *cloth.Pointer
	)

	BeforeEach(func() {
		var err error
		solver, err = cloth.NewSolver(cloth.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		ptr = cloth.NewPointer()
	})

	Context("with a 3x3 grid and no interaction", func() {
		BeforeEach(func() {
			c = cloth.Build(3, 3, 10, 10)
		})

		It("lets the center sag while the pinned rows hold", func() {
			solver.Step(c, ptr)

			Expect(c.Particle(c.Index(1, 1)).Pos[2]).To(BeNumerically("<", 0))
			for _, s := range c.Snapshot() {
				if s.Pinned {
					Expect(s.Z).To(BeZero())
				}
			}
		})

		It("keeps every pinned particle in place for many frames", func() {
			pinned := map[int]mgl64.Vec3{}
			for _, s := range c.Snapshot() {
				if s.Pinned {
					pinned[s.Index] = mgl64.Vec3{s.X, s.Y, s.Z}
				}
			}

			for i := 0; i < 200; i++ {
				solver.Step(c, ptr)
			}

			for idx, pos := range pinned {
				Expect(c.Particle(idx).Pos).To(Equal(pos))
			}
			Expect(c.Validate()).To(Succeed())
		})

		It("settles without tearing", func() {
			var total cloth.StepStats
			for i := 0; i < 300; i++ {
				total.Add(solver.Step(c, ptr))
			}
			Expect(total.Torn).To(BeZero())
			Expect(total.Pruned).To(Equal(1))
			Expect(c.Len()).To(Equal(8))
			for _, s := range c.Snapshot() {
				Expect(s.Index).NotTo(Equal(c.Index(0, 0)))
			}
		})
	})

	Context("when the pointer cuts across the cloth", func() {
		var ring, other *cloth.Group

		BeforeEach(func() {
			c, ring, other = cloth.BuildRing(20, 20, 5, 5, mgl64.Vec2{100, 100}, 30)
			ptr.Set(mgl64.Vec3{40, 100, 0}, true, cloth.ModeCut, cloth.DefaultInfluence, cloth.DefaultCutRadius, 0)
		})

		It("tears the topology and prunes loose particles from every group", func() {
			start := c.Len()
			for x := 40.0; x <= 160; x += 2 {
				ptr.MoveTo(x, 100)
				solver.Step(c, ptr)
			}
			for i := 0; i < 30; i++ {
				solver.Step(c, ptr)
			}

			Expect(c.Len()).To(BeNumerically("<", start))
			Expect(ring.Len() + other.Len()).To(Equal(c.Len()))
			for _, s := range c.GroupSnapshot(ring) {
				Expect(c.Particle(s.Index).Alive()).To(BeTrue())
			}
			Expect(c.Validate()).To(Succeed())
		})
	})

	Context("with a single free link", func() {
		BeforeEach(func() {
			c = cloth.Build(2, 1, 10, 10, cloth.WithPinning(cloth.PinNone))
		})

		It("tears a link stretched past its tear distance and never restores it", func() {
			p := c.Particle(1)
			p.Pos = mgl64.Vec3{50, 50, 150}
			p.Prev = p.Pos

			st := solver.Step(c, ptr)
			Expect(st.Torn).To(Equal(1))
			Expect(c.Len()).To(BeZero())
			Expect(c.Snapshot()).To(BeEmpty())
		})

		It("falls freely under gravity", func() {
			for i := 0; i < 10; i++ {
				solver.Step(c, ptr)
			}
			for _, s := range c.Snapshot() {
				Expect(s.Z).To(BeNumerically("<", 0))
				Expect(math.IsNaN(s.Z)).To(BeFalse())
			}
		})
	})
})
