package swarm

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func flatCoords(rng *rand.Rand, n int, w, h float32) []float32 {
	out := make([]float32, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, rng.Float32()*w, rng.Float32()*h)
	}
	return out
}

// targetIndex finds the target a forming particle is holding.
func targetIndex(s *Substrate, p Particle) int {
	for i, t := range s.Targets() {
		if t.X == p.TargetX && t.Y == p.TargetY {
			return i
		}
	}
	return Unassigned
}

var _ = Describe("Substrate", func() {
	var (
		rng *rand.Rand
		sub *Substrate
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	Describe("target assignment", func() {
		DescribeTable("forms every particle injectively when targets suffice",
			func(particles, targets int) {
				sub = NewWithOptions(800, 600, particles, WithRand(rng))
				sub.SetTextCoords(flatCoords(rng, targets, 800, 600))

				held := make(map[int]int)
				for i, p := range sub.Particles() {
					Expect(p.Forming).To(BeTrue(), "particle %d", i)
					idx := targetIndex(sub, p)
					Expect(idx).NotTo(Equal(Unassigned))
					held[idx]++
				}
				for idx, n := range held {
					Expect(n).To(Equal(1), "target %d held by %d particles", idx, n)
				}
			},
			Entry("equal counts", 400, 400),
			Entry("surplus targets", 250, 2000),
			Entry("single particle", 1, 5),
		)

		DescribeTable("forms exactly targetCount particles when targets are short",
			func(particles, targets int) {
				sub = NewWithOptions(800, 600, particles, WithRand(rng))
				sub.SetTextCoords(flatCoords(rng, targets, 800, 600))

				st := sub.Stats()
				Expect(st.Forming).To(Equal(targets))
				Expect(st.Floating).To(Equal(particles - targets))
				for i := targets; i < particles; i++ {
					Expect(sub.Particle(i).Forming).To(BeFalse(), "particle %d", i)
				}
			},
			Entry("half", 600, 300),
			Entry("one target", 50, 1),
		)

		It("clears forming on every particle for an empty set", func() {
			sub = NewWithOptions(400, 400, 200, WithRand(rng))
			sub.SetTextCoords(flatCoords(rng, 200, 400, 400))
			Expect(sub.Stats().Forming).To(Equal(200))

			sub.SetTextCoords(nil)

			Expect(sub.Stats().Forming).To(BeZero())
			for _, p := range sub.Particles() {
				Expect(p.Forming).To(BeFalse())
			}
		})

		It("is idempotent for an identical coordinate sequence", func() {
			sub = NewWithOptions(500, 500, 300, WithRand(rng))
			coords := flatCoords(rng, 350, 500, 500)

			sub.SetTextCoords(coords)
			first := sub.Particles()
			sub.SetTextCoords(coords)

			Expect(sub.Particles()).To(Equal(first))
		})

		It("gives the lone forming particle the only target", func() {
			sub = NewWithOptions(100, 100, 3, WithRand(rng))
			sub.SetTextCoords([]float32{10, 10})

			Expect(sub.Stats().Forming).To(Equal(1))
			p := sub.Particle(0)
			Expect(p.Forming).To(BeTrue())
			Expect(p.TargetX).To(Equal(float32(10)))
			Expect(p.TargetY).To(Equal(float32(10)))
			Expect(sub.Particle(1).Forming).To(BeFalse())
			Expect(sub.Particle(2).Forming).To(BeFalse())
		})
	})

	Describe("integration", func() {
		It("keeps every speed within max_speed after each step", func() {
			sub = NewWithOptions(600, 400, 500, WithRand(rng))
			sub.SetTextCoords(flatCoords(rng, 250, 600, 400))
			sub.SetMouse(300, 200, true)

			for step := 0; step < 60; step++ {
				sub.Step()
				for _, p := range sub.Particles() {
					Expect(p.Speed()).To(BeNumerically("<=", p.MaxSpeed*(1+1e-5)))
				}
			}
		})

		It("never increases floating speed without pointer or boundary contact", func() {
			sub = NewWithOptions(2000, 2000, 40, WithRand(rng))
			for i := 0; i < sub.ParticleCount(); i++ {
				sub.place(i, 900+float32(i), 1000, rng.Float32()*2-1, rng.Float32()*2-1)
			}

			prev := sub.Particles()
			for step := 0; step < 40; step++ {
				sub.Step()
				cur := sub.Particles()
				for i := range cur {
					Expect(cur[i].Speed()).To(BeNumerically("<=", prev[i].Speed()))
				}
				prev = cur
			}
		})

		It("pulls a particle that crossed the edge back toward the bounds", func() {
			sub = NewWithOptions(100, 100, 1, WithRand(rng))
			sub.place(0, 100.5, 50, 1.5, 0)

			sub.Step()
			Expect(sub.Particle(0).VX).To(BeNumerically("<", 0))

			for step := 0; step < 10; step++ {
				sub.Step()
			}
			Expect(sub.Particle(0).X).To(BeNumerically("<=", 100))
		})

		It("repels a particle sitting next to an active pointer", func() {
			sub = NewWithOptions(100, 100, 1, WithRand(rng))
			sub.SetMouse(50, 50, true)
			sub.place(0, 50.01, 50.01, 0, 0)

			sub.Step()

			p := sub.Particle(0)
			Expect(math.Hypot(float64(p.VX), float64(p.VY))).To(BeNumerically(">", 0))
			Expect(p.VX).To(BeNumerically(">", 0))
			Expect(p.VY).To(BeNumerically(">", 0))
		})
	})

	Describe("render export", func() {
		It("mirrors each particle after step and update", func() {
			sub = NewWithOptions(300, 300, 64, WithRand(rng))
			sub.SetTextCoords(flatCoords(rng, 32, 300, 300))
			sub.Step()
			sub.UpdateRenderBuffer()

			buf := sub.RenderBuffer()
			Expect(buf).To(HaveLen(4 * sub.ParticleCount()))
			for i, p := range sub.Particles() {
				flag := float32(0)
				if p.Forming {
					flag = 1
				}
				Expect(buf[i*4 : i*4+4]).To(Equal([]float32{p.X, p.Y, p.Size, flag}))
			}
		})
	})
})
