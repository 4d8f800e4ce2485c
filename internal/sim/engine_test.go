package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

func mustEngine(opts Options) *Engine {
	e, err := NewEngine(opts)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func param(e *Engine, name string) float64 {
	v, err := e.Parameters().Get(name)
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("Engine", func() {
	var e *Engine

	BeforeEach(func() {
		e = mustEngine(DefaultOptions())
	})

	Describe("construction", func() {
		It("starts on Lorenz with the default ensemble", func() {
			Expect(e.System()).To(Equal(dynamo.Lorenz))
			Expect(e.ParticleCount()).To(Equal(DefaultParticles))
			Expect(e.TimeScale()).To(Equal(DefaultTimeScale))
			Expect(e.TrailsEnabled()).To(BeTrue())
			Expect(e.Parameters()).To(Equal(physics.Defaults(dynamo.Lorenz)))
		})

		It("seeds every particle inside the initial region with an empty trail", func() {
			region := physics.Describe(dynamo.Lorenz).Region
			for _, p := range e.Particles() {
				Expect(region.Contains(p.State)).To(BeTrue(), "state %v", p.State)
				Expect(p.Trail.Len()).To(BeZero())
				Expect(p.Trail.Cap()).To(Equal(DefaultTrailLength))
			}
		})

		It("is deterministic for a fixed seed", func() {
			other := mustEngine(DefaultOptions())
			Expect(other.Particles()[3].State).To(Equal(e.Particles()[3].State))
		})

		It("applies parameter overrides", func() {
			opts := DefaultOptions()
			opts.Parameters = map[string]float64{"rho": 99.96}
			Expect(param(mustEngine(opts), "rho")).To(Equal(99.96))
		})

		It("rejects overrides the system does not define", func() {
			opts := DefaultOptions()
			opts.Parameters = map[string]float64{"gamma": 1}
			_, err := NewEngine(opts)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("repairs out of range options", func() {
			opts := Options{Particles: -3, TimeScale: 0, Seed: 9}
			e := mustEngine(opts)
			Expect(e.ParticleCount()).To(Equal(1))
			Expect(e.MaxParticles()).To(Equal(DefaultMaxParticles))
			Expect(e.TimeScale()).To(Equal(DefaultMinTimeScale))
		})
	})

	Describe("Advance", func() {
		BeforeEach(func() {
			opts := DefaultOptions()
			opts.Particles = 1
			e = mustEngine(opts)
			Expect(e.Place(0, dynamo.Vec3{X: 1, Y: 1, Z: 1})).To(BeTrue())
		})

		It("takes one Euler step and records it", func() {
			e.Advance(0.01)

			p := e.Particles()[0]
			Expect(p.State.X).To(BeNumerically("~", 1.0, 1e-12))
			Expect(p.State.Y).To(BeNumerically("~", 1.26, 1e-12))
			Expect(p.State.Z).To(BeNumerically("~", 0.98333, 1e-5))
			Expect(p.Trail.Len()).To(Equal(1))
			Expect(p.Trail.At(0)).To(Equal(p.State))
			Expect(e.Frame()).To(Equal(uint64(1)))
			Expect(e.Time()).To(BeNumerically("~", 0.01, 1e-15))
		})

		It("scales the step by the time scale", func() {
			e.AdjustTimeScale(1.0)
			e.Advance(0.005)
			Expect(e.Particles()[0].State.Y).To(BeNumerically("~", 1.26, 1e-12))
		})

		DescribeTable("ignores unusable frame times",
			func(dt float64) {
				before := e.Particles()[0]
				e.Advance(dt)
				after := e.Particles()[0]
				Expect(after.State).To(Equal(before.State))
				Expect(after.Trail.Len()).To(BeZero())
				Expect(e.Frame()).To(BeZero())
			},
			Entry("zero", 0.0),
			Entry("negative", -0.01),
			Entry("NaN", math.NaN()),
		)

		It("does not record while trails are off", func() {
			e.ToggleTrails()
			e.Advance(0.01)
			Expect(e.Particles()[0].Trail.Len()).To(BeZero())
			Expect(e.Particles()[0].State.Y).To(BeNumerically("~", 1.26, 1e-12))
		})

		It("keeps only the newest trail states", func() {
			for i := 0; i < DefaultTrailLength+10; i++ {
				e.Advance(0.01)
			}
			tr := e.Particles()[0].Trail
			Expect(tr.Len()).To(Equal(DefaultTrailLength))
			last, ok := tr.Last()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(e.Particles()[0].State))
		})
	})

	Describe("SelectSystem", func() {
		It("switches and restores the new system's defaults", func() {
			Expect(e.SelectSystem(dynamo.Rossler)).To(BeTrue())
			Expect(e.System()).To(Equal(dynamo.Rossler))
			Expect(e.Parameters()).To(Equal(physics.Defaults(dynamo.Rossler)))

			Expect(e.AdjustParameter(2, -0.1)).To(BeTrue())
			Expect(param(e, "c")).To(BeNumerically("~", 5.6, 1e-12))
			Expect(param(e, "a")).To(Equal(0.2))
			Expect(param(e, "b")).To(Equal(0.2))
		})

		It("leaves particles and trails alone by default", func() {
			e.Advance(0.01)
			before := e.Particles()[0].State
			e.SelectSystem(dynamo.Aizawa)
			Expect(e.Particles()[0].State).To(Equal(before))
			Expect(e.Particles()[0].Trail.Len()).To(Equal(1))
		})

		It("re-seeds into the new region when configured to", func() {
			opts := DefaultOptions()
			opts.ResetOnSwitch = true
			e = mustEngine(opts)
			e.Advance(0.01)
			e.SelectSystem(dynamo.Aizawa)
			region := physics.Describe(dynamo.Aizawa).Region
			for _, p := range e.Particles() {
				Expect(region.Contains(p.State)).To(BeTrue())
				Expect(p.Trail.Len()).To(BeZero())
			}
		})

		It("discards adjustments when switching back", func() {
			e.AdjustParameter(1, 5)
			e.SelectSystem(dynamo.ChenLee)
			e.SelectSystem(dynamo.Lorenz)
			Expect(param(e, "rho")).To(Equal(28.0))
		})

		It("is a no-op for the active or an undefined system", func() {
			e.AdjustParameter(0, 1)
			Expect(e.SelectSystem(dynamo.Lorenz)).To(BeFalse())
			Expect(param(e, "sigma")).To(Equal(11.0))
			Expect(e.SelectSystem(dynamo.SystemKind(7))).To(BeFalse())
			Expect(e.System()).To(Equal(dynamo.Lorenz))
		})
	})

	Describe("AdjustParameter", func() {
		It("ignores out of range slots", func() {
			before := e.Parameters()
			Expect(e.AdjustParameter(3, 1)).To(BeFalse())
			Expect(e.AdjustParameter(-1, 1)).To(BeFalse())
			Expect(e.Parameters()).To(Equal(before))
		})

		It("reaches every Aizawa slot", func() {
			e.SelectSystem(dynamo.Aizawa)
			Expect(e.AdjustParameter(5, 0.01)).To(BeTrue())
			Expect(param(e, "f")).To(BeNumerically("~", 0.11, 1e-12))
		})

		It("sets by name", func() {
			Expect(e.SetParameter("beta", 2)).To(Succeed())
			Expect(param(e, "beta")).To(Equal(2.0))
			Expect(e.SetParameter("c", 1)).To(MatchError(dynamo.ErrInvalidParameter))
			Expect(e.ApplyParameters(map[string]float64{"sigma": 3, "rho": 4})).To(Succeed())
			Expect(param(e, "sigma")).To(Equal(3.0))
		})
	})

	Describe("AdjustTimeScale", func() {
		It("never drops below the floor", func() {
			Expect(e.AdjustTimeScale(-100)).To(Equal(DefaultMinTimeScale))
			Expect(e.TimeScale()).To(BeNumerically(">", 0))
		})

		It("caps at the ceiling", func() {
			Expect(e.AdjustTimeScale(100)).To(Equal(DefaultMaxTimeScale))
		})

		It("steps by the delta inside the bounds", func() {
			Expect(e.AdjustTimeScale(0.1)).To(BeNumerically("~", 1.1, 1e-12))
			Expect(e.AdjustTimeScale(-0.2)).To(BeNumerically("~", 0.9, 1e-12))
		})

		It("ignores NaN", func() {
			Expect(e.AdjustTimeScale(math.NaN())).To(Equal(1.0))
		})
	})

	Describe("AdjustParticleCount", func() {
		DescribeTable("clamps monotone sequences to [1, max]",
			func(deltas []int) {
				sum := DefaultParticles
				for _, d := range deltas {
					e.AdjustParticleCount(d)
					sum += d
				}
				want := max(1, min(sum, DefaultMaxParticles))
				Expect(e.ParticleCount()).To(Equal(want))
				Expect(e.Particles()).To(HaveLen(want))
			},
			Entry("grow", []int{5, 5, 5}),
			Entry("shrink", []int{-5, -20}),
			Entry("below one", []int{-30, -30}),
			Entry("above max", []int{100, 100}),
			Entry("exact max", []int{150}),
		)

		It("clamps each step", func() {
			Expect(e.AdjustParticleCount(-1000)).To(Equal(1))
			Expect(e.AdjustParticleCount(4)).To(Equal(5))
		})

		It("keeps existing particles when growing", func() {
			e.Advance(0.01)
			before := make([]Particle, e.ParticleCount())
			copy(before, e.Particles())

			e.AdjustParticleCount(5)
			after := e.Particles()
			for i, p := range before {
				Expect(after[i].State).To(Equal(p.State))
				Expect(after[i].Trail).To(BeIdenticalTo(p.Trail))
				Expect(after[i].Trail.Len()).To(Equal(1))
			}
			for _, p := range after[len(before):] {
				Expect(p.Trail.Len()).To(BeZero())
			}
		})

		It("removes from the end when shrinking", func() {
			head := e.Particles()[0].State
			e.AdjustParticleCount(-5)
			Expect(e.Particles()[0].State).To(Equal(head))
		})
	})

	Describe("ToggleTrails", func() {
		It("flips and clears on re-enable", func() {
			e.Advance(0.01)
			Expect(e.ToggleTrails()).To(BeFalse())
			Expect(e.Particles()[0].Trail.Len()).To(Equal(1))
			Expect(e.ToggleTrails()).To(BeTrue())
			Expect(e.Particles()[0].Trail.Len()).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("re-seeds and clears trails while keeping settings", func() {
			e.SelectSystem(dynamo.Rossler)
			e.AdjustParameter(0, 0.05)
			e.AdjustParticleCount(7)
			e.AdjustTimeScale(0.5)
			for i := 0; i < 20; i++ {
				e.Advance(0.01)
			}
			params := e.Parameters()

			e.Reset()

			Expect(e.System()).To(Equal(dynamo.Rossler))
			Expect(e.Parameters()).To(Equal(params))
			Expect(e.ParticleCount()).To(Equal(DefaultParticles + 7))
			Expect(e.TimeScale()).To(BeNumerically("~", 1.5, 1e-12))
			Expect(e.Frame()).To(BeZero())
			Expect(e.Time()).To(BeZero())

			region := physics.Describe(dynamo.Rossler).Region
			for _, p := range e.Particles() {
				Expect(p.Trail.Len()).To(BeZero())
				Expect(region.Contains(p.State)).To(BeTrue())
			}
		})
	})

	Describe("Place", func() {
		It("rejects indices outside the ensemble", func() {
			Expect(e.Place(-1, dynamo.Vec3{})).To(BeFalse())
			Expect(e.Place(e.ParticleCount(), dynamo.Vec3{})).To(BeFalse())
		})
	})

	Describe("Status", func() {
		It("reflects the current settings", func() {
			e.SelectSystem(dynamo.ChenLee)
			e.ToggleTrails()
			s := e.Status()
			Expect(s.System).To(Equal(dynamo.ChenLee))
			Expect(s.Label).To(Equal("Chen-Lee"))
			Expect(s.Trails).To(BeFalse())
			Expect(s.Particles).To(Equal(DefaultParticles))
			Expect(s.Parameters.Len()).To(Equal(3))
		})
	})
})
