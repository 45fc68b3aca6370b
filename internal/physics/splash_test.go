package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splashsim/internal/physics"
)

func mustSplash(body physics.Body, mode physics.Mode) *physics.Splash {
	s, err := physics.NewSplash(body, physics.DefaultEnvironment(), mode)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Splash model", func() {
	cone := physics.Body{
		Name:      "bfs",
		Shape:     physics.NewCone(0.75, 0.26),
		Mass:      50,
		DragCoeff: 0.7,
	}
	cylinder := physics.Body{
		Name:      "ech-1",
		Shape:     physics.NewCylinder(0.7, 0.5),
		Mass:      37,
		DragCoeff: 0.9,
	}

	Describe("progressive immersion", func() {
		It("displaces nothing above the surface", func() {
			s := mustSplash(cone, physics.Progressive)
			for _, z := range []float64{-5, -0.1, -1e-9} {
				Expect(s.SubmergedVolume(z)).To(BeZero())
				Expect(s.DragCoefficient(z)).To(Equal(s.DragCoefficient(-100)))
			}
		})

		It("grows continuously and monotonically up to the full volume", func() {
			s := mustSplash(cone, physics.Progressive)
			h := cone.Shape.ReferenceHeight()
			total := cone.Shape.TotalVolume()

			prev := 0.0
			for i := 0; i <= 100; i++ {
				z := h * float64(i) / 100
				v := s.SubmergedVolume(z)
				Expect(v).To(BeNumerically(">=", prev))
				Expect(v).To(BeNumerically("<=", total+1e-12))
				prev = v
			}
			Expect(s.SubmergedVolume(h)).To(BeNumerically("~", total, 1e-12))
			Expect(s.SubmergedVolume(h * 3)).To(Equal(total))
		})

		It("follows the cubic law for a cone", func() {
			s := mustSplash(cone, physics.Progressive)
			h := cone.Shape.ReferenceHeight()
			total := cone.Shape.TotalVolume()
			z := 0.4 * h
			Expect(s.SubmergedVolume(z)).To(BeNumerically("~", total*0.4*0.4*0.4, 1e-12))
		})

		It("follows the linear law for a cylinder", func() {
			s := mustSplash(cylinder, physics.Progressive)
			z := 0.2
			Expect(s.SubmergedVolume(z)).To(BeNumerically("~", math.Pi*0.7*0.7*z, 1e-12))
		})

		It("blends drag monotonically between air and water", func() {
			s := mustSplash(cone, physics.Progressive)
			h := cone.Shape.ReferenceHeight()

			kAir := s.DragCoefficient(-1)
			kWater := s.DragCoefficient(h)

			prev := kAir
			for i := 0; i <= 100; i++ {
				k := s.DragCoefficient(h * float64(i) / 100)
				Expect(k).To(BeNumerically(">=", prev-1e-15))
				prev = k
			}
			Expect(s.DragCoefficient(h * 2)).To(Equal(kWater))

			area := physics.FrontalArea(0.75)
			env := physics.DefaultEnvironment()
			Expect(kAir).To(BeNumerically("~", 0.5*env.AirDensity*0.7*area, 1e-12))
			Expect(kWater).To(BeNumerically("~", 0.5*env.WaterDensity*0.7*area, 1e-12))
		})

		It("does not divide by zero at the surface", func() {
			s := mustSplash(cone, physics.Progressive)
			a := s.Acceleration(0, 0)
			Expect(math.IsNaN(a)).To(BeFalse())
			Expect(a).To(BeNumerically("~", physics.DefaultEnvironment().Gravity, 1e-12))
		})
	})

	Describe("abrupt immersion", func() {
		It("is an exact step function in volume", func() {
			s := mustSplash(cylinder, physics.Abrupt)
			total := cylinder.Shape.TotalVolume()

			Expect(s.SubmergedVolume(-1e-12)).To(BeZero())
			Expect(s.SubmergedVolume(0)).To(Equal(total))
			Expect(s.SubmergedVolume(0.01)).To(Equal(total))
			Expect(total).To(BeNumerically("~", math.Pi*0.7*0.7*0.5, 1e-12))
		})

		It("switches drag at the surface", func() {
			s := mustSplash(cylinder, physics.Abrupt)
			Expect(s.DragCoefficient(-0.001)).To(BeNumerically("<", s.DragCoefficient(0)))
		})

		It("allows a zero reference height", func() {
			flat := physics.Body{Shape: physics.NewCone(0.075, 0), Mass: 0.774, DragCoeff: 0.8}
			_, err := physics.NewSplash(flat, physics.DefaultEnvironment(), physics.Abrupt)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("force law", func() {
		It("reduces to free fall above the surface at rest", func() {
			s := mustSplash(cone, physics.Progressive)
			dx := s.Derive([]float64{-5, 0}, 0)
			Expect(dx[0]).To(BeZero())
			Expect(dx[1]).To(BeNumerically("~", 9.81, 1e-12))
		})

		It("opposes upward motion with downward drag", func() {
			s := mustSplash(cone, physics.Progressive)
			down := s.Acceleration(-5, 10)
			up := s.Acceleration(-5, -10)
			g := physics.DefaultEnvironment().Gravity
			Expect(down).To(BeNumerically("<", g))
			Expect(up).To(BeNumerically(">", g))
		})

		It("decelerates a fast body deep in the water", func() {
			s := mustSplash(cone, physics.Progressive)
			Expect(s.Acceleration(1.0, 10)).To(BeNumerically("<", 0))
		})
	})

	Describe("terminal velocity", func() {
		It("matches the closed form", func() {
			s := mustSplash(cone, physics.Progressive)
			env := physics.DefaultEnvironment()
			area := physics.FrontalArea(0.75)
			want := math.Sqrt(2 * 50 * env.Gravity / (env.AirDensity * area * 0.7))
			Expect(s.TerminalVelocity()).To(Equal(want))
		})
	})

	Describe("validation", func() {
		env := physics.DefaultEnvironment()

		It("rejects a progressive ramp with zero reference height", func() {
			flat := physics.Body{Shape: physics.NewCone(0.075, 0), Mass: 0.774, DragCoeff: 0.8}
			_, err := physics.NewSplash(flat, env, physics.Progressive)
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-positive mass, radius and drag coefficient", func() {
			for _, body := range []physics.Body{
				{Shape: physics.NewCone(0.75, 0.26), Mass: 0, DragCoeff: 0.7},
				{Shape: physics.NewCone(0, 0.26), Mass: 50, DragCoeff: 0.7},
				{Shape: physics.NewCone(0.75, 0.26), Mass: 50, DragCoeff: -1},
			} {
				_, err := physics.NewSplash(body, env, physics.Progressive)
				Expect(err).To(HaveOccurred())
			}
		})

		It("rejects unknown shape tags", func() {
			_, err := physics.NewShape("sphere", 1, 1)
			Expect(err).To(HaveOccurred())
		})

		It("rejects unknown immersion modes", func() {
			body := physics.Body{Shape: physics.NewCone(0.75, 0.26), Mass: 50, DragCoeff: 0.7}
			_, err := physics.NewSplash(body, env, physics.Mode("sideways"))
			Expect(err).To(HaveOccurred())
		})
	})
})
