package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/physics"
)

var _ = Describe("Modal", func() {
	It("derives the textbook system", func() {
		m, err := physics.Modal(dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.NaturalFrequency).To(BeNumerically("~", 1.0, 1e-12))
		Expect(m.CriticalDamping).To(BeNumerically("~", 2.0, 1e-12))
		Expect(m.DampingRatio).To(BeNumerically("~", 0.05, 1e-12))
		Expect(m.DampedFrequency).To(BeNumerically("~", 0.99875, 1e-5))
	})

	It("keeps the damped frequency at or below the natural frequency", func() {
		for _, c := range []float64{0, 0.5, 1, 3, 3.99} {
			m, err := physics.Modal(dynamo.SystemParameters{Mass: 2, Damping: c, Stiffness: 2, Load: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.DampedFrequency).To(BeNumerically("<=", m.NaturalFrequency))
		}
	})

	DescribeTable("rejects non-physical parameters",
		func(p dynamo.SystemParameters, field string) {
			_, err := physics.Modal(p)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))

			var pe *dynamo.ParameterError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Name).To(Equal(field))
		},
		Entry("zero mass", dynamo.SystemParameters{Mass: 0, Damping: 0.1, Stiffness: 1, Load: 1}, "mass"),
		Entry("negative mass", dynamo.SystemParameters{Mass: -1, Damping: 0.1, Stiffness: 1, Load: 1}, "mass"),
		Entry("zero stiffness", dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 0, Load: 1}, "stiffness"),
		Entry("negative damping", dynamo.SystemParameters{Mass: 1, Damping: -0.1, Stiffness: 1, Load: 1}, "damping"),
		Entry("NaN load", dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: math.NaN()}, "load"),
		Entry("infinite mass", dynamo.SystemParameters{Mass: math.Inf(1), Damping: 0.1, Stiffness: 1, Load: 1}, "mass"),
	)

	It("rejects overdamped systems", func() {
		_, err := physics.Modal(dynamo.SystemParameters{Mass: 1, Damping: 10, Stiffness: 1, Load: 1})
		Expect(err).To(MatchError(dynamo.ErrOverdamped))

		var pe *dynamo.ParameterError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Value).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("rejects critical damping", func() {
		_, err := physics.Modal(dynamo.SystemParameters{Mass: 1, Damping: 2, Stiffness: 1, Load: 1})
		Expect(err).To(MatchError(dynamo.ErrOverdamped))
	})

	It("accepts damping just below critical with a vanishing damped frequency", func() {
		m, err := physics.Modal(dynamo.SystemParameters{Mass: 1, Damping: 1.999999, Stiffness: 1, Load: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.DampedFrequency).To(BeNumerically(">", 0))
		Expect(m.DampedFrequency).To(BeNumerically("<", 0.01))
	})
})

var _ = Describe("Evaluate", func() {
	var (
		params dynamo.SystemParameters
		modal  dynamo.ModalProperties
	)

	BeforeEach(func() {
		params = dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1}
		var err error
		modal, err = physics.Modal(params)
		Expect(err).NotTo(HaveOccurred())
	})

	It("samples half of the literal period at 0.01 s", func() {
		samples, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(315))
		Expect(samples[0].T).To(Equal(0.0))
		Expect(samples[len(samples)-1].T).To(BeNumerically("~", 3.14, 1e-12))
		Expect(samples[len(samples)-1].T).To(BeNumerically("<", math.Pi))
	})

	It("starts at the static displacement plus A", func() {
		samples, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		static, a, _ := physics.Coefficients(params, modal)
		Expect(samples[0].U).To(Equal(static + a))
		Expect(samples[0].U).To(Equal(2.0))
	})

	It("produces strictly increasing times at a fixed step", func() {
		samples, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(samples); i++ {
			Expect(samples[i].T).To(BeNumerically(">", samples[i-1].T))
			Expect(samples[i].T - samples[i-1].T).To(BeNumerically("~", 0.01, 1e-12))
		}
	})

	It("is deterministic", func() {
		first, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		second, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("matches the closed form at every sample", func() {
		samples, err := physics.Evaluate(params, modal)
		Expect(err).NotTo(HaveOccurred())
		wn, wd, zeta := modal.NaturalFrequency, modal.DampedFrequency, modal.DampingRatio
		b := wn * zeta * 1.0 / wd
		for _, s := range samples {
			want := math.Exp(-zeta*wn*s.T)*(math.Cos(wn*s.T)+b*math.Sin(wd*s.T)) + 1.0
			Expect(s.U).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("oscillates about the static displacement without decay when undamped", func() {
		p := dynamo.SystemParameters{Mass: 1, Damping: 0, Stiffness: 4, Load: 2}
		m, err := physics.Modal(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.DampingRatio).To(Equal(0.0))
		Expect(m.DampedFrequency).To(Equal(m.NaturalFrequency))

		samples, err := physics.Evaluate(p, m)
		Expect(err).NotTo(HaveOccurred())
		for _, s := range samples {
			Expect(s.U).To(BeNumerically("~", 0.5+0.5*math.Cos(2*s.T), 1e-12))
		}
	})

	It("stays finite just below critical damping", func() {
		p := dynamo.SystemParameters{Mass: 1, Damping: 1.999999, Stiffness: 1, Load: 1}
		m, err := physics.Modal(p)
		Expect(err).NotTo(HaveOccurred())
		samples, err := physics.Evaluate(p, m)
		Expect(err).NotTo(HaveOccurred())
		for _, s := range samples {
			Expect(math.IsNaN(s.U) || math.IsInf(s.U, 0)).To(BeFalse())
		}
	})

	It("rejects an empty window", func() {
		_, err := physics.EvaluateWindow(params, modal, dynamo.Window{Stop: 1, Step: 0})
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
	})

	It("rejects a step that would exceed the sample cap", func() {
		for _, step := range []float64{1e-300, 1e-9} {
			_, err := physics.EvaluateWindow(params, modal, dynamo.Window{Stop: math.Pi, Step: step})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		}
	})

	It("rejects the natural window of a very soft spring", func() {
		p := dynamo.SystemParameters{Mass: 1, Damping: 0, Stiffness: 1e-30, Load: 1}
		m, err := physics.Modal(p)
		Expect(err).NotTo(HaveOccurred())
		samples, err := physics.EvaluateWindow(p, m, dynamo.NaturalWindow(m, 0.01))
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		var pe *dynamo.ParameterError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Name).To(Equal("window.step"))
		Expect(samples).To(BeNil())
	})

	It("rejects modal properties without a damped frequency", func() {
		samples, err := physics.Evaluate(params, dynamo.ModalProperties{})
		Expect(err).To(MatchError(dynamo.ErrOverdamped))
		Expect(samples).To(BeNil())

		hand := modal
		hand.DampingRatio = 1.5
		_, err = physics.Evaluate(params, hand)
		Expect(err).To(MatchError(dynamo.ErrOverdamped))
	})

	It("honours a natural window", func() {
		p := dynamo.SystemParameters{Mass: 1, Damping: 0.2, Stiffness: 4, Load: 1}
		m, err := physics.Modal(p)
		Expect(err).NotTo(HaveOccurred())
		samples, err := physics.EvaluateWindow(p, m, dynamo.NaturalWindow(m, 0.01))
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(int(math.Ceil(0.5 * math.Pi / 0.01))))
	})
})

var _ = Describe("TotalResponse", func() {
	It("carries the coefficients with the samples", func() {
		resp, err := physics.TotalResponse(dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Static).To(Equal(1.0))
		Expect(resp.A).To(Equal(1.0))
		Expect(resp.B).To(BeNumerically("~", 0.05/0.998749, 1e-6))
		Expect(resp.Samples).To(HaveLen(315))
		Expect(resp.Window).To(Equal(dynamo.DefaultWindow()))
	})

	It("fails on zero mass", func() {
		_, err := physics.TotalResponse(dynamo.SystemParameters{Mass: 0, Damping: 0.1, Stiffness: 1, Load: 1})
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
	})

	It("fails on an overdamped system", func() {
		resp, err := physics.TotalResponse(dynamo.SystemParameters{Mass: 1, Damping: 10, Stiffness: 1, Load: 1})
		Expect(err).To(MatchError(dynamo.ErrOverdamped))
		Expect(resp).To(BeNil())
	})
})

var _ = Describe("Oscillator", func() {
	It("starts at rest", func() {
		osc, err := physics.NewOscillator(dynamo.SystemParameters{Mass: 2, Damping: 0.3, Stiffness: 5, Load: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(osc.Velocity(0)).To(BeNumerically("~", 0, 1e-12))
	})

	It("has a velocity consistent with the displacement", func() {
		osc, err := physics.NewOscillator(dynamo.SystemParameters{Mass: 1, Damping: 0.4, Stiffness: 3, Load: 1})
		Expect(err).NotTo(HaveOccurred())
		h := 1e-6
		for _, t := range []float64{0.1, 0.7, 1.3, 2.9} {
			numeric := (osc.Displacement(t+h) - osc.Displacement(t-h)) / (2 * h)
			Expect(osc.Velocity(t)).To(BeNumerically("~", numeric, 1e-5))
		}
	})

	It("conserves energy when undamped", func() {
		osc, err := physics.NewOscillator(dynamo.SystemParameters{Mass: 1, Damping: 0, Stiffness: 1, Load: 1})
		Expect(err).NotTo(HaveOccurred())
		e0 := osc.Energy(osc.Displacement(0), osc.Velocity(0))
		for _, t := range []float64{0.5, 1.0, 2.5} {
			Expect(osc.Energy(osc.Displacement(t), osc.Velocity(t))).To(BeNumerically("~", e0, 1e-9))
		}
	})
})
