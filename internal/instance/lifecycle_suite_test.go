package instance_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/model"
	"github.com/san-kum/gofmi/internal/models"
)

func TestInstanceSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Instance Suite")
}

func mustCS(opts instance.Options) *instance.Instance {
	in, err := instance.NewCoSimulation("decay", model.Token("Decay"), models.NewDecay(), opts)
	Expect(err).NotTo(HaveOccurred())
	return in
}

func mustME() *instance.Instance {
	in, err := instance.NewModelExchange("decay", model.Token("Decay"), models.NewDecay(), instance.Options{})
	Expect(err).NotTo(HaveOccurred())
	return in
}

// inState builds a fresh Co-Simulation instance driven to the given state.
func inState(state fmi.ModelState) *instance.Instance {
	in := mustCS(instance.Options{})
	switch state {
	case fmi.Instantiated:
	case fmi.InitializationMode:
		Expect(in.EnterInitializationMode(nil, 0, nil)).To(Succeed())
	case fmi.StepMode:
		Expect(in.EnterInitializationMode(nil, 0, nil)).To(Succeed())
		Expect(in.ExitInitializationMode()).To(Succeed())
	case fmi.EventMode:
		Expect(in.EnterInitializationMode(nil, 0, nil)).To(Succeed())
		Expect(in.ExitInitializationMode()).To(Succeed())
		Expect(in.EnterEventMode()).To(Succeed())
	case fmi.Terminated:
		Expect(in.Terminate()).To(Succeed())
	}
	Expect(in.State()).To(Equal(state))
	return in
}

var _ = Describe("lifecycle state machine", func() {
	DescribeTable("rejects operations outside their legal states",
		func(state fmi.ModelState, op func(*instance.Instance) error) {
			in := inState(state)
			Expect(op(in)).To(HaveOccurred())
			Expect(in.State()).To(Equal(state), "a failed guard must not change the state")
		},
		Entry("ExitInitializationMode while instantiated", fmi.Instantiated,
			func(in *instance.Instance) error { return in.ExitInitializationMode() }),
		Entry("EnterInitializationMode twice", fmi.InitializationMode,
			func(in *instance.Instance) error { return in.EnterInitializationMode(nil, 0, nil) }),
		Entry("EnterInitializationMode from step mode", fmi.StepMode,
			func(in *instance.Instance) error { return in.EnterInitializationMode(nil, 0, nil) }),
		Entry("DoStep while instantiated", fmi.Instantiated,
			func(in *instance.Instance) error { _, err := in.DoStep(0, 0.1); return err }),
		Entry("DoStep in initialization mode", fmi.InitializationMode,
			func(in *instance.Instance) error { _, err := in.DoStep(0, 0.1); return err }),
		Entry("DoStep in event mode", fmi.EventMode,
			func(in *instance.Instance) error { _, err := in.DoStep(0, 0.1); return err }),
		Entry("UpdateDiscreteStates outside event mode", fmi.StepMode,
			func(in *instance.Instance) error { _, err := in.UpdateDiscreteStates(); return err }),
		Entry("EnterStepMode while instantiated", fmi.Instantiated,
			func(in *instance.Instance) error { return in.EnterStepMode() }),
		Entry("EnterEventMode after terminate", fmi.Terminated,
			func(in *instance.Instance) error { return in.EnterEventMode() }),
		Entry("Terminate twice", fmi.Terminated,
			func(in *instance.Instance) error { return in.Terminate() }),
	)

	It("walks the co-simulation protocol end to end", func() {
		in := mustCS(instance.Options{EventModeUsed: true})

		Expect(in.EnterInitializationMode(nil, 0, nil)).To(Succeed())
		Expect(in.State()).To(Equal(fmi.InitializationMode))

		Expect(in.ExitInitializationMode()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.EventMode))

		flags, err := in.UpdateDiscreteStates()
		Expect(err).NotTo(HaveOccurred())
		Expect(flags.DiscreteStatesNeedUpdate).To(BeFalse())

		Expect(in.EnterStepMode()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.StepMode))

		res, err := in.DoStep(0, 0.1)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EarlyReturn).To(BeFalse())
		Expect(res.LastSuccessfulTime).To(BeNumerically("~", 0.1, 1e-12))

		Expect(in.Terminate()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.Terminated))
	})

	It("walks the model-exchange protocol end to end", func() {
		in := mustME()

		Expect(in.EnterInitializationMode(nil, 0, nil)).To(Succeed())
		Expect(in.ExitInitializationMode()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.EventMode))

		Expect(in.EnterContinuousTimeMode()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.ContinuousTimeMode))

		Expect(in.SetTime(0.5)).To(Succeed())
		Expect(in.Time()).To(Equal(0.5))

		Expect(in.EnterEventMode()).To(Succeed())
		Expect(in.State()).To(Equal(fmi.EventMode))
	})

	It("allows reset from any state", func() {
		for _, state := range []fmi.ModelState{
			fmi.Instantiated, fmi.InitializationMode, fmi.StepMode, fmi.EventMode, fmi.Terminated,
		} {
			in := inState(state)
			Expect(in.Reset()).To(Succeed())
			Expect(in.State()).To(Equal(fmi.Instantiated))
			Expect(in.Time()).To(BeZero())
		}
	})
})
