package machine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tmsim/internal/machine"
)

func countOnes(c machine.Configuration) int {
	n := 0
	for _, s := range c.Tape.Cells() {
		if s == machine.One {
			n++
		}
	}
	return n
}

var _ = Describe("Run", func() {
	Context("binary incrementer", func() {
		DescribeTable("adds one",
			func(input, want string) {
				res := machine.Run(input, incrementer(), 1000)
				Expect(res.Outcome).To(Equal(machine.Accepted))
				Expect(res.Output()).To(Equal(want))
			},
			Entry("no carry out", "101", "110"),
			Entry("carry grows the tape left", "111", "1000"),
			Entry("single zero", "0", "1"),
			Entry("empty input", "", "1"),
		)

		It("grows the tape to the left of the input", func() {
			res := machine.Run("111", incrementer(), 1000)
			Expect(res.Final.Tape.Head()).To(Equal(0))
			Expect(res.Final.Tape.Read()).To(Equal(machine.One))
		})
	})

	Context("two-state busy beaver", func() {
		It("halts after exactly six steps with four ones", func() {
			res := machine.Run("", busyBeaver2(), 6)
			Expect(res.Outcome).To(Equal(machine.Accepted))
			Expect(res.Steps).To(Equal(6))
			Expect(countOnes(res.Final)).To(Equal(4))
			Expect(res.Output()).To(Equal("1111"))
		})

		It("is cut off one step short", func() {
			res := machine.Run("", busyBeaver2(), 5)
			Expect(res.Outcome).To(Equal(machine.StepLimitReached))
			Expect(res.Final.State).To(Equal(qB))
		})
	})

	Context("step ceiling", func() {
		It("stops a machine that never halts", func() {
			res := machine.Run("", runaway(), 10)
			Expect(res.Outcome).To(Equal(machine.StepLimitReached))
			Expect(res.Steps).To(Equal(10))
			Expect(res.Final.State.IsNamed()).To(BeTrue())
			Expect(res.Outcome.Halted()).To(BeFalse())
		})

		It("takes no step with a zero ceiling", func() {
			res := machine.Run("1", incrementer(), 0)
			Expect(res.Outcome).To(Equal(machine.StepLimitReached))
			Expect(res.Steps).To(BeZero())
			Expect(res.Final.Equal(res.Initial)).To(BeTrue())
		})

		It("iterates deep runs without recursion", func() {
			res := machine.Run("", runaway(), 200000)
			Expect(res.Steps).To(Equal(200000))
			Expect(res.Final.Tape.Head()).To(Equal(200000))
		})
	})

	Context("rejection", func() {
		It("distinguishes an explicit reject from a missing rule", func() {
			explicit := machine.Run("0", splitter(), 100)
			implicit := machine.Run("1", splitter(), 100)

			Expect(explicit.Outcome).To(Equal(machine.RejectedExplicit))
			Expect(implicit.Outcome).To(Equal(machine.RejectedImplicit))
			Expect(explicit.Final.State).To(Equal(machine.Reject))
			Expect(implicit.Final.State).To(Equal(machine.Reject))
			Expect(explicit.Outcome).NotTo(Equal(implicit.Outcome))
			Expect(explicit.Outcome.Rejected()).To(BeTrue())
			Expect(implicit.Outcome.Rejected()).To(BeTrue())
		})

		It("rejects implicitly before any step when nothing matches", func() {
			res := machine.Run("x", incrementer(), 100)
			Expect(res.Outcome).To(Equal(machine.RejectedImplicit))
			Expect(res.Steps).To(BeZero())
			Expect(res.Output()).To(Equal("x"))
		})
	})

	It("is deterministic", func() {
		a := machine.Run("1011", incrementer(), 50)
		b := machine.Run("1011", incrementer(), 50)
		Expect(a.Outcome).To(Equal(b.Outcome))
		Expect(a.Steps).To(Equal(b.Steps))
		Expect(a.Final.Equal(b.Final)).To(BeTrue())
	})

	Context("trace", func() {
		It("replays every configuration from the initial one", func() {
			res := machine.Run("101", incrementer(), 1000)

			var steps []int
			var last machine.Configuration
			for i, c := range res.Trace() {
				steps = append(steps, i)
				last = c
			}
			Expect(steps).To(HaveLen(res.Steps + 1))
			Expect(steps[0]).To(Equal(0))
			Expect(last.Equal(res.Final)).To(BeTrue())
		})

		It("can be abandoned early", func() {
			res := machine.Run("", runaway(), 100)
			n := 0
			for range res.Trace() {
				n++
				if n == 3 {
					break
				}
			}
			Expect(n).To(Equal(3))
		})

		It("ends on the stuck configuration for an implicit reject", func() {
			res := machine.Run("1", splitter(), 100)
			var last machine.Configuration
			for _, c := range res.Trace() {
				last = c
			}
			Expect(last.State).To(Equal(q1))
			Expect(last.Tape.Equal(res.Final.Tape)).To(BeTrue())
		})
	})
})

var _ = Describe("Step", func() {
	It("does not modify its input", func() {
		c := machine.Initial("101")
		before := c.Tape.String()

		first, ok1 := machine.Step(incrementer(), c)
		second, ok2 := machine.Step(incrementer(), c)

		Expect(ok1).To(BeTrue())
		Expect(ok2).To(BeTrue())
		Expect(first.Equal(second)).To(BeTrue())
		Expect(c.Tape.String()).To(Equal(before))
		Expect(c.State).To(Equal(machine.Start))
	})

	It("writes, then moves, then changes state", func() {
		rs := machine.NewRuleSet(rule(machine.Start, machine.Zero, q1, machine.One, machine.Right))
		next, ok := machine.Step(rs, machine.Initial("0"))
		Expect(ok).To(BeTrue())
		Expect(next.State).To(Equal(q1))
		Expect(next.Tape.Cells()).To(Equal([]machine.Symbol{machine.One}))
		Expect(next.Tape.Head()).To(Equal(1))
		Expect(next.Tape.Read()).To(Equal(machine.Blank))
	})

	It("never fires from a terminal state", func() {
		rs := machine.NewRuleSet(rule(machine.Accept, machine.Blank, machine.Start, machine.One, machine.Stay))
		_, ok := machine.Step(rs, machine.Configuration{State: machine.Accept})
		Expect(ok).To(BeFalse())
	})

	It("treats unknown characters like any other symbol", func() {
		hash := machine.Other('#')
		rs := machine.NewRuleSet(rule(machine.Start, hash, machine.Accept, machine.Other('@'), machine.Left))
		res := machine.Run("#", rs, 10)
		Expect(res.Outcome).To(Equal(machine.Accepted))
		Expect(res.Output()).To(Equal("@"))
	})
})

var _ = Describe("Output", func() {
	It("trims outer blanks only", func() {
		c := machine.Configuration{Tape: machine.ParseTape("  1 0  ")}
		Expect(machine.Output(c)).To(Equal("1 0"))
	})

	It("is idempotent", func() {
		c := machine.Configuration{Tape: machine.ParseTape(" a b ")}
		once := machine.Output(c)
		twice := machine.Output(machine.Configuration{Tape: machine.ParseTape(once)})
		Expect(twice).To(Equal(once))
	})

	It("is empty for an all-blank tape", func() {
		c := machine.Configuration{Tape: machine.NewTape(machine.Blank, machine.Blank)}
		Expect(machine.Output(c)).To(BeEmpty())
	})
})
