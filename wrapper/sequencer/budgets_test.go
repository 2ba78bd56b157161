package sequencer

import (
	"strings"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sumpaxi/wrapper/opcode"
)

var _ = g.Describe("Budgets", func() {
	g.It("should have a budget for every timed phase only", func() {
		b := DefaultBudgets()

		for s := Idle; s < NumStates; s++ {
			if s.IsTimed() {
				Expect(b.Of(s)).To(BeNumerically(">", 0), "phase %s", s)
			} else {
				Expect(b.Of(s)).To(BeZero(), "phase %s", s)
			}
		}
	})

	g.It("should load a YAML profile on top of the defaults", func() {
		profile := "SerialReadSettle: 512\nStateHold: 0\n"

		b, err := LoadBudgets(strings.NewReader(profile), DefaultBudgets())

		Expect(err).NotTo(HaveOccurred())
		Expect(b.Of(SerialReadSettle)).To(Equal(uint32(512)))
		Expect(b.Of(StateHold)).To(BeZero())
		Expect(b.Ticks(StateHold)).To(Equal(uint32(1)))
		Expect(b.Of(SerialAddrHold)).To(Equal(uint32(40)))
	})

	g.It("should accept an empty profile", func() {
		b, err := LoadBudgets(strings.NewReader(""), DefaultBudgets())

		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(DefaultBudgets()))
	})

	g.It("should reject unknown and untimed phases", func() {
		_, err := LoadBudgets(strings.NewReader("Warp: 3\n"), DefaultBudgets())
		Expect(err).To(MatchError(ErrUnknownPhase))

		_, err = LoadBudgets(strings.NewReader("Done: 3\n"), DefaultBudgets())
		Expect(err).To(MatchError(ErrUnknownPhase))

		_, err = LoadBudgets(strings.NewReader("LocalReadAwait: 3\n"), DefaultBudgets())
		Expect(err).To(MatchError(ErrUnknownPhase))
	})

	g.It("should reject budgets out of range", func() {
		_, err := LoadBudgets(
			strings.NewReader("SerialReadSettle: 16777216\n"), DefaultBudgets())

		Expect(err).To(MatchError(ErrBudgetRange))
	})

	g.It("should round trip through a profile", func() {
		b := DefaultBudgets()

		out, err := b.Profile().Apply(Budgets{})

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(b))
	})

	g.It("should pace each phase by its own budget", func() {
		h := newHarness()
		h.budgets = Budgets{}
		Expect(h.budgets.Set(StateAssert, 3)).To(Succeed())
		Expect(h.budgets.Set(StateHold, 5)).To(Succeed())

		h.start(opcode.Sleep, 0, 0)
		n := h.runUntilIdle(100)

		Expect(n).To(Equal(3 + 5 + 1))

		asserts := 0
		for _, b := range h.buses {
			if b.CtrlWrite {
				asserts++
			}
		}
		Expect(asserts).To(Equal(3))
	})
})

var _ = g.Describe("Timer", func() {
	g.It("should count down and hold at zero", func() {
		var t Timer
		t.Load(2)

		t.Tick()
		Expect(t.Expired()).To(BeFalse())
		t.Tick()
		Expect(t.Expired()).To(BeTrue())
		t.Tick()
		Expect(t.Remaining()).To(BeZero())
	})
})

var _ = g.Describe("State", func() {
	g.It("should name every state", func() {
		for s := Idle; s < NumStates; s++ {
			parsed, ok := ParseState(s.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(s))
		}

		Expect(State(99).String()).To(Equal("State(99)"))
	})
})
