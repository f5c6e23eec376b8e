package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type orderedEvent struct {
	EventBase
}

func newOrderedEvent(t VTimeInSec, h Handler, secondary bool) orderedEvent {
	e := orderedEvent{}
	e.time = t
	e.handler = h
	e.secondary = secondary
	return e
}

type recordingHandler struct {
	name    string
	engine  *SerialEngine
	order   *[]string
	onEvent func(e Event)
}

func (h *recordingHandler) Handle(e Event) error {
	*h.order = append(*h.order, h.name)
	if h.onEvent != nil {
		h.onEvent(e)
	}
	return nil
}

var _ = Describe("SerialEngine", func() {
	var (
		engine *SerialEngine
	)

	BeforeEach(func() {
		engine = NewSerialEngine()
	})

	It("should run events in time order, scheduling more as it goes", func() {
		var order []string

		h1 := &recordingHandler{name: "h1", order: &order}
		h2 := &recordingHandler{name: "h2", order: &order}

		h2.onEvent = func(e Event) {
			engine.Schedule(newOrderedEvent(3, h1, false))
			engine.Schedule(newOrderedEvent(5, h1, false))
		}

		engine.Schedule(newOrderedEvent(4, h1, false))
		engine.Schedule(newOrderedEvent(2, h2, false))

		Expect(engine.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"h2", "h1", "h1", "h1"}))
	})

	It("should run secondary events after primary events at the same time", func() {
		var order []string

		h1 := &recordingHandler{name: "h1", order: &order}
		h2 := &recordingHandler{name: "h2", order: &order}
		h3 := &recordingHandler{name: "h3", order: &order}

		engine.Schedule(newOrderedEvent(2, h1, true))
		engine.Schedule(newOrderedEvent(2, h2, false))
		engine.Schedule(newOrderedEvent(2, h3, false))

		Expect(engine.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"h2", "h3", "h1"}))
	})

	It("should track current time as events are processed", func() {
		h := &recordingHandler{order: &[]string{}}
		engine.Schedule(newOrderedEvent(7, h, false))

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(7)))
	})
})
