package partition

import "bytes"

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *Body
	bodyB *Body
}

// makePairKey orders the bodies by identifier so (a, b) and (b, a) share a key
func makePairKey(bodyA, bodyB *Body) pairKey {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case TRIGGER_ENTER:
		return "trigger_enter"
	case COLLISION_ENTER:
		return "collision_enter"
	case TRIGGER_STAY:
		return "trigger_stay"
	case COLLISION_STAY:
		return "collision_stay"
	case TRIGGER_EXIT:
		return "trigger_exit"
	case COLLISION_EXIT:
		return "collision_exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Bodies() (*Body, *Body)
}

type pairEvent struct {
	BodyA *Body
	BodyB *Body
}

func (e pairEvent) Bodies() (*Body, *Body) { return e.BodyA, e.BodyB }

// Trigger events
type TriggerEnterEvent struct{ pairEvent }

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct{ pairEvent }

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct{ pairEvent }

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events
type CollisionEnterEvent struct{ pairEvent }

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct{ pairEvent }

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct{ pairEvent }

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches contact events once per step.
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Pairs in contact during the previous and the current step
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts marks the pairs of contacts as active for this step and returns the
// contacts that do not involve a trigger.
func (e *Events) recordContacts(contacts []*Contact) []*Contact {
	n := 0
	for _, c := range contacts {
		pair := makePairKey(c.BodyA, c.BodyB)
		e.currentActivePairs[pair] = true

		if !c.BodyA.IsTrigger && !c.BodyB.IsTrigger {
			contacts[n] = c
			n++
		}
	}

	return contacts[:n]
}

// forget drops every tracked pair involving body, without emitting an exit event.
func (e *Events) forget(body *Body) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
}

// processContactEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processContactEvents() {
	for pair := range e.currentActivePairs {
		isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger
		p := pairEvent{BodyA: pair.bodyA, BodyB: pair.bodyB}

		switch {
		case e.previousActivePairs[pair] && isTrigger:
			e.buffer = append(e.buffer, TriggerStayEvent{p})
		case e.previousActivePairs[pair]:
			e.buffer = append(e.buffer, CollisionStayEvent{p})
		case isTrigger:
			e.buffer = append(e.buffer, TriggerEnterEvent{p})
		default:
			e.buffer = append(e.buffer, CollisionEnterEvent{p})
		}
	}

	for pair := range e.previousActivePairs {
		if e.currentActivePairs[pair] {
			continue
		}

		p := pairEvent{BodyA: pair.bodyA, BodyB: pair.bodyB}
		if pair.bodyA.IsTrigger || pair.bodyB.IsTrigger {
			e.buffer = append(e.buffer, TriggerExitEvent{p})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{p})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
