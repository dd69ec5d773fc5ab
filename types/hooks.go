package types

// Hooks defines callbacks for System events.
//
// All hooks are optional and called synchronously, after the district
// configuration has handled the event.
//
// Example:
//
//	hooks := &electosim.Hooks{
//	    OnEvent: func(ev electosim.Event) {
//	        log.Printf("applied %s", ev)
//	    },
//	}
type Hooks struct {
	// OnEvent is called for every event emitted by the System.
	OnEvent func(event Event)

	// OnError is called when the district configuration fails to handle an event.
	OnError func(event Event, err error)
}
