package component

import "time"

// TTL destroys its entity once Remaining runs out. When Fade is set the
// sprite alpha follows Remaining/Total.
type TTL struct {
	Remaining time.Duration
	Total     time.Duration
	Fade      bool
}

var TTLComponent = NewComponent[TTL]()
