package potmanager

// Participant is one seat's stake in a hand
type Participant struct {
	ID string
	// Contributed is everything the participant put in during the hand
	Contributed int
	// Eligible is false once the participant folded or left the table
	// Their chips still play as dead money
	Eligible bool
}
