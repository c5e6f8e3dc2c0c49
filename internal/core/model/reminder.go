package model

// Reminder is one notification request handed from the engine to a notifier.
type Reminder struct {
	Message      string
	SoundEnabled bool
}
