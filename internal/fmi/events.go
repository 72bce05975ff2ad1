package fmi

// EventFlags describes what changed after a discrete-event update. A fresh
// value is produced on each UpdateDiscreteStates call; it is never persisted.
type EventFlags struct {
	// DiscreteStatesNeedUpdate asks the importer to stay in Event Mode for
	// another event iteration.
	DiscreteStatesNeedUpdate bool
	// TerminateSimulation requests that the importer call Terminate.
	TerminateSimulation bool
	// NominalsOfContinuousStatesChanged is only meaningful in Model Exchange.
	NominalsOfContinuousStatesChanged bool
	// ValuesOfContinuousStatesChanged signals a state re-initialization.
	ValuesOfContinuousStatesChanged bool
	// NextEventTime is the absolute time of the next time event, if any.
	NextEventTime *float64
}

// Reset clears all flags.
func (f *EventFlags) Reset() {
	*f = EventFlags{}
}
