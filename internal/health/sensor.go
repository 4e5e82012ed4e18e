package health

// SensorClient reads activity metrics from the platform health store.
// Both reads are best effort: a client that has no data, lacks
// permission, or is unavailable reports zero rather than an error.
type SensorClient interface {
	// TodaySteps returns the step count since local midnight.
	TodaySteps() int
	// WeeklySleepMinutes returns total sleep minutes since Monday
	// midnight of the current week.
	WeeklySleepMinutes() int
}

// NoopSensor is the fallback when no health data source is configured.
type NoopSensor struct{}

func (NoopSensor) TodaySteps() int         { return 0 }
func (NoopSensor) WeeklySleepMinutes() int { return 0 }
