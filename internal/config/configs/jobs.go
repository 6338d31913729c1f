package configs

// Jobs configures the background status sweeper that completes campaigns
// whose goal has been reached or whose run has elapsed. SweepSchedule is a
// cron expression understood by robfig/cron.
type Jobs struct {
	// SweepEnabled turns the sweeper on. Disabled by default so one-off
	// tooling against the same database does not race it.
	SweepEnabled bool `env:"SWEEP_ENABLED" envDefault:"false"`
	// SweepSchedule defaults to the top of every hour.
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"0 * * * *"`
}
