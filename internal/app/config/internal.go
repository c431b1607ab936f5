package config

type InternalConfig struct {
	App        App           `mapstructure:"app"`
	Draft      AppDraft      `mapstructure:"draft"`
	SubmitLock AppSubmitLock `mapstructure:"submit_lock"`
	Reaper     AppReaper     `mapstructure:"reaper"`
	ChangeFeed AppChangeFeed `mapstructure:"change_feed"`
}

type App struct {
	Env                       string   `mapstructure:"env"`
	Port                      string   `mapstructure:"port"`
	Version                   string   `mapstructure:"version"`
	Address                   string   `mapstructure:"address"`
	Timezone                  string   `mapstructure:"timezone"`
	EndpointPrefix            string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins            []string `mapstructure:"allowed_origins"`
	MaxRequests               int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds  int      `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds int      `mapstructure:"max_time_requests_per_seconds"`
}

type AppDraft struct {
	TTLInHours int `mapstructure:"ttl_in_hours"`
}

type AppSubmitLock struct {
	TTLInSeconds int `mapstructure:"ttl_in_seconds"`
}

type AppReaper struct {
	Enabled                bool   `mapstructure:"enabled"`
	CronSpec               string `mapstructure:"cron_spec"`
	GracePeriodInMinutes   int    `mapstructure:"grace_period_in_minutes"`
	LeaderLockTTLInSeconds int    `mapstructure:"leader_lock_ttl_in_seconds"`
}

type AppChangeFeed struct {
	Exchange string `mapstructure:"exchange"`
}
