package common

const (
	ComponentDownloader  = "downloader"
	ComponentLogFetcher  = "log-fetcher"
	ComponentSubscriber  = "subscriber"
	ComponentSyncManager = "sync-manager"
	ComponentQuarantine  = "quarantine"
	ComponentProcessor   = "processor"
	ComponentProjector   = "projector"
	ComponentContent     = "content"
	ComponentReaper      = "reaper"
	ComponentRoles       = "roles"
	ComponentMaintenance = "maintenance"
	ComponentAPI         = "api"
	ComponentMetrics     = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentDownloader:  {},
	ComponentLogFetcher:  {},
	ComponentSubscriber:  {},
	ComponentSyncManager: {},
	ComponentQuarantine:  {},
	ComponentProcessor:   {},
	ComponentProjector:   {},
	ComponentContent:     {},
	ComponentReaper:      {},
	ComponentRoles:       {},
	ComponentMaintenance: {},
	ComponentAPI:         {},
	ComponentMetrics:     {},
}
