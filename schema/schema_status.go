package schema

import "time"

// HistoryStatus represents the status of the build history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalBuilds    int              `json:"total_builds"`
	LastBuildID    int64            `json:"last_build_id"`
	LastBuildTime  time.Time        `json:"last_build_time"`
	OldestBuild    time.Time        `json:"oldest_build_time"`
	TotalDocuments int              `json:"total_documents"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// DocumentStoreStatus represents the status of the document store.
type DocumentStoreStatus struct {
	Backend    string           `json:"backend"`
	Connected  bool             `json:"connected"`
	Version    uint             `json:"migration_version"`
	TableSizes map[string]int64 `json:"table_sizes"`
}
