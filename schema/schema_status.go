package schema

import "time"

// StoreStatus represents the status of the survey store.
type StoreStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalResponses     int              `json:"total_responses"`
	LastResponseTime   time.Time        `json:"last_response_time"`
	OldestResponseTime time.Time        `json:"oldest_response_time"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}
