// pkg/api/counts_v1.go
package api

// ClusterCountV1 is the stable JSON/JSONL schema for one counted cluster.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ClusterCountV1 struct {
	ClusterID string   `json:"cluster_id"`
	Sources   []string `json:"sources"`
	Distinct  int      `json:"distinct"`
}
