package stage

// Record statuses.
const (
	StatusPending = "pending"
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// Record is the per-file entry of the envelope.
type Record struct {
	Locator     string `json:"locator"`
	Status      string `json:"status"`
	Plugin      string `json:"plugin,omitempty"`
	MigrationID string `json:"migrationId,omitempty"`
	Error       string `json:"error,omitempty"`
}
