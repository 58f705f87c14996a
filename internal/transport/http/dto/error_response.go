package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream,omitempty"`
}

// SettingsResponse is what the browser bundle reads at start-up. Durations
// are in milliseconds.
type SettingsResponse struct {
	PollIntervalMS   int64  `json:"poll_interval_ms"`
	CSRFEnabled      bool   `json:"csrf_enabled"`
	CSRFMetaName     string `json:"csrf_meta_name"`
	CSRFHeader       string `json:"csrf_header"`
	StartingLabel    string `json:"starting_label"`
	StartedLabel     string `json:"started_label"`
	ViewResultLabel  string `json:"view_result_label"`
	ResultPathPrefix string `json:"result_path_prefix"`
}
