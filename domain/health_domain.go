package domain

var (
	MessageSuccessHealth = "サービスは正常です"
	MessageFailedHealth  = "サービスに異常があります"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	LatencyMS int64  `json:"latency_ms"`
}
