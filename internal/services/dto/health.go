package dto

type HealthServices struct {
	Server   bool `json:"server"`
	Database bool `json:"database"`
	Storage  bool `json:"storage"`
}

type HealthStatus struct {
	Status   string         `json:"status" example:"OK"`
	Services HealthServices `json:"services"`
	Message  string         `json:"message"`
}

func (h HealthStatus) Healthy() bool {
	return h.Services.Server && h.Services.Database && h.Services.Storage
}
