package dto

// UploadResult - куда попал файл
type UploadResult struct {
	URL          string `json:"url" example:"/files/general/3f6c1d2e.png"`
	PublicID     string `json:"publicId" example:"general/3f6c1d2e"`
	ResourceType string `json:"resourceType" example:"image"`
}

type UploadResponse struct {
	Message string       `json:"message" example:"File uploaded successfully"`
	Data    UploadResult `json:"data"`
}
