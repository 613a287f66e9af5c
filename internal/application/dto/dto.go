package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateProjectRequest struct {
	Name     string                 `json:"name" validate:"required,max=100"`
	Slug     string                 `json:"slug" validate:"required,max=60,slug"`
	Domain   *string                `json:"domain,omitempty"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

type CreateProjectResponse struct {
	ProjectID string `json:"projectId"`
}

type UpdateProjectRequest struct {
	Name     *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Slug     *string                 `json:"slug,omitempty" validate:"omitempty,max=60,slug"`
	Domain   *string                 `json:"domain,omitempty"`
	Settings *map[string]interface{} `json:"settings,omitempty"`
}

type UpdateProjectResponse struct {
	ProjectID string `json:"projectId"`
}

type CreateEntryRequest struct {
	Title    string                 `json:"title" validate:"required,max=200"`
	Slug     string                 `json:"slug" validate:"required,max=200,slug"`
	Content  string                 `json:"content"`
	Status   string                 `json:"status" validate:"omitempty,oneof=draft published archived pending rejected"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	ImageURL string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type CreateEntryResponse struct {
	EntryID string `json:"entryId"`
}

type UpdateEntryRequest struct {
	Title    *string                 `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug     *string                 `json:"slug,omitempty" validate:"omitempty,max=200,slug"`
	Content  *string                 `json:"content,omitempty"`
	Status   *string                 `json:"status,omitempty" validate:"omitempty,oneof=draft published archived pending rejected"`
	Metadata *map[string]interface{} `json:"metadata,omitempty"`
	ImageURL *string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type UpdateEntryResponse struct {
	EntryID string `json:"entryId"`
}

type ReviewEntryRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason,omitempty"`
}

type ReviewEntryResponse struct {
	EntryID string `json:"entryId"`
	Status  string `json:"status"`
}

// SubmitEntryRequest is the public submission payload. Honeypot is the
// hidden `_hp` form field; bots fill it, humans never see it.
type SubmitEntryRequest struct {
	ProjectID string                 `json:"projectId" validate:"required,uuid"`
	Data      map[string]interface{} `json:"data" validate:"required"`
	Honeypot  interface{}            `json:"_hp,omitempty"`
}

type SubmitEntryResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

type FileUploadedResponse struct {
	FileID  string `json:"fileId"`
	FileURL string `json:"fileUrl"`
}

type DomainAvailability struct {
	Available bool `json:"available"`
}
