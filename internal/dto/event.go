package dto

// ── events ──

// CreateEventRequest a new event.
type CreateEventRequest struct {
	Title       string  `json:"title"       binding:"required,max=100"`
	Description string  `json:"description" binding:"required,max=300"`
	EventType   string  `json:"event_type"  binding:"required,oneof=con cha tra tlk unk"`
	Place       string  `json:"place"       binding:"omitempty,max=80"`
	StartDate   string  `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    binding:"omitempty,datetime=2006-01-02"`
	IsOurs      bool    `json:"is_ours"`
}

// UpdateEventRequest partial update guarded by the version read earlier.
type UpdateEventRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=300"`
	EventType   *string `json:"event_type"  binding:"omitempty,oneof=con cha tra tlk unk"`
	Place       *string `json:"place"       binding:"omitempty,max=80"`
	StartDate   *string `json:"start_date"  binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    binding:"omitempty,datetime=2006-01-02"`
	ClearEnd    bool    `json:"clear_end"` // drops the end date
	IsOurs      *bool   `json:"is_ours"`
	Version     int     `json:"version"     binding:"required,min=1"`
}

// AddEventLinkRequest attaches a link to an event.
type AddEventLinkRequest struct {
	Title string `json:"title" binding:"required,max=40"`
	Link  string `json:"link"  binding:"required,url,max=200"`
}

// EventResponse event with derived fields.
type EventResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	EventType     string              `json:"event_type"`
	EventTypeName string              `json:"event_type_name"`
	Place         string              `json:"place"`
	StartDate     string              `json:"start_date"`
	EndDate       *string             `json:"end_date,omitempty"`
	IsOurs        bool                `json:"is_ours"`
	IsPassed      bool                `json:"is_passed"`
	Version       int                 `json:"version"`
	Links         []EventLinkResponse `json:"links"`
}

// EventLinkResponse an event link.
type EventLinkResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}
