package dto

// ── inscriptions ──

// CreateInscriptionRequest enrolls a member. Session defaults to the current one.
type CreateInscriptionRequest struct {
	MemberID       string  `json:"member_id"       binding:"required,uuid"`
	Session        string  `json:"session"         binding:"omitempty,max=9"` // "2023-2024"
	Role           string  `json:"role"            binding:"omitempty,max=1"`
	InscriptionNum *int64  `json:"inscription_num" binding:"omitempty,min=1"`
	University     *string `json:"university"     binding:"omitempty,max=7"` // nil means FSS, "" means other
	Education      *string `json:"education"      binding:"omitempty,max=3"` // nil means LF
	Year           *string `json:"year"           binding:"omitempty,max=1"` // nil means 1
	DreamsparkKey  bool    `json:"dreamspark_key"`
	MemberCard     bool    `json:"member_card"`
}

// UpdateInscriptionRequest partial update. The session of an inscription never changes.
type UpdateInscriptionRequest struct {
	Role           *string `json:"role"            binding:"omitempty,max=1"`
	InscriptionNum *int64  `json:"inscription_num" binding:"omitempty,min=1"`
	University     *string `json:"university"      binding:"omitempty,max=7"`
	Education      *string `json:"education"       binding:"omitempty,max=3"`
	Year           *string `json:"year"            binding:"omitempty,max=1"`
	Confirmed      *bool   `json:"confirmed"`
	DreamsparkKey  *bool   `json:"dreamspark_key"`
	MemberCard     *bool   `json:"member_card"`
}

// InscriptionListRequest lists one session; empty means current.
type InscriptionListRequest struct {
	Session string `form:"session" binding:"omitempty,max=9"`
}

// InscriptionResponse inscription with derived fields.
type InscriptionResponse struct {
	ID             string       `json:"id"`
	MemberID       string       `json:"member_id"`
	Session        string       `json:"session"`
	Role           string       `json:"role"`
	RoleName       string       `json:"role_name"`
	InscriptionNum *int64       `json:"inscription_num,omitempty"`
	University     string       `json:"university"`
	Education      string       `json:"education"`
	Year           string       `json:"year"`
	Confirmed      bool         `json:"confirmed"`
	DreamsparkKey  bool         `json:"dreamspark_key"`
	MemberCard     bool         `json:"member_card"`
	IsCurrent      bool         `json:"is_current"`
	Member         *MemberBrief `json:"member,omitempty"`
}
