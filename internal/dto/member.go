package dto

// ── members ──

// CreateMemberRequest admin member creation.
type CreateMemberRequest struct {
	Name       string  `json:"name"        binding:"required,max=40"`
	FamilyName string  `json:"family_name" binding:"required,max=40"`
	Email      string  `json:"email"       binding:"required,email,max=254"`
	Phone      *string `json:"phone"       binding:"omitempty,max=20"`
	Address    *string `json:"address"     binding:"omitempty,max=400"`
	Username   string  `json:"username"    binding:"omitempty,max=20"`
	Birthday   *string `json:"birthday"    binding:"omitempty,datetime=2006-01-02"`
}

// UpdateMemberRequest partial member update. Nil fields are kept.
type UpdateMemberRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=1,max=40"`
	FamilyName *string `json:"family_name" binding:"omitempty,min=1,max=40"`
	Email      *string `json:"email"       binding:"omitempty,email,max=254"`
	Phone      *string `json:"phone"       binding:"omitempty,max=20"`
	Address    *string `json:"address"     binding:"omitempty,max=400"`
	Username   *string `json:"username"    binding:"omitempty,max=20"`
	Birthday   *string `json:"birthday"    binding:"omitempty,datetime=2006-01-02"`
}

// MemberListRequest member list query.
type MemberListRequest struct {
	PaginationRequest
	Query string `form:"q" binding:"omitempty,max=50"`
}

// RegisterRequest public sign-up for the current session.
type RegisterRequest struct {
	CreateMemberRequest
	InscriptionNum *int64  `json:"inscription_num" binding:"omitempty,min=1"`
	University     *string `json:"university"      binding:"omitempty,max=7"`
	Education      *string `json:"education"       binding:"omitempty,max=3"`
	Year           *string `json:"year"            binding:"omitempty,max=1"`
}

// MemberResponse member with the derived is_new flag.
type MemberResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	FamilyName   string                `json:"family_name"`
	FullName     string                `json:"full_name"`
	Email        string                `json:"email"`
	Phone        *string               `json:"phone,omitempty"`
	Address      *string               `json:"address,omitempty"`
	Username     string                `json:"username"`
	Birthday     *string               `json:"birthday,omitempty"`
	IsNew        bool                  `json:"is_new"`
	Inscriptions []InscriptionResponse `json:"inscriptions"`
	CreatedAt    string                `json:"created_at"`
}

// MemberBrief member summary embedded in an inscription.
type MemberBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsNew    bool   `json:"is_new"`
}

// RegisterResponse result of a public sign-up.
type RegisterResponse struct {
	Member      MemberResponse      `json:"member"`
	Inscription InscriptionResponse `json:"inscription"`
}
