package service

import (
	"time"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/model"
)

func toSessionResponse(s lifecycle.Session, current lifecycle.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Label:   s.Label(),
		Start:   dto.FormatDate(s.Start()),
		End:     dto.FormatDate(s.End()),
		Current: s == current,
	}
}

func toInscriptionResponse(ins *model.Inscription, ref time.Time) dto.InscriptionResponse {
	resp := dto.InscriptionResponse{
		ID:             ins.InscriptionID,
		MemberID:       ins.MemberID,
		Session:        ins.SessionValue().Label(),
		Role:           string(ins.Role),
		RoleName:       ins.Role.Name(),
		InscriptionNum: ins.InscriptionNum,
		University:     ins.University,
		Education:      ins.Education,
		Year:           ins.Year,
		Confirmed:      ins.Confirmed,
		DreamsparkKey:  ins.DreamsparkKey,
		MemberCard:     ins.MemberCard,
		IsCurrent:      ins.IsCurrent(ref),
	}
	if ins.Member != nil {
		resp.Member = &dto.MemberBrief{
			ID:       ins.Member.MemberID,
			FullName: ins.Member.FullName(),
			Email:    ins.Member.Email,
			Username: ins.Member.Username,
			IsNew:    ins.Member.IsNew(ref),
		}
	}
	return resp
}

// toMemberResponse expects m.Inscriptions to be loaded.
func toMemberResponse(m *model.Member, ref time.Time) dto.MemberResponse {
	inscriptions := make([]dto.InscriptionResponse, 0, len(m.Inscriptions))
	for i := range m.Inscriptions {
		inscriptions = append(inscriptions, toInscriptionResponse(&m.Inscriptions[i], ref))
	}
	return dto.MemberResponse{
		ID:           m.MemberID,
		Name:         m.Name,
		FamilyName:   m.FamilyName,
		FullName:     m.FullName(),
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		Username:     m.Username,
		Birthday:     dto.FormatDatePtr(m.Birthday),
		IsNew:        m.IsNew(ref),
		Inscriptions: inscriptions,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

func toEventResponse(e *model.Event, ref time.Time) dto.EventResponse {
	links := make([]dto.EventLinkResponse, 0, len(e.Links))
	for _, l := range e.Links {
		links = append(links, dto.EventLinkResponse{ID: l.LinkID, Title: l.Title, Link: l.Link})
	}
	return dto.EventResponse{
		ID:            e.EventID,
		Title:         e.Title,
		Description:   e.Description,
		EventType:     e.EventType,
		EventTypeName: model.EventTypes[e.EventType],
		Place:         e.Place,
		StartDate:     dto.FormatDate(e.StartDate),
		EndDate:       dto.FormatDatePtr(e.EndDate),
		IsOurs:        e.IsOurs,
		IsPassed:      e.IsPassed(ref),
		Version:       e.Version,
		Links:         links,
	}
}

func toPostResponse(p *model.Post) dto.PostResponse {
	var publishedAt *string
	if p.PublishedAt != nil {
		s := p.PublishedAt.Format(time.RFC3339)
		publishedAt = &s
	}
	return dto.PostResponse{
		ID:          p.PostID,
		Title:       p.Title,
		Summary:     p.Summary,
		Body:        p.Body,
		Author:      p.Author,
		Published:   p.Published,
		PublishedAt: publishedAt,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
