package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/notify"
	"github.com/fssotc/website/internal/repository"
)

// ── inscription errors ──

var (
	// ErrInscriptionExists reports a second inscription for the same member and session.
	ErrInscriptionExists = errors.New("member is already inscribed for this session")

	// ErrInscriptionNotFound reports no inscription with the given id.
	ErrInscriptionNotFound = errors.New("inscription not found")

	// ErrInvalidChoice reports a role, university, education or year outside its list.
	ErrInvalidChoice = errors.New("unknown role, university, education or year")
)

// InscriptionService manages session enrollments. Creating an inscription
// publishes exactly one InscriptionCreated event; updates publish none.
type InscriptionService interface {
	Create(ctx context.Context, req *dto.CreateInscriptionRequest) (*dto.InscriptionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InscriptionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInscriptionRequest) (*dto.InscriptionResponse, error)
	Confirm(ctx context.Context, id string) (*dto.InscriptionResponse, error)
	Delete(ctx context.Context, id string) error
	// ListBySession lists one session; an empty label is the current session.
	ListBySession(ctx context.Context, label string) ([]dto.InscriptionResponse, error)
}

type inscriptionService struct {
	repo      *repository.Repository
	cal       Calendar
	publisher notify.Publisher
	logger    *zap.Logger
}

// NewInscriptionService creates an InscriptionService.
func NewInscriptionService(repo *repository.Repository, cal Calendar, publisher notify.Publisher, logger *zap.Logger) InscriptionService {
	return &inscriptionService{repo: repo, cal: cal, publisher: publisher, logger: logger}
}

func (s *inscriptionService) Create(ctx context.Context, req *dto.CreateInscriptionRequest) (*dto.InscriptionResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("get member failed", zap.String("member_id", req.MemberID), zap.Error(err))
		return nil, err
	}

	session, err := resolveSession(s.cal, req.Session)
	if err != nil {
		return nil, err
	}

	ins, err := buildInscription(member.MemberID, session, inscriptionFields{
		Role:          req.Role,
		Num:           req.InscriptionNum,
		University:    req.University,
		Education:     req.Education,
		Year:          req.Year,
		DreamsparkKey: req.DreamsparkKey,
		MemberCard:    req.MemberCard,
	})
	if err != nil {
		return nil, err
	}

	if err := insertInscription(ctx, s.repo, ins); err != nil {
		if !errors.Is(err, ErrInscriptionExists) {
			s.logger.Error("create inscription failed", zap.String("member_id", member.MemberID), zap.Error(err))
		}
		return nil, err
	}
	publishCreated(s.publisher, ins, member, s.cal.Now())

	member.Inscriptions = append(member.Inscriptions, *ins)
	ins.Member = member
	resp := toInscriptionResponse(ins, s.cal.Today())
	return &resp, nil
}

func (s *inscriptionService) GetByID(ctx context.Context, id string) (*dto.InscriptionResponse, error) {
	ins, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInscriptionResponse(ins, s.cal.Today())
	return &resp, nil
}

func (s *inscriptionService) Update(ctx context.Context, id string, req *dto.UpdateInscriptionRequest) (*dto.InscriptionResponse, error) {
	ins, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !model.Role(*req.Role).Valid() {
			return nil, ErrInvalidChoice
		}
		ins.Role = model.Role(*req.Role)
	}
	if req.InscriptionNum != nil {
		ins.InscriptionNum = req.InscriptionNum
	}
	if req.University != nil {
		if _, ok := model.Universities[*req.University]; !ok {
			return nil, ErrInvalidChoice
		}
		ins.University = *req.University
	}
	if req.Education != nil {
		if _, ok := model.Educations[*req.Education]; !ok {
			return nil, ErrInvalidChoice
		}
		ins.Education = *req.Education
	}
	if req.Year != nil {
		if !model.StudyYears[*req.Year] {
			return nil, ErrInvalidChoice
		}
		ins.Year = *req.Year
	}
	if req.Confirmed != nil {
		ins.Confirmed = *req.Confirmed
	}
	if req.DreamsparkKey != nil {
		ins.DreamsparkKey = *req.DreamsparkKey
	}
	if req.MemberCard != nil {
		ins.MemberCard = *req.MemberCard
	}

	return s.save(ctx, ins)
}

func (s *inscriptionService) Confirm(ctx context.Context, id string) (*dto.InscriptionResponse, error) {
	ins, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	ins.Confirmed = true
	return s.save(ctx, ins)
}

func (s *inscriptionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Inscription.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInscriptionNotFound
		}
		s.logger.Error("delete inscription failed", zap.String("inscription_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *inscriptionService) ListBySession(ctx context.Context, label string) ([]dto.InscriptionResponse, error) {
	session, err := resolveSession(s.cal, label)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Inscription.ListBySession(ctx, session.Start())
	if err != nil {
		s.logger.Error("list inscriptions failed", zap.String("session", session.Label()), zap.Error(err))
		return nil, err
	}

	today := s.cal.Today()
	result := make([]dto.InscriptionResponse, 0, len(list))
	for i := range list {
		result = append(result, toInscriptionResponse(&list[i], today))
	}
	return result, nil
}

func (s *inscriptionService) get(ctx context.Context, id string) (*model.Inscription, error) {
	ins, err := s.repo.Inscription.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInscriptionNotFound
		}
		s.logger.Error("get inscription failed", zap.String("inscription_id", id), zap.Error(err))
		return nil, err
	}
	return ins, nil
}

func (s *inscriptionService) save(ctx context.Context, ins *model.Inscription) (*dto.InscriptionResponse, error) {
	if err := s.repo.Inscription.Update(ctx, ins); err != nil {
		s.logger.Error("update inscription failed", zap.String("inscription_id", ins.InscriptionID), zap.Error(err))
		return nil, err
	}
	resp := toInscriptionResponse(ins, s.cal.Today())
	return &resp, nil
}

// inscriptionFields optional enrollment details. Nil pointers take the
// defaults FSS, LF and first year.
type inscriptionFields struct {
	Role          string
	Num           *int64
	University    *string
	Education     *string
	Year          *string
	DreamsparkKey bool
	MemberCard    bool
}

func buildInscription(memberID string, session lifecycle.Session, f inscriptionFields) (*model.Inscription, error) {
	ins := &model.Inscription{
		MemberID:       memberID,
		Session:        session.Start(),
		Role:           model.Role(f.Role),
		InscriptionNum: f.Num,
		University:     stringOr(f.University, "FSS"),
		Education:      stringOr(f.Education, "LF"),
		Year:           stringOr(f.Year, "1"),
		DreamsparkKey:  f.DreamsparkKey,
		MemberCard:     f.MemberCard,
	}

	if !ins.Role.Valid() {
		return nil, ErrInvalidChoice
	}
	if _, ok := model.Universities[ins.University]; !ok {
		return nil, ErrInvalidChoice
	}
	if _, ok := model.Educations[ins.Education]; !ok {
		return nil, ErrInvalidChoice
	}
	if !model.StudyYears[ins.Year] {
		return nil, ErrInvalidChoice
	}
	return ins, nil
}

// insertInscription stores ins, reporting ErrInscriptionExists when the
// member already has one for the session.
func insertInscription(ctx context.Context, repo *repository.Repository, ins *model.Inscription) error {
	_, err := repo.Inscription.GetByMemberAndSession(ctx, ins.MemberID, ins.Session)
	if err == nil {
		return ErrInscriptionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup inscription: %w", err)
	}

	if err := repo.Inscription.Create(ctx, ins); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrInscriptionExists
		}
		return fmt.Errorf("insert inscription: %w", err)
	}
	return nil
}

func publishCreated(pub notify.Publisher, ins *model.Inscription, member *model.Member, at time.Time) {
	if pub == nil {
		return
	}
	pub.Publish(lifecycle.NewInscriptionCreated(ins.InscriptionID, member.MemberID, member.Email, ins.SessionValue(), at))
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
