package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/repository"
	pkgerrors "github.com/fssotc/website/pkg/errors"
)

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members      map[string]*model.Member
	inscriptions *mockInscriptionRepo
	seq          int
}

func newMockMemberRepo(inscriptions *mockInscriptionRepo) *mockMemberRepo {
	m := &mockMemberRepo{members: make(map[string]*model.Member), inscriptions: inscriptions}
	inscriptions.members = m
	return m
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	for _, other := range m.members {
		if strings.EqualFold(other.Email, member.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if member.MemberID == "" {
		m.seq++
		member.MemberID = fmt.Sprintf("mem-%d", m.seq)
	}
	cp := *member
	cp.Inscriptions = nil
	m.members[member.MemberID] = &cp
	return nil
}

// load returns a copy with inscriptions attached, as Preload would.
func (m *mockMemberRepo) load(id string) (*model.Member, bool) {
	stored, ok := m.members[id]
	if !ok {
		return nil, false
	}
	cp := *stored
	cp.Inscriptions = m.inscriptions.byMember(id)
	return &cp, true
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if member, ok := m.load(id); ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByEmail(_ context.Context, email string) (*model.Member, error) {
	for id, member := range m.members {
		if strings.EqualFold(member.Email, email) {
			loaded, _ := m.load(id)
			return loaded, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) List(_ context.Context, filter repository.MemberFilter) ([]model.Member, int64, error) {
	var all []model.Member
	q := strings.ToLower(filter.Query)
	for id, member := range m.members {
		if q != "" && !strings.Contains(strings.ToLower(member.Name+" "+member.FamilyName+" "+member.Email), q) {
			continue
		}
		loaded, _ := m.load(id)
		all = append(all, *loaded)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FamilyName < all[j].FamilyName })
	total := int64(len(all))
	if filter.Offset > len(all) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	if _, ok := m.members[member.MemberID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *member
	cp.Inscriptions = nil
	m.members[member.MemberID] = &cp
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members, id)
	for insID, ins := range m.inscriptions.items {
		if ins.MemberID == id {
			delete(m.inscriptions.items, insID)
		}
	}
	return nil
}

func (m *mockMemberRepo) UsernameTaken(_ context.Context, username, excludeID string) (bool, error) {
	for id, member := range m.members {
		if id != excludeID && strings.EqualFold(member.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock InscriptionRepository ──

type mockInscriptionRepo struct {
	items   map[string]*model.Inscription
	members *mockMemberRepo
	seq     int
}

func newMockInscriptionRepo() *mockInscriptionRepo {
	return &mockInscriptionRepo{items: make(map[string]*model.Inscription)}
}

func (m *mockInscriptionRepo) byMember(memberID string) []model.Inscription {
	var list []model.Inscription
	for _, ins := range m.items {
		if ins.MemberID == memberID {
			list = append(list, *ins)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Session.Before(list[j].Session) })
	return list
}

func (m *mockInscriptionRepo) Create(_ context.Context, ins *model.Inscription) error {
	for _, other := range m.items {
		if other.MemberID == ins.MemberID && other.Session.Equal(ins.Session) {
			return gorm.ErrDuplicatedKey
		}
	}
	if ins.InscriptionID == "" {
		m.seq++
		ins.InscriptionID = fmt.Sprintf("ins-%d", m.seq)
	}
	cp := *ins
	cp.Member = nil
	m.items[ins.InscriptionID] = &cp
	return nil
}

func (m *mockInscriptionRepo) GetByID(_ context.Context, id string) (*model.Inscription, error) {
	ins, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ins
	if m.members != nil {
		cp.Member, _ = m.members.load(ins.MemberID)
	}
	return &cp, nil
}

func (m *mockInscriptionRepo) GetByMemberAndSession(_ context.Context, memberID string, session time.Time) (*model.Inscription, error) {
	for _, ins := range m.items {
		if ins.MemberID == memberID && ins.Session.Equal(session) {
			cp := *ins
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInscriptionRepo) ListBySession(_ context.Context, session time.Time) ([]model.Inscription, error) {
	var list []model.Inscription
	for _, ins := range m.items {
		if !ins.Session.Equal(session) {
			continue
		}
		cp := *ins
		if m.members != nil {
			cp.Member, _ = m.members.load(ins.MemberID)
		}
		list = append(list, cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].InscriptionID < list[j].InscriptionID })
	return list, nil
}

func (m *mockInscriptionRepo) ListByMember(_ context.Context, memberID string) ([]model.Inscription, error) {
	return m.byMember(memberID), nil
}

func (m *mockInscriptionRepo) Update(_ context.Context, ins *model.Inscription) error {
	if _, ok := m.items[ins.InscriptionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ins
	cp.Member = nil
	m.items[ins.InscriptionID] = &cp
	return nil
}

func (m *mockInscriptionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockInscriptionRepo) CountBySession(_ context.Context) ([]repository.SessionCount, error) {
	counts := make(map[time.Time]*repository.SessionCount)
	for _, ins := range m.items {
		c, ok := counts[ins.Session]
		if !ok {
			c = &repository.SessionCount{Session: ins.Session}
			counts[ins.Session] = c
		}
		c.Count++
		if ins.Confirmed {
			c.Confirmed++
		}
	}
	var result []repository.SessionCount
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Session.After(result[j].Session) })
	return result, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	seq    int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("evt-%d", m.seq)
	}
	if event.Version == 0 {
		event.Version = 1
	}
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		cp := *e
		cp.Links = append([]model.EventLink(nil), e.Links...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.events {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	stored, ok := m.events[event.EventID]
	if !ok || stored.Version != event.Version {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version++
	cp := *event
	cp.Links = stored.Links
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) AddLink(_ context.Context, link *model.EventLink) error {
	e, ok := m.events[link.EventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if link.LinkID == "" {
		m.seq++
		link.LinkID = fmt.Sprintf("lnk-%d", m.seq)
	}
	e.Links = append(e.Links, *link)
	return nil
}

func (m *mockEventRepo) DeleteLink(_ context.Context, eventID, linkID string) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, l := range e.Links {
		if l.LinkID == linkID {
			e.Links = append(e.Links[:i], e.Links[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock PostRepository ──

type mockPostRepo struct {
	posts     map[string]*model.Post
	listCalls int
	seq       int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*model.Post)}
}

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	if post.PostID == "" {
		m.seq++
		post.PostID = fmt.Sprintf("post-%d", m.seq)
	}
	cp := *post
	m.posts[post.PostID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostRepo) list(publishedOnly bool, offset, limit int) ([]model.Post, int64, error) {
	var all []model.Post
	for _, p := range m.posts {
		if publishedOnly && !p.Published {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PostID > all[j].PostID })
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockPostRepo) ListPublished(_ context.Context, offset, limit int) ([]model.Post, int64, error) {
	m.listCalls++
	return m.list(true, offset, limit)
}

func (m *mockPostRepo) ListAll(_ context.Context, offset, limit int) ([]model.Post, int64, error) {
	return m.list(false, offset, limit)
}

func (m *mockPostRepo) Update(_ context.Context, post *model.Post) error {
	cp := *post
	m.posts[post.PostID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.posts, id)
	return nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.Admin
	seq    int
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if admin.AdminID == "" {
		m.seq++
		admin.AdminID = fmt.Sprintf("adm-%d", m.seq)
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

// ── Recording Publisher ──

type recordingPublisher struct {
	events []lifecycle.InscriptionCreated
}

func (p *recordingPublisher) Publish(evt lifecycle.InscriptionCreated) {
	p.events = append(p.events, evt)
}

// ── test helpers ──

type mocks struct {
	member      *mockMemberRepo
	inscription *mockInscriptionRepo
	event       *mockEventRepo
	post        *mockPostRepo
	admin       *mockAdminRepo
	publisher   *recordingPublisher
	repo        *repository.Repository
}

func newMocks() (*repository.Repository, *mocks) {
	ins := newMockInscriptionRepo()
	m := &mocks{
		member:      newMockMemberRepo(ins),
		inscription: ins,
		event:       newMockEventRepo(),
		post:        newMockPostRepo(),
		admin:       newMockAdminRepo(),
		publisher:   &recordingPublisher{},
	}
	repo := &repository.Repository{
		Member:      m.member,
		Inscription: m.inscription,
		Event:       m.event,
		Post:        m.post,
		Admin:       m.admin,
	}
	m.repo = repo
	return repo, m
}

// fixedCalendar pins the clock to the given civil date at noon UTC.
func fixedCalendar(year int, month time.Month, day int) Calendar {
	now := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return Calendar{Now: func() time.Time { return now }, Location: time.UTC}
}

var nopLogger = zap.NewNop()

func sep1(year int) time.Time {
	return lifecycle.SessionStarting(year).Start()
}
