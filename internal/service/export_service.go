package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/repository"
)

// ── export errors ──

var (
	// ErrExportNoInscriptions reports a roster export for a session nobody joined.
	ErrExportNoInscriptions = errors.New("no inscriptions for this session")

	// ErrExportGenerateFail reports an excelize failure while building the workbook.
	ErrExportGenerateFail = errors.New("failed to generate the spreadsheet")
)

// ExportService spreadsheet exports.
type ExportService interface {
	// ExportRoster writes every inscription of the session as .xlsx and
	// returns the suggested file name. An empty label is the current session.
	ExportRoster(ctx context.Context, label string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	cal    Calendar
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, cal Calendar, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cal: cal, logger: logger}
}

var rosterHeader = []interface{}{
	"Family name", "Name", "Email", "Phone", "Username", "Role",
	"University", "Education", "Year", "Inscription no.",
	"Confirmed", "Dreamspark key", "Member card", "New member",
}

func (s *exportService) ExportRoster(ctx context.Context, label string) (*bytes.Buffer, string, error) {
	session, err := resolveSession(s.cal, label)
	if err != nil {
		return nil, "", err
	}

	list, err := s.repo.Inscription.ListBySession(ctx, session.Start())
	if err != nil {
		s.logger.Error("list inscriptions failed", zap.String("session", session.Label()), zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoInscriptions
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := session.Label()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetSheetRow(sheet, "A1", &rosterHeader)
	last, _ := excelize.ColumnNumberToName(len(rosterHeader))
	f.SetCellStyle(sheet, "A1", last+"1", headerStyle)
	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "C", "C", 30)
	f.SetColWidth(sheet, "D", last, 14)

	ref := s.cal.Today()
	for i := range list {
		ins := &list[i]
		row := rosterRow(ins, ins.Member, ref)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", last, len(list)+1), nil)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("roster_%s.xlsx", session.Label()), nil
}

func rosterRow(ins *model.Inscription, m *model.Member, ref time.Time) []interface{} {
	var familyName, name, email, phone, username string
	isNew := false
	if m != nil {
		familyName, name, email, username = m.FamilyName, m.Name, m.Email, m.Username
		if m.Phone != nil {
			phone = *m.Phone
		}
		isNew = m.IsNew(ref)
	}
	var num interface{} = ""
	if ins.InscriptionNum != nil {
		num = *ins.InscriptionNum
	}
	return []interface{}{
		familyName, name, email, phone, username, ins.Role.Name(),
		ins.University, ins.Education, ins.Year, num,
		yesNo(ins.Confirmed), yesNo(ins.DreamsparkKey), yesNo(ins.MemberCard), yesNo(isNew),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
