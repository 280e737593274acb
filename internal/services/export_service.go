package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"arizabot/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	// ErrNoApplications means there is nothing to export yet.
	ErrNoApplications = errors.New("no applications found")
	// ErrApplicationNotFound means the positional ID matched no record.
	ErrApplicationNotFound = errors.New("application not found")
)

// applicationReader is the read slice of the repository the dashboard
// export/download surface needs.
type applicationReader interface {
	ReadAll() []*models.Application
	GetByID(id int) *models.Application
}

const exportSheet = "Arizalar"

// ExportService builds spreadsheet exports and re-downloads submitted
// documents from the messaging channel into a local folder.
type ExportService struct {
	repo        applicationReader
	channel     Channel
	downloadDir string
	client      *http.Client
	log         *zap.Logger
}

func NewExportService(repo applicationReader, channel Channel, downloadDir string, client *http.Client, log *zap.Logger) *ExportService {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &ExportService{repo: repo, channel: channel, downloadDir: downloadDir, client: client, log: log}
}

// Export writes all applications, newest first, into a styled XLSX file
// and returns its path. ErrNoApplications when the store is empty.
func (s *ExportService) Export() (string, error) {
	apps := s.repo.ReadAll()
	if len(apps) == 0 {
		return "", ErrNoApplications
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", exportSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"667EEA"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("header style: %w", err)
	}
	rowStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("row style: %w", err)
	}
	zebraStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F8F9FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("zebra style: %w", err)
	}

	headers := []string{"#", "Sana", "Ism", "Telefon", "Username", "Chat ID", "File ID", "Fayl nomi"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, h)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for i, app := range apps {
		row := i + 2
		values := []interface{}{
			app.ID,
			app.SubmittedAt.Format(models.TimeLayout),
			app.Name,
			app.Phone,
			app.Username,
			app.ChatID,
			app.FileID,
			app.FileName,
		}
		style := rowStyle
		if row%2 == 0 {
			style = zebraStyle
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
			f.SetCellStyle(exportSheet, cell, cell, style)
		}
	}

	widths := map[string]float64{"A": 8, "B": 20, "C": 25, "D": 18, "E": 20, "F": 15, "G": 40, "H": 30}
	for col, width := range widths {
		f.SetColWidth(exportSheet, col, col, width)
	}
	f.SetPanes(exportSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(s.downloadDir,
		fmt.Sprintf("DMTT_Arizalar_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	s.log.Info("export created", zap.String("path", path), zap.Int("rows", len(apps)))
	return path, nil
}

// Download re-fetches the PDF for one record through the channel and
// stores it under a collision-safe name. Returns the local path and the
// original file name for the attachment header.
func (s *ExportService) Download(id int) (string, string, error) {
	app := s.repo.GetByID(id)
	if app == nil || app.FileID == "" {
		return "", "", ErrApplicationNotFound
	}

	url, err := s.channel.FileURL(app.FileID)
	if err != nil {
		return "", "", fmt.Errorf("resolve file url: %w", err)
	}

	resp, err := s.client.Get(url)
	if err != nil {
		return "", "", fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create download dir: %w", err)
	}
	name := filepath.Base(app.FileName)
	path := filepath.Join(s.downloadDir, fmt.Sprintf("%s_%s", uuid.NewString(), name))
	out, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	s.log.Info("document downloaded", zap.Int("id", id), zap.String("path", path))
	return path, name, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "CCCCCC", Style: 1},
		{Type: "right", Color: "CCCCCC", Style: 1},
		{Type: "top", Color: "CCCCCC", Style: 1},
		{Type: "bottom", Color: "CCCCCC", Style: 1},
	}
}
