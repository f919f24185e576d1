// Package report renders the human-readable audit artifacts: per-page
// markdown summaries and the final report in markdown, JSON, and optionally
// PDF. The markdown layout is a compatibility contract with downstream
// tooling that parses these files, so the templates change shape only
// deliberately.
package report

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/nexless/storeaudit/internal/domain/pages"
	"github.com/nexless/storeaudit/internal/domain/session"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

//go:embed templates/final_report.md.tmpl
var templateFS embed.FS

var finalReportTemplate = template.Must(
	template.New("final_report.md.tmpl").ParseFS(templateFS, "templates/final_report.md.tmpl"),
)

// PageSection is one completed page's summary spliced into the final report.
type PageSection struct {
	Name string
	Body string
}

// Data feeds the final report template. Every field is preformatted so the
// template stays pure layout.
type Data struct {
	GeneratedAt    string
	SessionID      string
	StartedAt      string
	TotalPages     int
	CompletedPages int
	Percent        string
	PercentValue   float64
	Errors         session.ErrorSummary
	HealthScore    int
	HealthLabel    string
	Pages          []PageSection
	NeedsAttention bool
	CriticalPages  []string
	HasCritical    bool
	Checkpoints    int
}

// Result points at the artifacts one Generate call produced.
type Result struct {
	MarkdownPath string
	JSONPath     string
	PDFPath      string
	HealthScore  int
}

// Builder assembles final reports from the persisted session and page
// artifacts.
type Builder struct {
	sessions session.Repository
	pages    pages.Repository
	dir      string
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewBuilder creates a builder writing into the reports/ directory of the
// audit layout.
func NewBuilder(auditDir string, sessions session.Repository, pageRepo pages.Repository, logger *zap.SugaredLogger) (*Builder, error) {
	if auditDir == "" {
		return nil, fmt.Errorf("audit directory cannot be empty")
	}

	dir := filepath.Join(auditDir, consts.ReportsDir)
	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	return &Builder{
		sessions: sessions,
		pages:    pageRepo,
		dir:      dir,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Generate renders the final report from the current session: a markdown
// report plus a machine-readable JSON summary, and a PDF rendition when
// withPDF is set. File names share one timestamp stem so the artifacts of a
// single generation sort together.
func (b *Builder) Generate(ctx context.Context, withPDF bool) (*Result, error) {
	b.logger.Info("Generating final audit report")

	sess, err := b.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := b.now().UTC()
	data, err := b.buildData(ctx, sess, now)
	if err != nil {
		return nil, err
	}

	stem := "final_audit_report_" + now.Format("20060102_150405")
	res := &Result{HealthScore: data.HealthScore}

	markdown, err := renderMarkdown(data)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	res.MarkdownPath = filepath.Join(b.dir, stem+".md")
	if err := os.WriteFile(res.MarkdownPath, []byte(markdown), consts.DefaultFilePerm); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	b.logger.Infof("Final report generated: %s", filepath.Base(res.MarkdownPath))
	b.logger.Infof("System Health Score: %d/100", data.HealthScore)

	res.JSONPath = filepath.Join(b.dir, stem+".json")
	summary := buildJSONSummary(data, filepath.Base(res.MarkdownPath), stem+".json")
	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(res.JSONPath, raw, consts.DefaultFilePerm); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	b.logger.Infof("JSON summary created: %s", filepath.Base(res.JSONPath))

	if withPDF {
		pdfBytes, err := renderPDF(data)
		if err != nil {
			return nil, fmt.Errorf("render PDF report: %w", err)
		}
		res.PDFPath = filepath.Join(b.dir, stem+".pdf")
		if err := os.WriteFile(res.PDFPath, pdfBytes, consts.DefaultFilePerm); err != nil {
			return nil, fmt.Errorf("write PDF report: %w", err)
		}
		b.logger.Infof("PDF report created: %s", filepath.Base(res.PDFPath))
	}

	return res, nil
}

func (b *Builder) buildData(ctx context.Context, sess *session.Session, now time.Time) (Data, error) {
	score := sess.ErrorSummary.HealthScore()
	data := Data{
		GeneratedAt:    now.Format(time.RFC3339),
		SessionID:      sess.SessionID,
		StartedAt:      sess.AuditStartTime.Format(time.RFC3339),
		TotalPages:     sess.Progress.TotalPages,
		CompletedPages: len(sess.Progress.PagesCompleted),
		Percent:        fmt.Sprintf("%.1f", sess.Progress.CompletionPercentage),
		PercentValue:   sess.Progress.CompletionPercentage,
		Errors:         sess.ErrorSummary,
		HealthScore:    score,
		HealthLabel:    healthLabel(score),
		NeedsAttention: sess.ErrorSummary.Critical > 0 || sess.ErrorSummary.High > 0,
		HasCritical:    sess.ErrorSummary.Critical > 0,
		Checkpoints:    len(sess.CheckpointHistory),
	}

	for _, page := range sess.Progress.PagesCompleted {
		content, err := b.pages.LoadSummary(ctx, page)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Data{}, fmt.Errorf("load summary for %s: %w", page, err)
		}
		data.Pages = append(data.Pages, PageSection{Name: page, Body: summaryBody(content)})
	}

	if data.NeedsAttention {
		batches, err := b.pages.ListBatches(ctx)
		if err != nil {
			return Data{}, fmt.Errorf("scan result batches: %w", err)
		}
		for _, batch := range batches {
			if batch.HasFailures() {
				data.CriticalPages = append(data.CriticalPages, batch.Page)
			}
		}
	}

	return data, nil
}

// summaryBody drops the summary's title line and the blank line after it; the
// final report supplies its own per-page heading.
func summaryBody(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[2:], "\n")
}

func healthLabel(score int) string {
	grade := session.Grade(score)
	switch grade {
	case "EXCELLENT":
		return "🟢 " + grade
	case "GOOD":
		return "🟡 " + grade
	case "FAIR":
		return "🟠 " + grade
	default:
		return "🔴 " + grade
	}
}

func renderMarkdown(data Data) (string, error) {
	var buf bytes.Buffer
	if err := finalReportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type jsonSummary struct {
	AuditSummary auditSummary `json:"audit_summary"`
}

type auditSummary struct {
	Timestamp            string               `json:"timestamp"`
	SessionID            string               `json:"session_id"`
	HealthScore          int                  `json:"health_score"`
	TotalPages           int                  `json:"total_pages"`
	CompletedPages       int                  `json:"completed_pages"`
	CompletionPercentage float64              `json:"completion_percentage"`
	Errors               session.ErrorSummary `json:"errors"`
	Status               string               `json:"status"`
	ReportFiles          reportFiles          `json:"report_files"`
}

type reportFiles struct {
	Markdown string `json:"markdown"`
	JSON     string `json:"json"`
}

func buildJSONSummary(data Data, markdownName, jsonName string) jsonSummary {
	status := "NEEDS_ATTENTION"
	if data.HealthScore >= 75 {
		status = "GOOD"
	}

	return jsonSummary{
		AuditSummary: auditSummary{
			Timestamp:            data.GeneratedAt,
			SessionID:            data.SessionID,
			HealthScore:          data.HealthScore,
			TotalPages:           data.TotalPages,
			CompletedPages:       data.CompletedPages,
			CompletionPercentage: data.PercentValue,
			Errors:               data.Errors,
			Status:               status,
			ReportFiles: reportFiles{
				Markdown: markdownName,
				JSON:     jsonName,
			},
		},
	}
}

// renderPDF produces a compact PDF rendition of the report for distribution
// outside the repository.
func renderPDF(data Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Inventory System Audit Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session ID: %s", data.SessionID), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Audit Duration: %s to %s", data.StartedAt, data.GeneratedAt), "", 1, "", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Overall Results", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Pages Audited: %d / %d (%s%%)", data.CompletedPages, data.TotalPages, data.Percent), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issues: %d total | Critical: %d | High: %d | Medium: %d | Low: %d",
		data.Errors.Total, data.Errors.Critical, data.Errors.High, data.Errors.Medium, data.Errors.Low), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("System Health Score: %d/100 (%s)", data.HealthScore, session.Grade(data.HealthScore)), "", 1, "", false, 0, "")
	pdf.Ln(5)

	if len(data.CriticalPages) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Critical Issues", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, page := range data.CriticalPages {
			pdf.MultiCell(0, 5, fmt.Sprintf("- %s: critical functionality issues detected", page), "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Pages", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, section := range data.Pages {
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("- %s", section.Name), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total checkpoints created: %d", data.Checkpoints), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
