package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KaramelBytes/edaexport/internal/render"
)

// Branding holds the fixed texts printed on the cover and closing pages.
type Branding struct {
	Title     string
	Subtitle  string
	Product   string
	Version   string
	Copyright string
}

// DefaultBranding returns the stock product texts.
func DefaultBranding() Branding {
	return Branding{
		Title:     "RAPPORT D'ANALYSE EDA",
		Subtitle:  "Analyse Exploratoire des Données",
		Product:   "EDA-Desk PRO",
		Version:   "Version 4.0 Professional Edition",
		Copyright: "© 2024 EDA-Desk - Tous droits réservés",
	}
}

// withDefaults fills empty fields from DefaultBranding.
func (b Branding) withDefaults() Branding {
	d := DefaultBranding()
	if b.Title == "" {
		b.Title = d.Title
	}
	if b.Subtitle == "" {
		b.Subtitle = d.Subtitle
	}
	if b.Product == "" {
		b.Product = d.Product
	}
	if b.Version == "" {
		b.Version = d.Version
	}
	if b.Copyright == "" {
		b.Copyright = d.Copyright
	}
	return b
}

// KV is one label/value row.
type KV struct {
	Label string
	Value string
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// LongDate formats t as "18 octobre 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// ShortDate formats t as "18/10/2026".
func ShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var numbers = message.NewPrinter(language.English)

// Thousands formats n with comma grouping: 1234567 -> "1,234,567".
func Thousands(n int) string {
	return numbers.Sprintf("%d", n)
}

// SummaryRows is the executive-summary table body, in display order.
func SummaryRows(m Metrics, now time.Time) []KV {
	return []KV{
		{"📊 Dimensions du dataset", fmt.Sprintf("%s lignes × %d colonnes", Thousands(m.Rows), m.Columns)},
		{"🔢 Variables numériques", fmt.Sprint(m.NumericVars)},
		{"🏷️ Variables catégorielles", fmt.Sprint(m.CategoricalVars)},
		{"✓ Variables booléennes", fmt.Sprint(m.BooleanVars)},
		{"⭐ Score de qualité", fmt.Sprintf("%.1f / 100", m.QualityScore)},
		{"📋 Nombre d'analyses", fmt.Sprint(m.AnalysesCount)},
		{"📅 Date de l'analyse", ShortDate(now)},
	}
}

// Diagnostics is the fallback view shown when there is no analysis log.
func Diagnostics(m Metrics) []KV {
	return []KV{
		{"❓ Valeurs manquantes", fmt.Sprintf("%.2f%%", m.MissingPct)},
		{"🎯 Outliers détectés", fmt.Sprint(m.OutliersCount)},
		{"📌 Variables constantes", fmt.Sprint(m.ConstantVars)},
	}
}

// Plan is the format-neutral layout of one report.
type Plan struct {
	Metrics     Metrics
	Grade       Grade
	Sections    []Section
	UseAnalyses bool
	Now         time.Time
	Brand       Branding
}

// NewPlan segments content and decides which detail view applies.
func NewPlan(m Metrics, content *string, now time.Time, brand Branding) *Plan {
	var sections []Section
	if content != nil && m.AnalysesCount > 0 {
		sections = Segment(*content)
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Plan{
		Metrics:     m,
		Grade:       Classify(m.QualityScore),
		Sections:    sections,
		UseAnalyses: ShouldRenderAnalyses(m, content, sections),
		Now:         now,
		Brand:       brand.withDefaults(),
	}
}

// Meta returns the document properties for this report.
func (p *Plan) Meta(reportID string) render.Meta {
	return render.Meta{
		Title:    p.Brand.Title + " - " + p.Metrics.Filename,
		Subject:  p.Brand.Subtitle,
		Author:   p.Brand.Product,
		Creator:  p.Brand.Product,
		ReportID: reportID,
		Created:  p.Now,
	}
}

// Render drives b through the whole report: cover, executive summary,
// detail view, closing page.
func (p *Plan) Render(b render.Builder) {
	p.cover(b)
	b.PageBreak()
	p.summary(b)
	b.PageBreak()
	if p.UseAnalyses {
		p.analyses(b)
	} else {
		p.diagnostics(b)
	}
	b.PageBreak()
	p.closing(b)
}

func styled(text string, role render.Role) render.Run {
	return render.Run{Text: text, Style: render.Style(role)}
}

func centered(text string, role render.Role) render.Paragraph {
	return render.Para(text, render.Style(role), render.AlignCenter)
}

func (p *Plan) cover(b render.Builder) {
	b.Spacer(100)
	title := centered(p.Brand.Title, render.RoleTitle)
	title.SpaceAfter = 20
	b.Heading(1, title)
	sub := centered(p.Brand.Subtitle, render.RoleSubtitle)
	sub.SpaceAfter = 30
	b.Paragraph(sub)
	b.Spacer(36)

	file := centered("📄 "+p.Metrics.Filename, render.RoleFileInfo)
	file.SpaceAfter = 10
	b.Paragraph(file)
	b.Paragraph(centered("📅 "+LongDate(p.Now), render.RoleDate))
	b.Spacer(108)

	b.Rule(render.Rule{Color: render.ColorRule, Width: 1.5, Length: 0.8, Align: render.AlignCenter})
	b.Spacer(72)

	brand := render.Style(render.RoleBrand)
	b.Paragraph(render.Paragraph{
		Runs:  []render.Run{styled("Généré par ", render.RoleCoverFooter), {Text: p.Brand.Product, Style: brand}},
		Align: render.AlignCenter,
	})
}

func sectionHeading(b render.Builder, text string) {
	h := render.Para("■ "+text, render.Style(render.RoleSectionHeading), render.AlignLeft)
	h.SpaceAfter = 15
	b.Heading(1, h)
}

func kvTable(header [2]string, rows []KV, label, value render.Column) render.Table {
	body := make([][]string, len(rows))
	for i, kv := range rows {
		body[i] = []string{kv.Label, kv.Value}
	}
	return render.Table{
		Columns:     []render.Column{label, value},
		Header:      header[:],
		HeaderStyle: render.Style(render.RoleTableHeader),
		HeaderFill:  render.ColorHeaderBar,
		Rows:        body,
		Grid:        render.ColorGrid,
		GridWidth:   0.5,
		Border:      render.ColorBox,
		BorderWidth: 1.5,
		Padding:     8,
		Width:       0.85,
	}
}

func (p *Plan) summary(b render.Builder) {
	sectionHeading(b, "SYNTHÈSE EXÉCUTIVE")
	b.Spacer(20)

	labelFill := render.ColorLabelFill
	altFill := render.ColorAltRow
	t := kvTable([2]string{"MÉTRIQUES CLÉS", "VALEUR"}, SummaryRows(p.Metrics, p.Now),
		render.Column{Width: 1, Style: render.Style(render.RoleMetricLabel), Align: render.AlignLeft, Fill: &labelFill},
		render.Column{Width: 1, Style: render.Style(render.RoleMetricValue), Align: render.AlignRight},
	)
	t.AltFill = &altFill
	b.Table(t)
	b.Spacer(28)

	g := p.Grade
	gradeStyle := render.Style(render.RoleGrade)
	gradeStyle.Color = g.Color
	bg := g.Background
	b.Table(render.Table{
		Columns:     []render.Column{{Width: 1, Style: gradeStyle, Align: render.AlignCenter, Fill: &bg}},
		Rows:        [][]string{{GradeLine(g)}},
		Border:      g.Color,
		BorderWidth: 2,
		Padding:     16,
		Width:       0.85,
	})

	score := centered(fmt.Sprintf("Score de qualité : %.1f / 100", p.Metrics.QualityScore), render.RoleScore)
	score.SpaceBefore = 10
	b.Paragraph(score)
}

// GradeLine is the text of the highlighted grade block.
func GradeLine(g Grade) string {
	return fmt.Sprintf("%s  ÉVALUATION GLOBALE : %s  %s", g.Symbol, g.Label, g.Symbol)
}

func (p *Plan) analyses(b render.Builder) {
	sectionHeading(b, "ANALYSES DÉTAILLÉES")
	b.Spacer(14)

	content := render.Style(render.RoleContent)
	for _, s := range p.Sections {
		b.Spacer(11)
		b.Paragraph(render.Para(fmt.Sprintf("● Analyse %d", s.Number), render.Style(render.RoleAnalysisNumber), render.AlignLeft))
		title := render.Para("▸ "+s.Title, render.Style(render.RoleAnalysisTitle), render.AlignLeft)
		title.SpaceBefore = 4
		title.SpaceAfter = 2
		b.Heading(2, title)
		b.Rule(render.Rule{Color: render.ColorDivider, Width: 1})
		for _, para := range s.Paragraphs {
			b.Paragraph(render.Paragraph{
				Runs:       []render.Run{{Text: strings.Join(para, "\n"), Style: content}},
				Indent:     20,
				SpaceAfter: 5,
			})
		}
	}
}

func (p *Plan) diagnostics(b render.Builder) {
	sectionHeading(b, "DIAGNOSTIC DE QUALITÉ")
	b.Spacer(14)
	b.Table(kvTable([2]string{"MÉTRIQUE", "VALEUR"}, Diagnostics(p.Metrics),
		render.Column{Width: 1, Style: render.Style(render.RoleMetricLabel), Align: render.AlignCenter},
		render.Column{Width: 1, Style: render.Style(render.RoleMetricValue), Align: render.AlignCenter},
	))
}

func (p *Plan) closing(b render.Builder) {
	b.Spacer(288)
	b.Rule(render.Rule{Color: render.ColorRule, Width: 2, Length: 0.75, Align: render.AlignCenter})
	b.Spacer(22)

	brand := render.Style(render.RoleBrand)
	brand.Size = render.Style(render.RoleFooter).Size
	b.Paragraph(render.Paragraph{
		Runs:  []render.Run{styled("Rapport généré par ", render.RoleFooter), {Text: p.Brand.Product, Style: brand}},
		Align: render.AlignCenter,
	})
	b.Paragraph(centered(LongDate(p.Now), render.RoleFooterDate))
	b.Spacer(22)
	b.Paragraph(centered(p.Brand.Version, render.RoleVersion))
	b.Paragraph(centered(p.Brand.Copyright, render.RoleCopyright))
}
