package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creature-server/internal/models"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// A4 layout in millimeters.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	margin       = 20.0
	contentWidth = pageWidth - 2*margin
	footerHeight = 20.0

	titleFontSize   = 30.0
	bodyFontSize    = 16.0
	dropCapFontSize = 40.0
	lineHeight      = 8.0
	dropCapWidth    = 14.0

	portraitSize = 70.0
	sceneSize    = 50.0

	maxImageBytes = 16 << 20
)

// colorMap translates the creature color trait into a placeholder RGB.
var colorMap = map[string][3]int{
	"red":     {220, 20, 60},
	"orange":  {255, 140, 0},
	"yellow":  {255, 215, 0},
	"green":   {46, 139, 87},
	"blue":    {65, 105, 225},
	"purple":  {138, 43, 226},
	"pink":    {255, 105, 180},
	"brown":   {139, 69, 19},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"teal":    {0, 128, 128},
	"gold":    {218, 165, 32},
	"silver":  {192, 192, 192},
	"rainbow": {255, 20, 147},
	"sparkly": {0, 191, 255},
}

var defaultColor = [3]int{147, 112, 219} // medium purple

// Exporter renders a creature story into a two-page A4 storybook PDF.
type Exporter struct {
	client  *http.Client
	siteURL string
	logger  *zap.Logger
}

func NewExporter(siteURL string, logger *zap.Logger) *Exporter {
	return &Exporter{
		client:  &http.Client{Timeout: 30 * time.Second},
		siteURL: siteURL,
		logger:  logger.Named("PDFExporter"),
	}
}

// Export builds the PDF. Image downloads are best-effort; a missing image
// becomes a solid placeholder in the creature's color.
func (e *Exporter) Export(ctx context.Context, data models.CreatureData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, margin)

	paragraphs := splitStory(data.StoryResult.Story)
	var first string
	var rest []string
	if len(paragraphs) > 0 {
		first = paragraphs[0]
		rest = paragraphs[1:]
	}

	portrait := e.fetchImage(ctx, doc, data.StoryResult.ImageURL, "portrait")
	scene := e.fetchImage(ctx, doc, data.StoryResult.SceneImageURL, "scene")

	e.renderFirstPage(doc, data, portrait, first)
	e.renderSecondPage(doc, data, scene, rest)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) renderFirstPage(doc *fpdf.Fpdf, data models.CreatureData, portrait string, first string) {
	doc.AddPage()

	doc.SetFont("Times", "B", titleFontSize)
	doc.SetTextColor(139, 69, 19)
	title := fmt.Sprintf("The Tale of %s", data.CreatureDetails.Name)
	doc.Text(pageWidth/2-doc.GetStringWidth(title)/2, margin+10, title)

	imageX := (pageWidth - portraitSize) / 2
	imageY := margin + 20
	if portrait != "" {
		doc.ImageOptions(portrait, imageX, imageY, portraitSize, portraitSize, false, fpdf.ImageOptions{}, 0, "")
	} else {
		r, g, b := placeholderColor(data.CreatureDetails.Color)
		doc.SetFillColor(r, g, b)
		doc.Rect(imageX, imageY, portraitSize, portraitSize, "F")
		doc.SetFont("Times", "", bodyFontSize)
		doc.SetTextColor(255, 255, 255)
		doc.Text(pageWidth/2-doc.GetStringWidth(data.CreatureDetails.Name)/2, margin+55, data.CreatureDetails.Name)
	}

	if first != "" {
		e.renderDropCapParagraph(doc, first, margin+100)
	}
	e.renderFooter(doc)
}

// renderDropCapParagraph draws the first letter oversized, then wraps the
// remaining words; only the first line is indented past the drop cap.
func (e *Exporter) renderDropCapParagraph(doc *fpdf.Fpdf, paragraph string, startY float64) {
	runes := []rune(paragraph)
	doc.SetFont("Times", "B", dropCapFontSize)
	doc.SetTextColor(93, 64, 55)
	doc.Text(margin, startY, string(runes[0]))

	doc.SetFont("Times", "", bodyFontSize)
	rest := strings.TrimSpace(string(runes[1:]))

	lineX := margin + dropCapWidth
	lineWidth := contentWidth - dropCapWidth
	lineY := startY
	firstLine := true

	var current string
	for _, word := range strings.Fields(rest) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if doc.GetStringWidth(test) > lineWidth {
			doc.Text(lineX, lineY, current)
			current = word
			lineY += lineHeight
			if firstLine {
				firstLine = false
				lineX = margin
				lineWidth = contentWidth
			}
		} else {
			current = test
		}
	}
	if current != "" {
		doc.Text(lineX, lineY, current)
	}
}

func (e *Exporter) renderSecondPage(doc *fpdf.Fpdf, data models.CreatureData, scene string, paragraphs []string) {
	doc.AddPage()

	imageX := pageWidth - margin - 60
	if scene != "" {
		doc.ImageOptions(scene, imageX, margin, sceneSize, sceneSize, false, fpdf.ImageOptions{}, 0, "")
	} else {
		r, g, b := placeholderColor(data.CreatureDetails.Color)
		doc.SetFillColor(r, g, b)
		doc.Rect(imageX, margin, sceneSize, sceneSize, "F")
	}

	doc.SetFont("Times", "", bodyFontSize)
	doc.SetTextColor(93, 64, 55)

	y := margin + 10
	for _, paragraph := range paragraphs {
		// Text sitting beside the scene image wraps at a narrower width.
		width := contentWidth
		if y < margin+60 {
			width = contentWidth - 60
		}
		lines := doc.SplitText(paragraph, width)
		for _, line := range lines {
			doc.Text(margin, y, line)
			y += lineHeight
		}
		y += 6
	}

	maxY := pageHeight - margin - footerHeight
	if y < maxY-10 {
		doc.SetFont("Times", "I", bodyFontSize)
		doc.SetTextColor(139, 69, 19)
		end := "The End"
		doc.Text(pageWidth/2-doc.GetStringWidth(end)/2, y+10, end)
	}
	e.renderFooter(doc)
}

func (e *Exporter) renderFooter(doc *fpdf.Fpdf) {
	footerY := pageHeight - 15

	doc.SetFont("Times", "B", 12)
	doc.SetTextColor(139, 69, 19)
	app := "Magical Creature Creator"
	doc.Text(pageWidth/2-doc.GetStringWidth(app)/2, footerY, app)

	doc.SetFont("Times", "", 10)
	site := e.siteURL
	doc.Text(pageWidth/2-doc.GetStringWidth(site)/2, footerY+8, site)
}

// fetchImage downloads the image and registers it with the document,
// returning the registration name or "" when the image is unavailable.
func (e *Exporter) fetchImage(ctx context.Context, doc *fpdf.Fpdf, url *string, name string) string {
	if url == nil || *url == "" {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *url, nil)
	if err != nil {
		e.logger.Warn("Bad image URL", zap.String("image", name), zap.Error(err))
		return ""
	}
	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("Image download failed", zap.String("image", name), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("Image download failed",
			zap.String("image", name),
			zap.Int("status", resp.StatusCode))
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		e.logger.Warn("Image read failed", zap.String("image", name), zap.Error(err))
		return ""
	}

	imageType := sniffImageType(body, resp.Header.Get("Content-Type"))
	if imageType == "" {
		e.logger.Warn("Unsupported image format", zap.String("image", name))
		return ""
	}
	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(body))
	if doc.Err() {
		e.logger.Warn("Image registration failed", zap.String("image", name), zap.Error(doc.Error()))
		doc.ClearError()
		return ""
	}
	return name
}

func sniffImageType(data []byte, contentType string) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return "PNG"
	case bytes.HasPrefix(data, []byte("\xff\xd8")):
		return "JPEG"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "GIF"
	}
	switch contentType {
	case "image/png":
		return "PNG"
	case "image/jpeg", "image/jpg":
		return "JPEG"
	case "image/gif":
		return "GIF"
	}
	return ""
}

func placeholderColor(colorName string) (int, int, int) {
	rgb, ok := colorMap[strings.ToLower(strings.TrimSpace(colorName))]
	if !ok {
		rgb = defaultColor
	}
	return rgb[0], rgb[1], rgb[2]
}

func splitStory(story string) []string {
	var out []string
	for _, p := range strings.Split(story, "\n\n") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
