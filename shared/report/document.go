package report

import (
	"fmt"
	"strings"

	"channel-stats/internal/models"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
)

const documentTitle = "YouTube Analytics Report"

// WriteDocument writes the report as a .docx file: a title, the KPIs one per
// paragraph, the optional insights, then the chart image.
func WriteDocument(path string, report *models.Report) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := doc.AddHeading(documentTitle, 0); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}

	subtitle := fmt.Sprintf("Generated %s", report.GeneratedAt.Format("January 2, 2006 15:04 MST"))
	if report.Channel != "" {
		subtitle = fmt.Sprintf("Channel %s. %s", report.Channel, subtitle)
	}
	doc.AddParagraph(subtitle)

	if _, err := doc.AddHeading("Key Performance Indicators", 1); err != nil {
		return fmt.Errorf("failed to add KPI heading: %w", err)
	}
	for _, kpi := range report.KPIs {
		doc.AddParagraph(kpi.String())
	}

	if insights := strings.TrimSpace(report.Insights); insights != "" {
		if _, err := doc.AddHeading("Insights", 1); err != nil {
			return fmt.Errorf("failed to add insights heading: %w", err)
		}
		for _, para := range strings.Split(insights, "\n") {
			if para = strings.TrimSpace(para); para != "" {
				doc.AddParagraph(para)
			}
		}
	}

	if report.ChartFile != "" {
		if _, err := doc.AddPicture(report.ChartFile, units.Inch(chartWidthInches), units.Inch(chartHeightInches)); err != nil {
			return fmt.Errorf("failed to embed chart %s: %w", report.ChartFile, err)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save document %s: %w", path, err)
	}
	return nil
}
