package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/bradleyburgess/diabeateeze/internal/models"
)

// ForKind returns the dataset matching an activity export_type keyword.
func ForKind(kind string, readings []models.GlucoseReading, doses []models.InsulinDose, meals []models.Meal) (Dataset, error) {
	switch kind {
	case "glucose":
		return NewGlucoseDataset(readings), nil
	case "insulin":
		return NewDoseDataset(doses), nil
	case "meals":
		return NewMealDataset(meals), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

// GlucoseDataset flattens glucose readings for export.
type GlucoseDataset struct {
	readings []models.GlucoseReading
}

func NewGlucoseDataset(readings []models.GlucoseReading) *GlucoseDataset {
	return &GlucoseDataset{readings: readings}
}

func (d *GlucoseDataset) Kind() string { return "glucose_readings" }

func (d *GlucoseDataset) Headers() []string {
	return []string{"Date", "Time", "Value", "Unit", "Notes"}
}

func (d *GlucoseDataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.readings))
	for _, r := range d.readings {
		rows = append(rows, []string{
			r.OccurredAt.Format("2006-01-02"),
			r.OccurredAt.Format("15:04:05"),
			r.Value.String(),
			r.Unit,
			r.Notes,
		})
	}
	return rows
}

// Text renders readings as a bulleted list headed by the covered date range:
// a single date when all readings share a calendar day, a from-to range
// otherwise, or "No Data" for an empty set.
func (d *GlucoseDataset) Text() string {
	var b strings.Builder
	b.WriteString("Glucose Readings for " + d.dateRange())
	for _, r := range d.readings {
		b.WriteString(fmt.Sprintf("\n- %s: %s %s", formatClockTime(r.OccurredAt), r.Value.String(), r.Unit))
	}
	return b.String()
}

func (d *GlucoseDataset) dateRange() string {
	if len(d.readings) == 0 {
		return "No Data"
	}
	earliest, latest := d.readings[0].OccurredAt, d.readings[0].OccurredAt
	for _, r := range d.readings[1:] {
		if r.OccurredAt.Before(earliest) {
			earliest = r.OccurredAt
		}
		if r.OccurredAt.After(latest) {
			latest = r.OccurredAt
		}
	}
	const layout = "2006/01/02"
	if earliest.Format(layout) == latest.Format(layout) {
		return earliest.Format(layout)
	}
	return earliest.Format(layout) + " - " + latest.Format(layout)
}

// formatClockTime renders like "2025/01/05 9:30 am".
func formatClockTime(t time.Time) string {
	return t.Format("2006/01/02 3:04 pm")
}

// DoseDataset flattens insulin doses for export. InsulinType must be
// preloaded on each dose.
type DoseDataset struct {
	doses []models.InsulinDose
}

func NewDoseDataset(doses []models.InsulinDose) *DoseDataset {
	return &DoseDataset{doses: doses}
}

func (d *DoseDataset) Kind() string { return "insulin_doses" }

func (d *DoseDataset) Headers() []string {
	return []string{"Date", "Time", "Insulin Type", "Base Units", "Correction Units", "Total Units", "Notes"}
}

func (d *DoseDataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.doses))
	for _, dose := range d.doses {
		rows = append(rows, []string{
			dose.OccurredAt.Format("2006-01-02"),
			dose.OccurredAt.Format("15:04:05"),
			insulinTypeName(&dose),
			dose.BaseUnits.String(),
			dose.CorrectionUnits.String(),
			dose.TotalUnits().String(),
			dose.Notes,
		})
	}
	return rows
}

func (d *DoseDataset) Text() string {
	blocks := make([]string, 0, len(d.doses))
	for _, dose := range d.doses {
		var b strings.Builder
		fmt.Fprintf(&b, "Insulin Dose - %s\n", dose.OccurredAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "  Type: %s\n", insulinTypeName(&dose))
		fmt.Fprintf(&b, "  Base: %s units\n", dose.BaseUnits.String())
		fmt.Fprintf(&b, "  Correction: %s units\n", dose.CorrectionUnits.String())
		fmt.Fprintf(&b, "  Total: %s units", dose.TotalUnits().String())
		if dose.Notes != "" {
			fmt.Fprintf(&b, "\n  Notes: %s", dose.Notes)
		}
		blocks = append(blocks, b.String(), "")
	}
	return strings.Join(blocks, "\n")
}

func insulinTypeName(dose *models.InsulinDose) string {
	if dose.InsulinType != nil {
		return dose.InsulinType.Name
	}
	return ""
}

// MealDataset flattens meals for export.
type MealDataset struct {
	meals []models.Meal
}

func NewMealDataset(meals []models.Meal) *MealDataset {
	return &MealDataset{meals: meals}
}

func (d *MealDataset) Kind() string { return "meals" }

func (d *MealDataset) Headers() []string {
	return []string{"Date", "Time", "Meal Type", "Description", "Total Carbs (g)", "Notes"}
}

func (d *MealDataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.meals))
	for _, m := range d.meals {
		carbs := ""
		if m.TotalCarbs != nil {
			carbs = m.TotalCarbs.String()
		}
		rows = append(rows, []string{
			m.OccurredAt.Format("2006-01-02"),
			m.OccurredAt.Format("15:04:05"),
			m.MealTypeLabel(),
			m.Description,
			carbs,
			m.Notes,
		})
	}
	return rows
}

func (d *MealDataset) Text() string {
	blocks := make([]string, 0, len(d.meals))
	for _, m := range d.meals {
		var b strings.Builder
		fmt.Fprintf(&b, "%s - %s\n", m.MealTypeLabel(), m.OccurredAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "  Description: %s", m.Description)
		if m.TotalCarbs != nil {
			fmt.Fprintf(&b, "\n  Carbs: %sg", m.TotalCarbs.String())
		}
		if m.Notes != "" {
			fmt.Fprintf(&b, "\n  Notes: %s", m.Notes)
		}
		blocks = append(blocks, b.String(), "")
	}
	return strings.Join(blocks, "\n")
}
