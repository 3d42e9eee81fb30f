package service

import (
	"strconv"
	"time"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
)

// displayDateLayout is the id-ID short date shown everywhere in the UI.
const displayDateLayout = "02/01/2006"

// Marker colors by headline category.
const (
	colorFire     = "#ef4444"
	colorLogging  = "#f59e0b"
	colorWater    = "#3b82f6"
	colorFallback = "#22c55e"
)

// classification describes one server-side classification field: where to
// read it, which value means "not present", which headline category it maps
// to and how its tag is prefixed. The table is ordered by severity; the
// category precedence walks it top-down and takes the first active row, so a
// report that is both a fire and a trash report is headlined as fire.
//
// The forest field never wins the category (empty label) and has no negative
// sentinel: any non-empty value counts as active and only produces a tag.
type classification struct {
	value     func(*model.RawReport) string
	sentinel  string
	category  string
	tagPrefix string
	color     string
}

var classifications = []classification{
	{
		value:     func(r *model.RawReport) string { return r.PublicFireClassification },
		sentinel:  "no_fire",
		category:  model.CategoryPembakaranHutan,
		tagPrefix: "Kebakaran",
		color:     colorFire,
	},
	{
		value:     func(r *model.RawReport) string { return r.IllegalLoggingClassification },
		sentinel:  "tidak_penebangan_liar",
		category:  model.CategoryPenebanganHutan,
		tagPrefix: "Penebangan",
		color:     colorLogging,
	},
	{
		value:     func(r *model.RawReport) string { return r.WaterClassification },
		sentinel:  "Air_bersih",
		category:  model.CategoryKualitasAir,
		tagPrefix: "Air",
		color:     colorWater,
	},
	{
		value:     func(r *model.RawReport) string { return r.TrashClassification },
		sentinel:  "tidak_sampah",
		category:  model.CategorySampah,
		tagPrefix: "Sampah",
		color:     colorFallback,
	},
	{
		value:     func(r *model.RawReport) string { return r.ForestClassification },
		tagPrefix: "Hutan",
	},
}

// active reports whether the field holds a real label rather than being
// absent or its negative sentinel.
func (c classification) active(r *model.RawReport) bool {
	v := c.value(r)
	return v != "" && v != c.sentinel
}

// Categorize picks the single headline category for a report by walking the
// classification table in severity order.
func Categorize(r *model.RawReport) string {
	for _, c := range classifications {
		if c.category != "" && c.active(r) {
			return c.category
		}
	}
	return model.CategoryLaporan
}

// categoryColor returns the map marker color for a report's category.
func categoryColor(r *model.RawReport) string {
	for _, c := range classifications {
		if c.category != "" && c.active(r) {
			return c.color
		}
	}
	return colorFallback
}

// CollectTags builds one tag per active classification, independent of which
// row won the category. A report with nothing active still gets the general
// fallback tag so the tag list is never empty.
func CollectTags(r *model.RawReport) []string {
	var tags []string
	for _, c := range classifications {
		if c.active(r) {
			tags = append(tags, c.tagPrefix+": "+c.value(r))
		}
	}
	if len(tags) == 0 {
		tags = []string{model.FallbackTag}
	}
	return tags
}

// Transform maps a raw server record into its list-context display record.
func Transform(r *model.RawReport) model.DisplayReport {
	status := model.StatusMenungguVerifikasi
	if r.Verified {
		status = model.StatusDiverifikasi
	}

	return model.DisplayReport{
		ID:          r.ID,
		Image:       r.ImageURL,
		Status:      status,
		Category:    Categorize(r),
		Tags:        CollectTags(r),
		Location:    formatLocation(r.Latitude, r.Longitude),
		Description: r.Description,
		Author:      r.User.Name,
		Date:        formatDate(r.CreatedAt),
		Acted:       r.Verified,
	}
}

// TransformAll recomputes the whole display collection. Order is preserved
// as the server returned it; no default sort is applied.
func TransformAll(raw []model.RawReport) []model.DisplayReport {
	reports := make([]model.DisplayReport, 0, len(raw))
	for i := range raw {
		reports = append(reports, Transform(&raw[i]))
	}
	return reports
}

// formatLocation keeps the server's numeric precision: the list shows
// coordinates exactly as received.
func formatLocation(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lng, 'f', -1, 64)
}

// DetailLocation is the detail-page variant with fixed 4-decimal rounding.
// Both formats are deliberate; they are separate presentation contracts over
// the same coordinate pair.
func DetailLocation(lat, lng float64) string {
	return "Lat: " + strconv.FormatFloat(lat, 'f', 4, 64) + ", Lng: " + strconv.FormatFloat(lng, 'f', 4, 64)
}

// formatDate renders created_at as dd/mm/yyyy. Timestamps the server sends
// that do not parse pass through verbatim; the date filter fails open on
// them later.
func formatDate(createdAt string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return createdAt
}

// CountClassifications tallies the dashboard stat cards. Counts are
// independent per field: precedence plays no role here.
func CountClassifications(raw []model.RawReport) model.ClassificationCounts {
	counts := model.ClassificationCounts{Total: len(raw)}
	for i := range raw {
		r := &raw[i]
		for _, c := range classifications {
			if !c.active(r) {
				continue
			}
			switch c.category {
			case model.CategorySampah:
				counts.Sampah++
			case model.CategoryKualitasAir:
				counts.Air++
			case model.CategoryPenebanganHutan:
				counts.Penebangan++
			case model.CategoryPembakaranHutan:
				counts.Kebakaran++
			}
		}
	}
	return counts
}

// BuildMarkers projects raw reports onto dashboard map pins at their true
// coordinates.
func BuildMarkers(raw []model.RawReport) []model.MapMarker {
	markers := make([]model.MapMarker, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		markers = append(markers, model.MapMarker{
			ID:          r.ID,
			Position:    [2]float64{r.Latitude, r.Longitude},
			Title:       Categorize(r),
			Description: r.Description,
			Date:        formatDate(r.CreatedAt),
			Image:       r.ImageURL,
			Color:       categoryColor(r),
			Verified:    r.Verified,
			User:        r.User.Name,
		})
	}
	return markers
}
