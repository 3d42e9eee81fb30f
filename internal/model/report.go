package model

// ReportStatus is the verification status shown on the report list.
type ReportStatus string

const (
	StatusMenungguVerifikasi ReportStatus = "Menunggu Verifikasi"
	StatusDiverifikasi       ReportStatus = "Diverifikasi"
	StatusVerifikasiDitolak  ReportStatus = "Verifikasi Ditolak"
	StatusBelumDiverifikasi  ReportStatus = "Belum Diverifikasi"
)

// Category labels produced by the classification precedence.
const (
	CategoryPembakaranHutan = "Pembakaran Hutan"
	CategoryPenebanganHutan = "Penebangan Hutan"
	CategoryKualitasAir     = "Kualitas Air"
	CategorySampah          = "Sampah"
	CategoryLaporan         = "Laporan"
)

// FallbackTag is emitted when no classification on a report is active.
const FallbackTag = "Laporan Umum"

type ReportUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RawReport is a report exactly as the platform API returns it. Each
// classification field carries either a semantic label or that field's
// "negative" sentinel (or is empty).
type RawReport struct {
	ID                            int        `json:"id"`
	ImageURL                      string     `json:"image_url"`
	Description                   string     `json:"description"`
	Latitude                      float64    `json:"latitude"`
	Longitude                     float64    `json:"longitude"`
	WaterClassification           string     `json:"water_classification"`
	ForestClassification          string     `json:"forest_classification"`
	PublicFireClassification      string     `json:"public_fire_classification"`
	TrashClassification           string     `json:"trash_classification"`
	IllegalLoggingClassification  string     `json:"illegal_logging_classification"`
	Verified                      bool       `json:"verified"`
	CreatedAt                     string     `json:"created_at"`
	User                          ReportUser `json:"user"`
}

// DisplayReport is the UI-ready projection of a RawReport. Acted mirrors
// Verified at fetch time but may be overridden locally by a verification
// action until the next refetch.
type DisplayReport struct {
	ID          int          `json:"id"`
	Image       string       `json:"image"`
	Status      ReportStatus `json:"status"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Author      string       `json:"author"`
	Date        string       `json:"date"`
	Acted       bool         `json:"acted"`
}

// FilterState holds the filter dialog's selections. Empty means no
// constraint; the date bounds are yyyy-mm-dd strings.
type FilterState struct {
	Category string `json:"category" form:"category"`
	Status   string `json:"status" form:"status"`
	DateFrom string `json:"date_from" form:"date_from"`
	DateTo   string `json:"date_to" form:"date_to"`
}

// ReportStats are the list-page stat cards.
type ReportStats struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
	Rejected   int `json:"rejected"`
}

// ClassificationCounts are the dashboard stat cards. Each count is
// independent: a report with several active classifications contributes to
// each of them.
type ClassificationCounts struct {
	Total      int `json:"total"`
	Sampah     int `json:"sampah"`
	Air        int `json:"air"`
	Penebangan int `json:"penebangan"`
	Kebakaran  int `json:"kebakaran"`
}

// MapMarker is one dashboard map pin, positioned at the report's true
// coordinates and colored by its precedence category.
type MapMarker struct {
	ID          int        `json:"id"`
	Position    [2]float64 `json:"position"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Image       string     `json:"image"`
	Color       string     `json:"color"`
	Verified    bool       `json:"verified"`
	User        string     `json:"user"`
}

// ReportDetail is the detail-page projection: the display record with the
// fixed-precision location plus the raw coordinates for the map.
type ReportDetail struct {
	DisplayReport
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ReportListResponse struct {
	Reports    []DisplayReport `json:"reports"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

type LeaderboardUser struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}
