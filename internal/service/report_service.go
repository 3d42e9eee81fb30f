package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/repository"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"
)

var (
	ErrNotAuthenticated = errors.New("no access token in session")
	ErrReportNotFound   = errors.New("report not found")
	ErrAlreadyActioned  = errors.New("report already actioned")
	ErrStaleRefresh     = errors.New("refresh superseded by a newer one")
)

// ReportService owns the in-memory report collection: the raw records as the
// platform returned them and their display projections. Verification actions
// mutate the display copy only; the next Refresh is the single path back to
// server ground truth.
type ReportService struct {
	client  *upstream.Client
	session *session.Session
	outbox  *repository.OutboxRepository // nil when messaging is disabled

	mu        sync.RWMutex
	seq       uint64
	raw       []model.RawReport
	display   []model.DisplayReport
	loading   bool
	verifying map[int]struct{}
}

func NewReportService(client *upstream.Client, sess *session.Session, outbox *repository.OutboxRepository) *ReportService {
	return &ReportService{
		client:    client,
		session:   sess,
		outbox:    outbox,
		verifying: make(map[int]struct{}),
	}
}

// Refresh re-fetches the full collection from the platform. Each call takes
// a sequence number before issuing the request and applies its result only if
// no newer refresh was issued meanwhile, so overlapping refreshes resolve
// deterministically to the latest one instead of "last response wins".
//
// A failed fetch empties the collection: the list must never show stale data
// after the server reported an error.
func (s *ReportService) Refresh(ctx context.Context) error {
	token := s.session.Access()
	if token == "" {
		s.mu.Lock()
		s.raw = nil
		s.display = nil
		s.loading = false
		s.mu.Unlock()
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.mu.Unlock()

	raw, err := s.client.FetchReports(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// A newer refresh owns the collection now.
		return ErrStaleRefresh
	}
	s.loading = false

	if err != nil {
		s.raw = nil
		s.display = nil
		log.Printf("report refresh failed: %v", err)
		return err
	}

	s.raw = raw
	s.display = TransformAll(raw)
	log.Printf("report collection refreshed: %d reports", len(raw))
	return nil
}

// Loading distinguishes "fetch in flight" from "zero reports".
func (s *ReportService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// List filters and paginates the display collection.
func (s *ReportService) List(query string, filters model.FilterState, page int) *model.ReportListResponse {
	s.mu.RLock()
	display := s.display
	s.mu.RUnlock()

	filtered := FilterReports(display, query, filters)
	pageItems, page, totalPages := Paginate(filtered, page)

	return &model.ReportListResponse{
		Reports:    pageItems,
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
	}
}

// Stats computes the list-page stat cards over the current display
// collection, local verification overrides included.
func (s *ReportService) Stats() model.ReportStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.ReportStats{Total: len(s.display)}
	for _, r := range s.display {
		switch r.Status {
		case model.StatusDiverifikasi:
			stats.Verified++
		case model.StatusMenungguVerifikasi, model.StatusBelumDiverifikasi:
			stats.Unverified++
		case model.StatusVerifikasiDitolak:
			stats.Rejected++
		}
	}
	return stats
}

// Summary computes the dashboard classification counts over the raw records.
func (s *ReportService) Summary() model.ClassificationCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountClassifications(s.raw)
}

// Markers builds the dashboard map pins.
func (s *ReportService) Markers() []model.MapMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildMarkers(s.raw)
}

// Detail returns a single report with the detail-context coordinate
// formatting (fixed 4 decimals, unlike the raw-precision list location).
func (s *ReportService) Detail(id int) (*model.ReportDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.raw {
		if s.raw[i].ID != id {
			continue
		}
		d := s.display[i]
		d.Location = DetailLocation(s.raw[i].Latitude, s.raw[i].Longitude)
		return &model.ReportDetail{
			DisplayReport: d,
			Latitude:      s.raw[i].Latitude,
			Longitude:     s.raw[i].Longitude,
		}, nil
	}
	return nil, ErrReportNotFound
}

// Verify confirms a report on the platform, then mirrors the result locally:
// acted becomes true, status becomes Diverifikasi, and no further transitions
// are offered for that report. The platform's confirmation message is
// returned for the success notification.
func (s *ReportService) Verify(ctx context.Context, id int) (string, error) {
	token := s.session.Access()
	if token == "" {
		return "", ErrNotAuthenticated
	}

	// The in-flight marker is claimed under the write lock so two concurrent
	// verifies of the same report cannot both reach the platform.
	s.mu.Lock()
	idx, err := s.findDisplay(id)
	if err == nil {
		if _, inFlight := s.verifying[id]; inFlight || s.display[idx].Acted {
			err = ErrAlreadyActioned
		} else {
			s.verifying[id] = struct{}{}
		}
	}
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	message, err := s.client.VerifyReport(ctx, token, id)

	s.mu.Lock()
	delete(s.verifying, id)
	if err == nil {
		if idx, findErr := s.findDisplay(id); findErr == nil {
			s.display[idx].Acted = true
			s.display[idx].Status = model.StatusDiverifikasi
		}
	}
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	if s.outbox != nil {
		if err := s.outbox.CreateReportVerified(id); err != nil {
			// Verification already succeeded upstream; the event is best effort.
			log.Printf("outbox: enqueue verified event for report %d: %v", id, err)
		}
	}

	return message, nil
}

// Reject marks a report rejected in this session only. The platform has no
// rejection endpoint, so nothing is sent upstream: the rejected status is
// invisible to other sessions and the next Refresh silently reverts it.
// Whether that is a placeholder for a future endpoint or a gap is an open
// product question; the client-only semantics are kept on purpose.
func (s *ReportService) Reject(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.findDisplay(id)
	if err != nil {
		return err
	}
	if s.display[idx].Acted {
		return ErrAlreadyActioned
	}

	s.display[idx].Acted = true
	s.display[idx].Status = model.StatusVerifikasiDitolak
	return nil
}

// findDisplay locates a report by ID. Callers hold s.mu.
func (s *ReportService) findDisplay(id int) (int, error) {
	for i := range s.display {
		if s.display[i].ID == id {
			return i, nil
		}
	}
	return 0, ErrReportNotFound
}
