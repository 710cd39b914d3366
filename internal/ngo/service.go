package ngo

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
	"github.com/sevasetu/ngo-directory-service/internal/messaging"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

const (
	defaultCountry = "India"
	searchLimit    = 10
	dateLayout     = "2006-01-02"
)

// Service implements the NGO business logic: validation, enrichment, the
// transparency score and the verification / blacklist state machine.
type Service struct {
	repo       RepositoryInterface
	categories category.ServiceInterface
	enricher   *enrich.Engine
	publisher  messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, categories category.ServiceInterface, enricher *enrich.Engine, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		enricher:   enricher,
		publisher:  publisher,
	}
}

// CreateNGO validates, enriches and persists a new record. Enrichment runs
// before the write transaction; its failures degrade, they never block the
// create.
func (s *Service) CreateNGO(ctx context.Context, req CreateNGORequest) (*NGO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var vocabulary []string
	if s.categories != nil {
		var err error
		vocabulary, err = s.categories.VocabularyNames(ctx)
		if err != nil {
			log.Printf("Warning: failed to load category vocabulary: %v", err)
		}
	}

	result := s.enricher.Enrich(ctx, req.Description, req.Mission, vocabulary)

	var cats []category.Category
	if s.categories != nil && len(result.SuggestedLabels) > 0 {
		var err error
		cats, err = s.categories.Resolve(ctx, result.SuggestedLabels)
		if err != nil {
			log.Printf("Warning: failed to resolve suggested categories: %v", err)
			cats = nil
		}
	}
	if cats == nil {
		cats = []category.Category{}
	}

	now := time.Now().UTC()
	country := req.Country
	if country == "" {
		country = defaultCountry
	}

	n := &NGO{
		ID:             uuid.New().String(),
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		DarpanID:       req.DarpanID,
		Mission:        req.Mission,
		Description:    result.Summary,
		FoundedYear:    req.FoundedYear,
		Email:          req.Email,
		Phone:          req.Phone,
		Website:        req.Website,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		District:       req.District,
		Country:        country,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		RegisteredWith: req.RegisteredWith,
		ActName:        req.ActName,
		TypeOfNGO:      req.TypeOfNGO,
		Active:         true,
		Source:         req.Source,
		ScrapedAt:      req.ScrapedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
		Categories:     cats,
		OfficeBearers:  make([]OfficeBearer, 0, len(req.OfficeBearers)),
	}
	for _, ob := range req.OfficeBearers {
		n.OfficeBearers = append(n.OfficeBearers, OfficeBearer{Name: ob.Name, Designation: ob.Designation})
	}
	n.TransparencyScore = scoreFor(n)

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	log.Printf("Created NGO %s (%s) with transparency score %d", n.Name, n.ID, n.TransparencyScore)

	s.publish(ctx, messaging.EventNGOCreated, messaging.NGOCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventNGOCreated),
		Data: messaging.NGOCreatedData{
			NGOID:             n.ID,
			Name:              n.Name,
			DarpanID:          n.DarpanID,
			TransparencyScore: n.TransparencyScore,
			Source:            n.Source,
			CreatedAt:         n.CreatedAt,
		},
	})

	return n, nil
}

// GetNGO returns a single record with its associations
func (s *Service) GetNGO(ctx context.Context, id string) (*NGO, error) {
	return s.repo.GetByID(ctx, id)
}

// ListNGOs returns one page of records matching the filters
func (s *Service) ListNGOs(ctx context.Context, f Filters, params pagination.Params) ([]NGO, pagination.Meta, error) {
	params.Validate()

	ngos, total, err := s.repo.List(ctx, f, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if ngos == nil {
		ngos = []NGO{}
	}

	return ngos, params.CalculateMeta(total), nil
}

// ListBlacklistedNGOs returns one page of blacklisted records with their
// justification attached.
func (s *Service) ListBlacklistedNGOs(ctx context.Context, f BlacklistFilters, params pagination.Params) ([]NGO, pagination.Meta, error) {
	params.Validate()

	ngos, total, err := s.repo.ListBlacklisted(ctx, f, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if ngos == nil {
		ngos = []NGO{}
	}

	return ngos, params.CalculateMeta(total), nil
}

// UpdateNGO applies an allow-listed patch and republishes the record
func (s *Service) UpdateNGO(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error) {
	if req.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	n, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventNGOUpdated, messaging.NGOUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventNGOUpdated),
		Data: messaging.NGOUpdatedData{
			NGOID:             n.ID,
			TransparencyScore: n.TransparencyScore,
			UpdatedAt:         n.UpdatedAt,
		},
	})

	return n, nil
}

// VerifyNGO marks a record verified. The transition is one-way and idempotent.
func (s *Service) VerifyNGO(ctx context.Context, id string) (*NGO, error) {
	n, err := s.repo.Verify(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("Verified NGO %s, transparency score now %d", n.ID, n.TransparencyScore)

	s.publish(ctx, messaging.EventNGOVerified, messaging.NGOVerifiedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventNGOVerified),
		Data: messaging.NGOVerifiedData{
			NGOID:      n.ID,
			VerifiedAt: n.UpdatedAt,
		},
	})

	return n, nil
}

// BlacklistNGO transitions a record onto the blacklist with a justification
// record. Blacklisting an already blacklisted record is a conflict.
func (s *Service) BlacklistNGO(ctx context.Context, id string, req BlacklistRequest) (*BlacklistRecord, error) {
	now := time.Now().UTC()

	wef := now
	if req.WefDate != "" {
		parsed, err := time.Parse(dateLayout, req.WefDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.WefDate)
		}
		wef = parsed
	}

	rec := &BlacklistRecord{
		BlacklistedBy: req.BlacklistedBy,
		BlacklistDate: now,
		Reason:        req.Reason,
		WefDate:       wef,
		LastUpdated:   now,
	}

	if err := s.repo.Blacklist(ctx, id, rec); err != nil {
		return nil, err
	}

	log.Printf("Blacklisted NGO %s by %s", id, req.BlacklistedBy)

	s.publish(ctx, messaging.EventNGOBlacklisted, messaging.NGOBlacklistedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventNGOBlacklisted),
		Data: messaging.NGOBlacklistedData{
			NGOID:         id,
			BlacklistedBy: req.BlacklistedBy,
			Reason:        req.Reason,
			WefDate:       wef.Format(dateLayout),
			BlacklistedAt: now,
		},
	})

	return rec, nil
}

// UnblacklistNGO removes a record from the blacklist
func (s *Service) UnblacklistNGO(ctx context.Context, id string) error {
	if err := s.repo.Unblacklist(ctx, id); err != nil {
		return err
	}

	log.Printf("Removed NGO %s from blacklist", id)

	s.publish(ctx, messaging.EventNGOUnblacklisted, messaging.NGOUnblacklistedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventNGOUnblacklisted),
		Data: messaging.NGOUnblacklistedData{
			NGOID:           id,
			UnblacklistedAt: time.Now().UTC(),
		},
	})

	return nil
}

// GetMapData returns the coordinate projection for the map view
func (s *Service) GetMapData(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error) {
	points, err := s.repo.MapData(ctx, includeBlacklisted)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []MapPoint{}
	}
	return points, nil
}

// SearchNGOs is the typeahead lookup, capped at a small fixed page
func (s *Service) SearchNGOs(ctx context.Context, term string) ([]NGO, error) {
	ngos, err := s.repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	if ngos == nil {
		ngos = []NGO{}
	}
	return ngos, nil
}

// publish sends an event, logging instead of failing when the broker is down
func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
