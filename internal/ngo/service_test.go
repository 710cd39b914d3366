package ngo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

type mockRepository struct {
	createFunc          func(ctx context.Context, n *NGO) error
	getByIDFunc         func(ctx context.Context, id string) (*NGO, error)
	listFunc            func(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error)
	listBlacklistedFunc func(ctx context.Context, f BlacklistFilters, limit, offset int) ([]NGO, int, error)
	updateFunc          func(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error)
	verifyFunc          func(ctx context.Context, id string) (*NGO, error)
	blacklistFunc       func(ctx context.Context, id string, rec *BlacklistRecord) error
	unblacklistFunc     func(ctx context.Context, id string) error
	mapDataFunc         func(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error)
	searchFunc          func(ctx context.Context, term string, limit int) ([]NGO, error)
}

func (m *mockRepository) Create(ctx context.Context, n *NGO) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, n)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*NGO, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) List(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) ListBlacklisted(ctx context.Context, f BlacklistFilters, limit, offset int) ([]NGO, int, error) {
	if m.listBlacklistedFunc != nil {
		return m.listBlacklistedFunc(ctx, f, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) Update(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Verify(ctx context.Context, id string) (*NGO, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Blacklist(ctx context.Context, id string, rec *BlacklistRecord) error {
	if m.blacklistFunc != nil {
		return m.blacklistFunc(ctx, id, rec)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) Unblacklist(ctx context.Context, id string) error {
	if m.unblacklistFunc != nil {
		return m.unblacklistFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) MapData(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error) {
	if m.mapDataFunc != nil {
		return m.mapDataFunc(ctx, includeBlacklisted)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Search(ctx context.Context, term string, limit int) ([]NGO, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term, limit)
	}
	return nil, errors.New("not implemented")
}

type mockCategoryService struct {
	vocabularyFunc func(ctx context.Context) ([]string, error)
	resolveFunc    func(ctx context.Context, labels []string) ([]category.Category, error)
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCategoryService) VocabularyNames(ctx context.Context) ([]string, error) {
	if m.vocabularyFunc != nil {
		return m.vocabularyFunc(ctx)
	}
	return nil, nil
}

func (m *mockCategoryService) Resolve(ctx context.Context, labels []string) ([]category.Category, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, labels)
	}
	return nil, nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, routingKey string, event interface{}) error
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, routingKey, event)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type stubTextClient struct {
	generateSummaryFunc   func(ctx context.Context, text string, maxLength int) (string, error)
	suggestCategoriesFunc func(ctx context.Context, mission string, vocabulary []string) ([]string, error)
}

func (s *stubTextClient) GenerateSummary(ctx context.Context, text string, maxLength int) (string, error) {
	if s.generateSummaryFunc != nil {
		return s.generateSummaryFunc(ctx, text, maxLength)
	}
	return "", errors.New("not implemented")
}

func (s *stubTextClient) SuggestCategories(ctx context.Context, mission string, vocabulary []string) ([]string, error) {
	if s.suggestCategoriesFunc != nil {
		return s.suggestCategoriesFunc(ctx, mission, vocabulary)
	}
	return nil, errors.New("not implemented")
}

func newTestService(repo RepositoryInterface, cats category.ServiceInterface, client enrich.Client, pub *mockPublisher) *Service {
	if pub == nil {
		pub = &mockPublisher{}
	}
	return NewService(repo, cats, enrich.NewEngine(client, nil), pub)
}

// TestCreateNGO_MissingName tests that validation rejects a nameless record
func TestCreateNGO_MissingName(t *testing.T) {
	service := newTestService(&mockRepository{}, &mockCategoryService{}, nil, nil)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{})
	if !errors.Is(err, ErrMissingName) {
		t.Errorf("Expected ErrMissingName, got: %v", err)
	}
}

// TestCreateNGO_FallbackSummary tests that with the text backend disabled a
// long description is truncated deterministically.
func TestCreateNGO_FallbackSummary(t *testing.T) {
	var created *NGO
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error {
			created = n
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	longDescription := strings.Repeat("a", 500)
	_, err := service.CreateNGO(context.Background(), CreateNGORequest{
		Name:        "Helping Hands",
		Description: longDescription,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if created == nil {
		t.Fatal("Expected repository create to be called")
	}

	want := strings.Repeat("a", enrich.DefaultMaxSummaryLength) + enrich.TruncationMarker
	if created.Description != want {
		t.Errorf("Expected truncated description of length %d, got length %d", len(want), len(created.Description))
	}
	if len(created.Categories) != 0 {
		t.Errorf("Expected no categories without a text backend, got %v", created.Categories)
	}
}

// TestCreateNGO_SuggestedCategories tests that backend suggestions resolve to
// taxonomy categories on the created record.
func TestCreateNGO_SuggestedCategories(t *testing.T) {
	var created *NGO
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error {
			created = n
			return nil
		},
	}
	cats := &mockCategoryService{
		vocabularyFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Education", "Health"}, nil
		},
		resolveFunc: func(ctx context.Context, labels []string) ([]category.Category, error) {
			return []category.Category{{ID: "c1", Name: "Education", Slug: "education"}}, nil
		},
	}
	client := &stubTextClient{
		generateSummaryFunc: func(ctx context.Context, text string, maxLength int) (string, error) {
			return "A concise summary.", nil
		},
		suggestCategoriesFunc: func(ctx context.Context, mission string, vocabulary []string) ([]string, error) {
			return []string{"Education", "Astrology"}, nil
		},
	}
	service := newTestService(repo, cats, client, nil)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{
		Name:        "Teach For All",
		Mission:     "Education for every child",
		Description: "We run schools in rural districts.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if created.Description != "A concise summary." {
		t.Errorf("Expected backend summary, got %q", created.Description)
	}
	if len(created.Categories) != 1 || created.Categories[0].Slug != "education" {
		t.Errorf("Expected resolved education category, got %v", created.Categories)
	}
}

// TestCreateNGO_BackendFailureDegrades tests that a failing text backend never
// blocks record creation.
func TestCreateNGO_BackendFailureDegrades(t *testing.T) {
	var created *NGO
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error {
			created = n
			return nil
		},
	}
	client := &stubTextClient{
		generateSummaryFunc: func(ctx context.Context, text string, maxLength int) (string, error) {
			return "", errors.New("backend unavailable")
		},
		suggestCategoriesFunc: func(ctx context.Context, mission string, vocabulary []string) ([]string, error) {
			return nil, errors.New("backend unavailable")
		},
	}
	cats := &mockCategoryService{
		vocabularyFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Health"}, nil
		},
	}
	service := newTestService(repo, cats, client, nil)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{
		Name:        "Rural Health Trust",
		Mission:     "Healthcare access",
		Description: "short text",
	})
	if err != nil {
		t.Fatalf("Expected degraded create to succeed, got: %v", err)
	}
	if created.Description != "short text" {
		t.Errorf("Expected fallback description, got %q", created.Description)
	}
}

// TestCreateNGO_ScoreComputed tests the transparency score on a fresh record
func TestCreateNGO_ScoreComputed(t *testing.T) {
	var created *NGO
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error {
			created = n
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{
		Name:  "Score Test",
		Email: "contact@example.org",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// name 5 + email 10
	if created.TransparencyScore != 15 {
		t.Errorf("Expected score 15, got %d", created.TransparencyScore)
	}
}

// TestCreateNGO_PublishesEvent tests the ngo.created event
func TestCreateNGO_PublishesEvent(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error { return nil },
	}
	var published []string
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, routingKey string, event interface{}) error {
			published = append(published, routingKey)
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, pub)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{Name: "Event Test"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(published) != 1 || published[0] != "ngo.created" {
		t.Errorf("Expected ngo.created event, got %v", published)
	}
}

// TestCreateNGO_DuplicateRegistration tests unique violation propagation
func TestCreateNGO_DuplicateRegistration(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, n *NGO) error {
			return ErrDuplicateRegistration
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	_, err := service.CreateNGO(context.Background(), CreateNGORequest{Name: "Dup", RegistrationNo: "REG-1"})
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Errorf("Expected ErrDuplicateRegistration, got: %v", err)
	}
}

// TestUpdateNGO_EmptyPatch tests that an empty patch never reaches the repository
func TestUpdateNGO_EmptyPatch(t *testing.T) {
	repoCalled := false
	repo := &mockRepository{
		updateFunc: func(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error) {
			repoCalled = true
			return nil, nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	_, err := service.UpdateNGO(context.Background(), "ngo-1", UpdateNGORequest{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Errorf("Expected ErrNoFieldsToUpdate, got: %v", err)
	}
	if repoCalled {
		t.Error("Expected repository not to be called for an empty patch")
	}
}

// TestVerifyNGO_PublishesEvent tests the ngo.verified event
func TestVerifyNGO_PublishesEvent(t *testing.T) {
	repo := &mockRepository{
		verifyFunc: func(ctx context.Context, id string) (*NGO, error) {
			return &NGO{ID: id, Verified: true, UpdatedAt: time.Now()}, nil
		},
	}
	var published []string
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, routingKey string, event interface{}) error {
			published = append(published, routingKey)
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, pub)

	n, err := service.VerifyNGO(context.Background(), "ngo-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !n.Verified {
		t.Error("Expected verified NGO")
	}
	if len(published) != 1 || published[0] != "ngo.verified" {
		t.Errorf("Expected ngo.verified event, got %v", published)
	}
}

// TestBlacklistNGO_DefaultsWefDate tests that the effective date defaults to now
func TestBlacklistNGO_DefaultsWefDate(t *testing.T) {
	var stored *BlacklistRecord
	repo := &mockRepository{
		blacklistFunc: func(ctx context.Context, id string, rec *BlacklistRecord) error {
			stored = rec
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	before := time.Now().UTC()
	rec, err := service.BlacklistNGO(context.Background(), "ngo-1", BlacklistRequest{
		BlacklistedBy: "CBI",
		Reason:        "fund misuse",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected repository blacklist to be called")
	}
	if rec.WefDate.Before(before) {
		t.Errorf("Expected wef date to default to now, got %v", rec.WefDate)
	}
	if rec.BlacklistedBy != "CBI" {
		t.Errorf("Expected blacklisted_by to carry through, got %q", rec.BlacklistedBy)
	}
}

// TestBlacklistNGO_ParsesWefDate tests explicit effective dates
func TestBlacklistNGO_ParsesWefDate(t *testing.T) {
	repo := &mockRepository{
		blacklistFunc: func(ctx context.Context, id string, rec *BlacklistRecord) error { return nil },
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	rec, err := service.BlacklistNGO(context.Background(), "ngo-1", BlacklistRequest{
		WefDate: "2024-04-01",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.WefDate.Format("2006-01-02") != "2024-04-01" {
		t.Errorf("Expected wef date 2024-04-01, got %v", rec.WefDate)
	}
}

// TestBlacklistNGO_InvalidWefDate tests the date validation error
func TestBlacklistNGO_InvalidWefDate(t *testing.T) {
	service := newTestService(&mockRepository{}, &mockCategoryService{}, nil, nil)

	_, err := service.BlacklistNGO(context.Background(), "ngo-1", BlacklistRequest{
		WefDate: "01/04/2024",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got: %v", err)
	}
}

// TestBlacklistNGO_Conflict tests that a second blacklist is rejected
func TestBlacklistNGO_Conflict(t *testing.T) {
	repo := &mockRepository{
		blacklistFunc: func(ctx context.Context, id string, rec *BlacklistRecord) error {
			return ErrAlreadyBlacklisted
		},
	}
	var published []string
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, routingKey string, event interface{}) error {
			published = append(published, routingKey)
			return nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, pub)

	_, err := service.BlacklistNGO(context.Background(), "ngo-1", BlacklistRequest{})
	if !errors.Is(err, ErrAlreadyBlacklisted) {
		t.Errorf("Expected ErrAlreadyBlacklisted, got: %v", err)
	}
	if len(published) != 0 {
		t.Errorf("Expected no event on conflict, got %v", published)
	}
}

// TestUnblacklistNGO_NotBlacklisted tests the reverse transition guard
func TestUnblacklistNGO_NotBlacklisted(t *testing.T) {
	repo := &mockRepository{
		unblacklistFunc: func(ctx context.Context, id string) error {
			return ErrNotBlacklisted
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	err := service.UnblacklistNGO(context.Background(), "ngo-1")
	if !errors.Is(err, ErrNotBlacklisted) {
		t.Errorf("Expected ErrNotBlacklisted, got: %v", err)
	}
}

// TestListNGOs_EmptyPage tests that a page past the end is an empty list
func TestListNGOs_EmptyPage(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error) {
			return nil, 3, nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	ngos, meta, err := service.ListNGOs(context.Background(), Filters{}, pagination.Params{Page: 99, Limit: 20})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ngos == nil || len(ngos) != 0 {
		t.Errorf("Expected empty non-nil page, got %v", ngos)
	}
	if meta.TotalRecords != 3 {
		t.Errorf("Expected total 3, got %d", meta.TotalRecords)
	}
	if meta.HasNext {
		t.Error("Expected no next page past the end")
	}
}

// TestListNGOs_ClampsLimit tests that oversized page sizes are clamped
func TestListNGOs_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockRepository{
		listFunc: func(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error) {
			gotLimit = limit
			return []NGO{}, 0, nil
		},
	}
	service := newTestService(repo, &mockCategoryService{}, nil, nil)

	_, _, err := service.ListNGOs(context.Background(), Filters{}, pagination.Params{Page: 1, Limit: 5000})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotLimit != pagination.MaxLimit {
		t.Errorf("Expected limit clamped to %d, got %d", pagination.MaxLimit, gotLimit)
	}
}
