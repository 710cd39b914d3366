package ingest

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/sevasetu/ngo-directory-service/internal/ngo"
)

// RawRecord is one scraped directory entry as found in an export file. Fields
// arrive as strings; exports are inconsistent about numeric types.
type RawRecord struct {
	Name           string `json:"name"`
	DarpanID       string `json:"darpan_id"`
	RegistrationNo string `json:"registration_no"`
	Mission        string `json:"mission"`
	Description    string `json:"description"`
	FoundedYear    string `json:"founded_year"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	District       string `json:"district"`
	RegisteredWith string `json:"registered_with"`
	ActName        string `json:"act_name"`
	TypeOfNGO      string `json:"type_of_ngo"`
}

// Summary reports what one ingestion run did
type Summary struct {
	Created int
	Skipped int
	Failed  int
}

// Ingestor loads scraped records through the regular creation path so
// enrichment, scoring and events apply to imported data too.
type Ingestor struct {
	ngos   ngo.ServiceInterface
	source string
}

func NewIngestor(ngos ngo.ServiceInterface, source string) *Ingestor {
	return &Ingestor{
		ngos:   ngos,
		source: source,
	}
}

// Run imports all records. Records already present (matched by darpan or
// registration number) are skipped, not updated; individual failures are
// logged and do not stop the run.
func (i *Ingestor) Run(ctx context.Context, records []RawRecord) Summary {
	var summary Summary
	scrapedAt := time.Now().UTC()

	for _, raw := range records {
		req, ok := i.normalize(raw, scrapedAt)
		if !ok {
			summary.Skipped++
			continue
		}

		_, err := i.ngos.CreateNGO(ctx, req)
		switch {
		case err == nil:
			summary.Created++
		case errors.Is(err, ngo.ErrDuplicateRegistration):
			summary.Skipped++
		default:
			log.Printf("Failed to ingest record %q: %v", raw.Name, err)
			summary.Failed++
		}
	}

	log.Printf("Ingestion from %s done: %d created, %d skipped, %d failed",
		i.source, summary.Created, summary.Skipped, summary.Failed)

	return summary
}

// normalize trims and converts a raw record. Records without a name or any
// registration identity are not importable.
func (i *Ingestor) normalize(raw RawRecord, scrapedAt time.Time) (ngo.CreateNGORequest, bool) {
	name := strings.TrimSpace(raw.Name)
	darpanID := strings.TrimSpace(raw.DarpanID)
	registrationNo := strings.TrimSpace(raw.RegistrationNo)

	if name == "" || (darpanID == "" && registrationNo == "") {
		return ngo.CreateNGORequest{}, false
	}

	foundedYear := 0
	if y := strings.TrimSpace(raw.FoundedYear); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil && parsed > 0 {
			foundedYear = parsed
		}
	}

	ts := scrapedAt
	return ngo.CreateNGORequest{
		Name:           name,
		DarpanID:       darpanID,
		RegistrationNo: registrationNo,
		Mission:        strings.TrimSpace(raw.Mission),
		Description:    strings.TrimSpace(raw.Description),
		FoundedYear:    foundedYear,
		Email:          strings.TrimSpace(raw.Email),
		Phone:          strings.TrimSpace(raw.Phone),
		Website:        strings.TrimSpace(raw.Website),
		Address:        strings.TrimSpace(raw.Address),
		City:           strings.TrimSpace(raw.City),
		State:          strings.TrimSpace(raw.State),
		District:       strings.TrimSpace(raw.District),
		RegisteredWith: strings.TrimSpace(raw.RegisteredWith),
		ActName:        strings.TrimSpace(raw.ActName),
		TypeOfNGO:      strings.TrimSpace(raw.TypeOfNGO),
		Source:         i.source,
		ScrapedAt:      &ts,
	}, true
}
