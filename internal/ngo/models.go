package ngo

import (
	"time"

	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

// NGO represents a directory record returned to clients
type NGO struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	RegistrationNo    string              `json:"registration_no,omitempty"`
	DarpanID          string              `json:"darpan_id,omitempty"`
	Mission           string              `json:"mission,omitempty"`
	Description       string              `json:"description,omitempty"`
	FoundedYear       int                 `json:"founded_year,omitempty"`
	Email             string              `json:"email,omitempty"`
	Phone             string              `json:"phone,omitempty"`
	Website           string              `json:"website,omitempty"`
	Address           string              `json:"address,omitempty"`
	City              string              `json:"city,omitempty"`
	State             string              `json:"state,omitempty"`
	District          string              `json:"district,omitempty"`
	Country           string              `json:"country"`
	Latitude          *float64            `json:"latitude,omitempty"`
	Longitude         *float64            `json:"longitude,omitempty"`
	RegisteredWith    string              `json:"registered_with,omitempty"`
	RegistrationDate  *time.Time          `json:"registration_date,omitempty"`
	ActName           string              `json:"act_name,omitempty"`
	TypeOfNGO         string              `json:"type_of_ngo,omitempty"`
	Verified          bool                `json:"verified"`
	Active            bool                `json:"active"`
	Blacklisted       bool                `json:"blacklisted"`
	TransparencyScore int                 `json:"transparency_score"`
	Source            string              `json:"source,omitempty"`
	ScrapedAt         *time.Time          `json:"scraped_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Categories        []category.Category `json:"categories"`
	OfficeBearers     []OfficeBearer      `json:"office_bearers"`
	BlacklistInfo     *BlacklistRecord    `json:"blacklist_info,omitempty"`
}

// OfficeBearer is a named role holder, owned by its NGO
type OfficeBearer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
}

// BlacklistRecord is the justification artifact accompanying a blacklisted NGO.
// It exists iff the NGO's blacklisted flag is true.
type BlacklistRecord struct {
	ID            string    `json:"id"`
	NGOID         string    `json:"ngo_id"`
	BlacklistedBy string    `json:"blacklisted_by,omitempty"`
	BlacklistDate time.Time `json:"blacklist_date"`
	Reason        string    `json:"reason,omitempty"`
	WefDate       time.Time `json:"wef_date"`
	LastUpdated   time.Time `json:"last_updated"`
}

// CreateNGORequest represents the request to register a new NGO
type CreateNGORequest struct {
	Name           string                `json:"name"`
	RegistrationNo string                `json:"registration_no,omitempty"`
	DarpanID       string                `json:"darpan_id,omitempty"`
	Mission        string                `json:"mission,omitempty"`
	Description    string                `json:"description,omitempty"`
	FoundedYear    int                   `json:"founded_year,omitempty"`
	Email          string                `json:"email,omitempty"`
	Phone          string                `json:"phone,omitempty"`
	Website        string                `json:"website,omitempty"`
	Address        string                `json:"address,omitempty"`
	City           string                `json:"city,omitempty"`
	State          string                `json:"state,omitempty"`
	District       string                `json:"district,omitempty"`
	Country        string                `json:"country,omitempty"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	RegisteredWith string                `json:"registered_with,omitempty"`
	ActName        string                `json:"act_name,omitempty"`
	TypeOfNGO      string                `json:"type_of_ngo,omitempty"`
	OfficeBearers  []OfficeBearerRequest `json:"office_bearers,omitempty"`

	// Provenance, set by the ingestion job rather than API clients.
	Source    string     `json:"source,omitempty"`
	ScrapedAt *time.Time `json:"scraped_at,omitempty"`
}

// OfficeBearerRequest is an office bearer supplied on creation
type OfficeBearerRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
}

// Validate validates the create request
func (r *CreateNGORequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	return nil
}

// UpdateNGORequest is the explicit allow-list of patchable fields. Pointer
// fields distinguish "not supplied" from "set to zero value"; unknown JSON
// fields are rejected at decode time.
type UpdateNGORequest struct {
	Name           *string  `json:"name,omitempty"`
	RegistrationNo *string  `json:"registration_no,omitempty"`
	DarpanID       *string  `json:"darpan_id,omitempty"`
	Mission        *string  `json:"mission,omitempty"`
	Description    *string  `json:"description,omitempty"`
	FoundedYear    *int     `json:"founded_year,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Website        *string  `json:"website,omitempty"`
	Address        *string  `json:"address,omitempty"`
	City           *string  `json:"city,omitempty"`
	State          *string  `json:"state,omitempty"`
	District       *string  `json:"district,omitempty"`
	Country        *string  `json:"country,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	RegisteredWith *string  `json:"registered_with,omitempty"`
	ActName        *string  `json:"act_name,omitempty"`
	TypeOfNGO      *string  `json:"type_of_ngo,omitempty"`
	Active         *bool    `json:"active,omitempty"`
}

// IsEmpty reports whether the patch supplies no fields at all
func (r *UpdateNGORequest) IsEmpty() bool {
	return r.Name == nil && r.RegistrationNo == nil && r.DarpanID == nil &&
		r.Mission == nil && r.Description == nil && r.FoundedYear == nil &&
		r.Email == nil && r.Phone == nil && r.Website == nil && r.Address == nil &&
		r.City == nil && r.State == nil && r.District == nil && r.Country == nil &&
		r.Latitude == nil && r.Longitude == nil && r.RegisteredWith == nil &&
		r.ActName == nil && r.TypeOfNGO == nil && r.Active == nil
}

// BlacklistRequest carries the justification for a blacklist transition
type BlacklistRequest struct {
	BlacklistedBy string `json:"blacklisted_by"`
	Reason        string `json:"reason"`
	WefDate       string `json:"wef_date,omitempty"` // YYYY-MM-DD, defaults to the operation time
}

// Filters are the composable listing predicates (logical AND)
type Filters struct {
	Category           string // exact slug match via the association
	State              string // case-insensitive substring
	City               string
	District           string
	Verified           *bool
	Search             string // OR across name, mission, description, darpan_id
	IncludeBlacklisted bool   // default false: blacklisted records are hidden
}

// BlacklistFilters are the predicates for the blacklisted-only view
type BlacklistFilters struct {
	State         string
	BlacklistedBy string // case-insensitive substring on the issuing authority
	Search        string // OR across name, darpan_id
}

// MapPoint is the trimmed projection served to the map view
type MapPoint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Verified    bool     `json:"verified"`
	Blacklisted bool     `json:"blacklisted"`
	Categories  []string `json:"categories"`
}

// PaginatedListResponse wraps a page of NGOs with pagination metadata
type PaginatedListResponse struct {
	Success    bool            `json:"success"`
	NGOs       []NGO           `json:"ngos"`
	Pagination pagination.Meta `json:"pagination"`
}
