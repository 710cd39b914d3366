package ngo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ngoColumnList is the canonical select list, one expression per column.
// NULL text columns are collapsed to empty strings so scans stay free of
// sql.NullString boilerplate.
var ngoColumnList = []string{
	"id", "name",
	"COALESCE(registration_no, '')", "COALESCE(darpan_id, '')",
	"COALESCE(mission, '')", "COALESCE(description, '')",
	"COALESCE(founded_year, 0)",
	"COALESCE(email, '')", "COALESCE(phone, '')", "COALESCE(website, '')",
	"COALESCE(address, '')", "COALESCE(city, '')", "COALESCE(state, '')", "COALESCE(district, '')",
	"country", "latitude", "longitude",
	"COALESCE(registered_with, '')", "registration_date",
	"COALESCE(act_name, '')", "COALESCE(type_of_ngo, '')",
	"verified", "active", "blacklisted", "transparency_score",
	"COALESCE(source, '')", "scraped_at", "created_at", "updated_at",
}

var ngoColumns = strings.Join(ngoColumnList, ", ")

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNGO(row rowScanner) (*NGO, error) {
	var n NGO
	err := row.Scan(
		&n.ID, &n.Name,
		&n.RegistrationNo, &n.DarpanID,
		&n.Mission, &n.Description,
		&n.FoundedYear,
		&n.Email, &n.Phone, &n.Website,
		&n.Address, &n.City, &n.State, &n.District,
		&n.Country, &n.Latitude, &n.Longitude,
		&n.RegisteredWith, &n.RegistrationDate,
		&n.ActName, &n.TypeOfNGO,
		&n.Verified, &n.Active, &n.Blacklisted, &n.TransparencyScore,
		&n.Source, &n.ScrapedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Categories = []category.Category{}
	n.OfficeBearers = []OfficeBearer{}
	return &n, nil
}

// nullString maps empty strings to SQL NULL so the unique indexes on
// registration_no and darpan_id ignore records that never had one.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Create inserts the NGO together with its category links and office bearers
// in a single transaction.
func (r *Repository) Create(ctx context.Context, n *NGO) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO ngos
		(id, name, registration_no, darpan_id, mission, description, founded_year,
		 email, phone, website, address, city, state, district, country,
		 latitude, longitude, registered_with, registration_date, act_name, type_of_ngo,
		 verified, active, blacklisted, transparency_score, source, scraped_at,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`

	_, err = tx.ExecContext(ctx, query,
		n.ID, n.Name,
		nullString(n.RegistrationNo), nullString(n.DarpanID),
		nullString(n.Mission), nullString(n.Description),
		nullInt(n.FoundedYear),
		nullString(n.Email), nullString(n.Phone), nullString(n.Website),
		nullString(n.Address), nullString(n.City), nullString(n.State), nullString(n.District),
		n.Country, n.Latitude, n.Longitude,
		nullString(n.RegisteredWith), nullTime(n.RegistrationDate),
		nullString(n.ActName), nullString(n.TypeOfNGO),
		n.Verified, n.Active, n.Blacklisted, n.TransparencyScore,
		nullString(n.Source), nullTime(n.ScrapedAt),
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return ErrDuplicateRegistration
			}
		}
		return fmt.Errorf("failed to insert ngo: %w", err)
	}

	for _, c := range n.Categories {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO ngo_categories (ngo_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			n.ID, c.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to link category: %w", err)
		}
	}

	for i := range n.OfficeBearers {
		if n.OfficeBearers[i].ID == "" {
			n.OfficeBearers[i].ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO office_bearers (id, ngo_id, name, designation) VALUES ($1, $2, $3, $4)`,
			n.OfficeBearers[i].ID, n.ID, n.OfficeBearers[i].Name, nullString(n.OfficeBearers[i].Designation),
		)
		if err != nil {
			return fmt.Errorf("failed to insert office bearer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID returns the full record including categories, office bearers and,
// when present, the blacklist record.
func (r *Repository) GetByID(ctx context.Context, id string) (*NGO, error) {
	query := fmt.Sprintf(`SELECT %s FROM ngos WHERE id = $1`, ngoColumns)

	n, err := scanNGO(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNGONotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ngo: %w", err)
	}

	if err := r.attachCategories(ctx, []*NGO{n}); err != nil {
		return nil, err
	}
	if err := r.attachOfficeBearers(ctx, n); err != nil {
		return nil, err
	}
	if n.Blacklisted {
		if err := r.attachBlacklistRecords(ctx, []*NGO{n}); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// List returns one page of NGOs matching the filters plus the total match
// count. Blacklisted records are excluded unless the filter opts in.
func (r *Repository) List(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error) {
	whereClause := "WHERE n.active = TRUE"
	var joinClause string
	args := []interface{}{}
	argIndex := 1

	if !f.IncludeBlacklisted {
		whereClause += " AND n.blacklisted = FALSE"
	}
	if f.Category != "" {
		joinClause = `
			JOIN ngo_categories nc ON nc.ngo_id = n.id
			JOIN categories c ON c.id = nc.category_id`
		whereClause += fmt.Sprintf(" AND c.slug = $%d", argIndex)
		args = append(args, f.Category)
		argIndex++
	}
	if f.State != "" {
		whereClause += fmt.Sprintf(" AND n.state ILIKE $%d", argIndex)
		args = append(args, "%"+f.State+"%")
		argIndex++
	}
	if f.City != "" {
		whereClause += fmt.Sprintf(" AND n.city ILIKE $%d", argIndex)
		args = append(args, "%"+f.City+"%")
		argIndex++
	}
	if f.District != "" {
		whereClause += fmt.Sprintf(" AND n.district ILIKE $%d", argIndex)
		args = append(args, "%"+f.District+"%")
		argIndex++
	}
	if f.Verified != nil {
		whereClause += fmt.Sprintf(" AND n.verified = $%d", argIndex)
		args = append(args, *f.Verified)
		argIndex++
	}
	if f.Search != "" {
		whereClause += fmt.Sprintf(
			" AND (n.name ILIKE $%d OR n.mission ILIKE $%d OR n.description ILIKE $%d OR n.darpan_id ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(DISTINCT n.id) FROM ngos n %s %s`, joinClause, whereClause)

	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count ngos: %w", err)
	}

	cols := prefixColumns("n")
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM ngos n
		%s
		%s
		ORDER BY n.id
		LIMIT $%d OFFSET $%d
	`, cols, joinClause, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	ngos, err := r.queryNGOs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*NGO, len(ngos))
	for i := range ngos {
		refs[i] = &ngos[i]
	}
	if err := r.attachCategories(ctx, refs); err != nil {
		return nil, 0, err
	}
	if f.IncludeBlacklisted {
		if err := r.attachBlacklistRecords(ctx, refs); err != nil {
			return nil, 0, err
		}
	}

	return ngos, totalCount, nil
}

// ListBlacklisted returns one page of blacklisted NGOs with their blacklist
// records attached.
func (r *Repository) ListBlacklisted(ctx context.Context, f BlacklistFilters, limit, offset int) ([]NGO, int, error) {
	whereClause := "WHERE n.blacklisted = TRUE"
	args := []interface{}{}
	argIndex := 1

	if f.State != "" {
		whereClause += fmt.Sprintf(" AND n.state ILIKE $%d", argIndex)
		args = append(args, "%"+f.State+"%")
		argIndex++
	}
	if f.BlacklistedBy != "" {
		whereClause += fmt.Sprintf(" AND b.blacklisted_by ILIKE $%d", argIndex)
		args = append(args, "%"+f.BlacklistedBy+"%")
		argIndex++
	}
	if f.Search != "" {
		whereClause += fmt.Sprintf(" AND (n.name ILIKE $%d OR n.darpan_id ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM ngos n
		JOIN blacklist_records b ON b.ngo_id = n.id
		%s
	`, whereClause)

	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count blacklisted ngos: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM ngos n
		JOIN blacklist_records b ON b.ngo_id = n.id
		%s
		ORDER BY n.id
		LIMIT $%d OFFSET $%d
	`, prefixColumns("n"), whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	ngos, err := r.queryNGOs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*NGO, len(ngos))
	for i := range ngos {
		refs[i] = &ngos[i]
	}
	if err := r.attachCategories(ctx, refs); err != nil {
		return nil, 0, err
	}
	if err := r.attachBlacklistRecords(ctx, refs); err != nil {
		return nil, 0, err
	}

	return ngos, totalCount, nil
}

// Update applies the patch and recomputes the transparency score from the
// resulting field values within the same transaction.
func (r *Repository) Update(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	addString := func(column string, v *string) {
		if v != nil {
			updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
			args = append(args, nullString(*v))
			argIndex++
		}
	}

	addString("name", req.Name)
	addString("registration_no", req.RegistrationNo)
	addString("darpan_id", req.DarpanID)
	addString("mission", req.Mission)
	addString("description", req.Description)
	if req.FoundedYear != nil {
		updates = append(updates, fmt.Sprintf("founded_year = $%d", argIndex))
		args = append(args, nullInt(*req.FoundedYear))
		argIndex++
	}
	addString("email", req.Email)
	addString("phone", req.Phone)
	addString("website", req.Website)
	addString("address", req.Address)
	addString("city", req.City)
	addString("state", req.State)
	addString("district", req.District)
	if req.Country != nil {
		updates = append(updates, fmt.Sprintf("country = $%d", argIndex))
		args = append(args, *req.Country)
		argIndex++
	}
	if req.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIndex))
		args = append(args, *req.Latitude)
		argIndex++
	}
	if req.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIndex))
		args = append(args, *req.Longitude)
		argIndex++
	}
	addString("registered_with", req.RegisteredWith)
	addString("act_name", req.ActName)
	addString("type_of_ngo", req.TypeOfNGO)
	if req.Active != nil {
		updates = append(updates, fmt.Sprintf("active = $%d", argIndex))
		args = append(args, *req.Active)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	args = append(args, id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		UPDATE ngos
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(updates, ", "), argIndex, ngoColumns)

	n, err := scanNGO(tx.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNGONotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil, ErrDuplicateRegistration
			}
		}
		return nil, fmt.Errorf("failed to update ngo: %w", err)
	}

	score := scoreFor(n)
	if score != n.TransparencyScore {
		_, err = tx.ExecContext(ctx, `UPDATE ngos SET transparency_score = $1 WHERE id = $2`, score, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update transparency score: %w", err)
		}
		n.TransparencyScore = score
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := r.attachCategories(ctx, []*NGO{n}); err != nil {
		return nil, err
	}
	if err := r.attachOfficeBearers(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Verify marks the NGO verified and bumps its transparency score. Verifying an
// already verified NGO is a no-op.
func (r *Repository) Verify(ctx context.Context, id string) (*NGO, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`SELECT %s FROM ngos WHERE id = $1 FOR UPDATE`, ngoColumns)

	n, err := scanNGO(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNGONotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ngo: %w", err)
	}

	if !n.Verified {
		n.Verified = true
		n.TransparencyScore = scoreFor(n)
		n.UpdatedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx,
			`UPDATE ngos SET verified = TRUE, transparency_score = $1, updated_at = $2 WHERE id = $3`,
			n.TransparencyScore, n.UpdatedAt, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to verify ngo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := r.attachCategories(ctx, []*NGO{n}); err != nil {
		return nil, err
	}

	return n, nil
}

// Blacklist flips the flag and writes the justification record in one
// transaction. The compare-and-swap on the flag guarantees at most one
// blacklist record per NGO even under concurrent requests.
func (r *Repository) Blacklist(ctx context.Context, id string, rec *BlacklistRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE ngos SET blacklisted = TRUE, updated_at = $1 WHERE id = $2 AND blacklisted = FALSE`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to blacklist ngo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ngos WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ngo existence: %w", err)
		}
		if !exists {
			return ErrNGONotFound
		}
		return ErrAlreadyBlacklisted
	}

	rec.ID = uuid.New().String()
	rec.NGOID = id
	_, err = tx.ExecContext(ctx,
		`INSERT INTO blacklist_records (id, ngo_id, blacklisted_by, blacklist_date, reason, wef_date, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.NGOID, nullString(rec.BlacklistedBy), rec.BlacklistDate, nullString(rec.Reason), rec.WefDate, rec.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blacklist record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Unblacklist reverses the flag and removes the blacklist record.
func (r *Repository) Unblacklist(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE ngos SET blacklisted = FALSE, updated_at = $1 WHERE id = $2 AND blacklisted = TRUE`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to unblacklist ngo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ngos WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ngo existence: %w", err)
		}
		if !exists {
			return ErrNGONotFound
		}
		return ErrNotBlacklisted
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blacklist_records WHERE ngo_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete blacklist record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// MapData returns the coordinates projection for every active NGO that has
// both latitude and longitude.
func (r *Repository) MapData(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error) {
	query := `
		SELECT n.id, n.name, n.latitude, n.longitude,
		       COALESCE(n.city, ''), COALESCE(n.state, ''),
		       n.verified, n.blacklisted,
		       COALESCE(array_agg(c.name) FILTER (WHERE c.name IS NOT NULL), '{}')
		FROM ngos n
		LEFT JOIN ngo_categories nc ON nc.ngo_id = n.id
		LEFT JOIN categories c ON c.id = nc.category_id
		WHERE n.active = TRUE AND n.latitude IS NOT NULL AND n.longitude IS NOT NULL
	`
	if !includeBlacklisted {
		query += " AND n.blacklisted = FALSE"
	}
	query += " GROUP BY n.id ORDER BY n.id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query map data: %w", err)
	}
	defer rows.Close()

	var points []MapPoint
	for rows.Next() {
		var p MapPoint
		var names pq.StringArray
		if err := rows.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.City, &p.State, &p.Verified, &p.Blacklisted, &names); err != nil {
			return nil, fmt.Errorf("failed to scan map point: %w", err)
		}
		p.Categories = []string(names)
		if p.Categories == nil {
			p.Categories = []string{}
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating map data: %w", err)
	}

	return points, nil
}

// Search is the lightweight typeahead lookup over visible NGOs.
func (r *Repository) Search(ctx context.Context, term string, limit int) ([]NGO, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ngos n
		WHERE n.active = TRUE AND n.blacklisted = FALSE
		  AND (n.name ILIKE $1 OR n.darpan_id ILIKE $1)
		ORDER BY n.name
		LIMIT $2
	`, prefixColumns("n"))

	return r.queryNGOs(ctx, query, "%"+term+"%", limit)
}

func (r *Repository) queryNGOs(ctx context.Context, query string, args ...interface{}) ([]NGO, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ngos: %w", err)
	}
	defer rows.Close()

	var ngos []NGO
	for rows.Next() {
		n, err := scanNGO(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ngo: %w", err)
		}
		ngos = append(ngos, *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ngos: %w", err)
	}

	return ngos, nil
}

func (r *Repository) attachCategories(ctx context.Context, ngos []*NGO) error {
	if len(ngos) == 0 {
		return nil
	}

	ids := make([]string, len(ngos))
	byID := make(map[string]*NGO, len(ngos))
	for i, n := range ngos {
		ids[i] = n.ID
		byID[n.ID] = n
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT nc.ngo_id, c.id, c.name, c.slug, COALESCE(c.icon, ''), COALESCE(c.description, '')
		FROM ngo_categories nc
		JOIN categories c ON c.id = nc.category_id
		WHERE nc.ngo_id = ANY($1)
		ORDER BY c.name
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query ngo categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ngoID string
		var c category.Category
		if err := rows.Scan(&ngoID, &c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description); err != nil {
			return fmt.Errorf("failed to scan ngo category: %w", err)
		}
		if n, ok := byID[ngoID]; ok {
			n.Categories = append(n.Categories, c)
		}
	}
	return rows.Err()
}

func (r *Repository) attachOfficeBearers(ctx context.Context, n *NGO) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(designation, '')
		FROM office_bearers
		WHERE ngo_id = $1
		ORDER BY name
	`, n.ID)
	if err != nil {
		return fmt.Errorf("failed to query office bearers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ob OfficeBearer
		if err := rows.Scan(&ob.ID, &ob.Name, &ob.Designation); err != nil {
			return fmt.Errorf("failed to scan office bearer: %w", err)
		}
		n.OfficeBearers = append(n.OfficeBearers, ob)
	}
	return rows.Err()
}

func (r *Repository) attachBlacklistRecords(ctx context.Context, ngos []*NGO) error {
	if len(ngos) == 0 {
		return nil
	}

	ids := make([]string, len(ngos))
	byID := make(map[string]*NGO, len(ngos))
	for i, n := range ngos {
		ids[i] = n.ID
		byID[n.ID] = n
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ngo_id, COALESCE(blacklisted_by, ''), blacklist_date, COALESCE(reason, ''), wef_date, last_updated
		FROM blacklist_records
		WHERE ngo_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query blacklist records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec BlacklistRecord
		if err := rows.Scan(&rec.ID, &rec.NGOID, &rec.BlacklistedBy, &rec.BlacklistDate, &rec.Reason, &rec.WefDate, &rec.LastUpdated); err != nil {
			return fmt.Errorf("failed to scan blacklist record: %w", err)
		}
		if n, ok := byID[rec.NGOID]; ok {
			n.BlacklistInfo = &rec
		}
	}
	return rows.Err()
}

// prefixColumns qualifies the canonical select list with a table alias.
func prefixColumns(alias string) string {
	cols := make([]string, len(ngoColumnList))
	for i, c := range ngoColumnList {
		if strings.HasPrefix(c, "COALESCE(") {
			cols[i] = "COALESCE(" + alias + "." + strings.TrimPrefix(c, "COALESCE(")
		} else {
			cols[i] = alias + "." + c
		}
	}
	return strings.Join(cols, ", ")
}

func scoreFor(n *NGO) int {
	return enrich.Score(enrich.ScoreInput{
		Name:           n.Name,
		Mission:        n.Mission,
		Description:    n.Description,
		Email:          n.Email,
		Phone:          n.Phone,
		Website:        n.Website,
		Address:        n.Address,
		City:           n.City,
		State:          n.State,
		RegistrationNo: n.RegistrationNo,
		Verified:       n.Verified,
	})
}
