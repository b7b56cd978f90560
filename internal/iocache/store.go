package iocache

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

// tokenBytes is the entropy of a campaign access token before hex encoding.
const tokenBytes = 16

// SurveyStoreImpl handles durable survey storage using various database backends.
type SurveyStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

var _ contract.SurveyStore = &SurveyStoreImpl{} // Compile-time check

// NewSurveyStore initializes and returns a new SurveyStore based on the backend type.
func NewSurveyStore(backend schema.DatabaseBackend, connStr string) (*SurveyStoreImpl, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &SurveyStoreImpl{backend: backend, now: time.Now}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := createSurveyTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create survey tables: %w", err)
	}
	return &SurveyStoreImpl{db: db, backend: backend, now: time.Now}, nil
}

func (s *SurveyStoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

func (s *SurveyStoreImpl) table(name string) string {
	return quoteTableName(name, s.backend)
}

func (s *SurveyStoreImpl) query(q string) string {
	return rebind(s.backend, q)
}

// newToken returns a random hex campaign token.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateCompany implements the SurveyStore interface.
func (s *SurveyStoreImpl) CreateCompany(ctx context.Context, name, nit string) (schema.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return schema.Company{}, fmt.Errorf("%w: company name is required", schema.ErrInvalidInput)
	}
	company := schema.Company{
		ID:        uuid.NewString(),
		Name:      name,
		Nit:       strings.TrimSpace(nit),
		CreatedAt: s.now().UTC(),
	}
	if s.disabled() {
		return company, nil
	}

	q := s.query(fmt.Sprintf(`INSERT INTO %s (id, name, nit, created_at) VALUES (?, ?, ?, ?)`, s.table(companiesTable)))
	if _, err := s.db.ExecContext(ctx, q, company.ID, company.Name, company.Nit, formatTime(company.CreatedAt, s.backend)); err != nil {
		return schema.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany implements the SurveyStore interface.
func (s *SurveyStoreImpl) GetCompany(ctx context.Context, id string) (schema.Company, error) {
	if s.disabled() {
		return schema.Company{}, schema.ErrCompanyNotFound
	}
	q := s.query(fmt.Sprintf(`SELECT id, name, nit, created_at FROM %s WHERE id = ?`, s.table(companiesTable)))
	var c schema.Company
	var created dbTime
	err := s.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Nit, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Company{}, schema.ErrCompanyNotFound
	}
	if err != nil {
		return schema.Company{}, fmt.Errorf("failed to load company: %w", err)
	}
	c.CreatedAt = created.Time
	return c, nil
}

// ListCompanies implements the SurveyStore interface.
func (s *SurveyStoreImpl) ListCompanies(ctx context.Context) ([]schema.Company, error) {
	if s.disabled() {
		return nil, nil
	}
	q := fmt.Sprintf(`SELECT id, name, nit, created_at FROM %s ORDER BY name, created_at`, s.table(companiesTable))
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.Company
	for rows.Next() {
		var c schema.Company
		var created dbTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Nit, &created); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.CreatedAt = created.Time
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return out, nil
}

// CreateCampaign implements the SurveyStore interface.
func (s *SurveyStoreImpl) CreateCampaign(ctx context.Context, companyID, name string) (schema.Campaign, error) {
	name = strings.TrimSpace(name)
	if companyID == "" || name == "" {
		return schema.Campaign{}, fmt.Errorf("%w: company and campaign name are required", schema.ErrInvalidInput)
	}
	token, err := newToken()
	if err != nil {
		return schema.Campaign{}, err
	}
	campaign := schema.Campaign{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      name,
		Token:     token,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if s.disabled() {
		return campaign, nil
	}

	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return schema.Campaign{}, err
	}
	q := s.query(fmt.Sprintf(`INSERT INTO %s (id, company_id, name, token, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)`, s.table(campaignsTable)))
	if _, err := s.db.ExecContext(ctx, q, campaign.ID, campaign.CompanyID, campaign.Name, campaign.Token, campaign.IsActive, formatTime(campaign.CreatedAt, s.backend)); err != nil {
		return schema.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// ToggleCampaign implements the SurveyStore interface.
func (s *SurveyStoreImpl) ToggleCampaign(ctx context.Context, id string, active bool) error {
	if s.disabled() {
		return schema.ErrCampaignNotFound
	}
	if _, err := s.getCampaign(ctx, id); err != nil {
		return err
	}
	q := s.query(fmt.Sprintf(`UPDATE %s SET is_active = ? WHERE id = ?`, s.table(campaignsTable)))
	if _, err := s.db.ExecContext(ctx, q, active, id); err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

const campaignColumns = `id, company_id, name, token, is_active, created_at`

func scanCampaign(row interface{ Scan(...any) error }) (schema.Campaign, error) {
	var c schema.Campaign
	var created dbTime
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Token, &c.IsActive, &created); err != nil {
		return schema.Campaign{}, err
	}
	c.CreatedAt = created.Time
	return c, nil
}

func (s *SurveyStoreImpl) getCampaign(ctx context.Context, id string) (schema.Campaign, error) {
	q := s.query(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, campaignColumns, s.table(campaignsTable)))
	c, err := scanCampaign(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Campaign{}, schema.ErrCampaignNotFound
	}
	if err != nil {
		return schema.Campaign{}, fmt.Errorf("failed to load campaign: %w", err)
	}
	return c, nil
}

// ListCampaigns implements the SurveyStore interface.
func (s *SurveyStoreImpl) ListCampaigns(ctx context.Context, companyID string) ([]schema.Campaign, error) {
	if s.disabled() {
		return nil, nil
	}
	q := fmt.Sprintf(`SELECT %s FROM %s`, campaignColumns, s.table(campaignsTable))
	var args []any
	if companyID != "" {
		q += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	q = s.query(q + ` ORDER BY created_at DESC`)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}
	return out, nil
}

// ValidateToken implements the SurveyStore interface.
func (s *SurveyStoreImpl) ValidateToken(ctx context.Context, token string) (schema.CampaignSummary, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return schema.CampaignSummary{}, fmt.Errorf("%w: token is required", schema.ErrInvalidInput)
	}
	if s.disabled() {
		return schema.CampaignSummary{}, schema.ErrInvalidToken
	}

	q := s.query(fmt.Sprintf(`SELECT c.id, c.name, c.is_active, e.name FROM %s c JOIN %s e ON e.id = c.company_id WHERE c.token = ?`,
		s.table(campaignsTable), s.table(companiesTable)))
	var summary schema.CampaignSummary
	var active bool
	err := s.db.QueryRowContext(ctx, q, token).Scan(&summary.ID, &summary.Name, &active, &summary.Empresa)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.CampaignSummary{}, schema.ErrInvalidToken
	}
	if err != nil {
		return schema.CampaignSummary{}, fmt.Errorf("failed to validate token: %w", err)
	}
	if !active {
		return schema.CampaignSummary{}, schema.ErrCampaignInactive
	}
	return summary, nil
}

// Close closes the underlying DB connection.
func (s *SurveyStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
