package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

const responseColumns = `r.id, r.campaign_id, r.cedula, r.email, r.consent_name, r.consent_doc, r.consent_accepted,
	r.form_type, r.ficha, r.intralaboral, r.extralaboral, r.estres, r.results, r.created_at`

// VerifyCedula implements the SurveyStore interface.
func (s *SurveyStoreImpl) VerifyCedula(ctx context.Context, campaignID, cedula string) (bool, error) {
	cedula = strings.TrimSpace(cedula)
	if campaignID == "" || cedula == "" {
		return false, fmt.Errorf("%w: campaignId and cedula are required", schema.ErrInvalidInput)
	}
	if s.disabled() {
		return false, nil
	}
	q := s.query(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE campaign_id = ? AND cedula = ?`, s.table(responsesTable)))
	var n int
	if err := s.db.QueryRowContext(ctx, q, campaignID, cedula).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to verify cedula: %w", err)
	}
	return n > 0, nil
}

// SubmitResponse implements the SurveyStore interface.
func (s *SurveyStoreImpl) SubmitResponse(ctx context.Context, rec schema.ResponseRecord) error {
	if s.disabled() {
		return nil
	}

	campaign, err := s.getCampaign(ctx, rec.CampaignID)
	if err != nil {
		return err
	}
	if !campaign.IsActive {
		return schema.ErrCampaignInactive
	}
	done, err := s.VerifyCedula(ctx, rec.CampaignID, rec.Cedula)
	if err != nil {
		return err
	}
	if done {
		return schema.ErrAlreadySubmitted
	}

	columns := make([]string, 0, 5)
	for _, v := range []any{rec.Ficha, rec.Intralaboral, rec.Extralaboral, rec.Estres, rec.Results} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		columns = append(columns, string(data))
	}

	q := s.query(fmt.Sprintf(`INSERT INTO %s (id, campaign_id, cedula, email, consent_name, consent_doc, consent_accepted,
		form_type, ficha, intralaboral, extralaboral, estres, results, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table(responsesTable)))
	_, err = s.db.ExecContext(ctx, q,
		rec.ID, rec.CampaignID, rec.Cedula, rec.Email, rec.ConsentName, rec.ConsentDoc, rec.ConsentAccepted,
		string(rec.FormType), columns[0], columns[1], columns[2], columns[3], columns[4],
		formatTime(rec.CreatedAt, s.backend))
	if err != nil {
		if isUniqueViolation(err) {
			return schema.ErrAlreadySubmitted
		}
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// scanResponse reads one row selected with responseColumns plus any extra targets.
// A row whose JSON columns cannot be decoded is reported and skipped.
func scanResponse(rows *sql.Rows, extra ...any) (schema.ResponseRecord, bool, error) {
	var rec schema.ResponseRecord
	var form string
	var fichaJSON, intraJSON, extraJSON, estresJSON, resultsJSON string
	var created dbTime
	targets := []any{
		&rec.ID, &rec.CampaignID, &rec.Cedula, &rec.Email, &rec.ConsentName, &rec.ConsentDoc, &rec.ConsentAccepted,
		&form, &fichaJSON, &intraJSON, &extraJSON, &estresJSON, &resultsJSON, &created,
	}
	if err := rows.Scan(append(targets, extra...)...); err != nil {
		return rec, false, fmt.Errorf("failed to scan response: %w", err)
	}
	rec.FormType = schema.FormType(form)
	rec.CreatedAt = created.Time

	decode := []struct {
		raw string
		dst any
	}{
		{fichaJSON, &rec.Ficha},
		{intraJSON, &rec.Intralaboral},
		{extraJSON, &rec.Extralaboral},
		{estresJSON, &rec.Estres},
		{resultsJSON, &rec.Results},
	}
	for _, d := range decode {
		if d.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(d.raw), d.dst); err != nil {
			contract.LogWarn("Skipping response "+rec.ID, err)
			return rec, false, nil
		}
	}
	return rec, true, nil
}

// LoadCampaignData implements the SurveyStore interface.
func (s *SurveyStoreImpl) LoadCampaignData(ctx context.Context, campaignID string) (*schema.CampaignData, error) {
	if s.disabled() {
		return nil, schema.ErrCampaignNotFound
	}
	campaign, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	company, err := s.GetCompany(ctx, campaign.CompanyID)
	if err != nil {
		return nil, err
	}

	q := s.query(fmt.Sprintf(`SELECT %s FROM %s r WHERE r.campaign_id = ? ORDER BY r.created_at, r.id`, responseColumns, s.table(responsesTable)))
	rows, err := s.db.QueryContext(ctx, q, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	data := &schema.CampaignData{Campaign: campaign, Company: company}
	for rows.Next() {
		rec, ok, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			data.Responses = append(data.Responses, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return data, nil
}

// ExportResponses implements the SurveyStore interface.
func (s *SurveyStoreImpl) ExportResponses(ctx context.Context, campaignID string) ([]schema.ResponseExportRow, error) {
	if s.disabled() {
		return nil, nil
	}
	q := fmt.Sprintf(`SELECT %s, e.name, c.name FROM %s r
		JOIN %s c ON c.id = r.campaign_id
		JOIN %s e ON e.id = c.company_id`,
		responseColumns, s.table(responsesTable), s.table(campaignsTable), s.table(companiesTable))
	var args []any
	if campaignID != "" {
		q += ` WHERE r.campaign_id = ?`
		args = append(args, campaignID)
	}
	q = s.query(q + ` ORDER BY r.created_at DESC, r.id`)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ResponseExportRow
	for rows.Next() {
		var row schema.ResponseExportRow
		rec, ok, err := scanResponse(rows, &row.EmpresaNombre, &row.CampanaNombre)
		if err != nil {
			return nil, err
		}
		if ok {
			row.ResponseRecord = rec
			out = append(out, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return out, nil
}

// GetStatus returns status information about the survey store.
func (s *SurveyStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	for _, table := range storeTables {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalResponses = int(status.TableSizes[responsesTable])
	if status.TotalResponses == 0 {
		return status, nil
	}

	var newest, oldest dbTime
	q := fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", s.table(responsesTable))
	if err := s.db.QueryRow(q).Scan(&newest, &oldest); err != nil {
		return status, fmt.Errorf("failed to get response times: %w", err)
	}
	status.LastResponseTime = newest.Time
	status.OldestResponseTime = oldest.Time
	return status, nil
}
