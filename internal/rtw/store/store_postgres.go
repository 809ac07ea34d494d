package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/sentinel"
	txcontext "rtwgate/pkg/platform/tx"
)

const checkColumns = `id, tenant_id, employee_id, staff_name, document_type, document_number,
	nationality, visa_type, visa_expiry, share_code, share_code_verified, share_code_verified_at,
	verification_method, verification_details, check_date, next_check_date, evidence_path, notes,
	status, requires_followup, followup_reason, warnings, created_by, created_at`

// PostgresStore persists checks in the rtw_checks table. Writes join the
// transaction carried in ctx so the check and its audit outbox row commit
// together.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, check *models.Check) error {
	var details []byte
	if check.VerificationDetails != nil {
		var err error
		if details, err = json.Marshal(check.VerificationDetails); err != nil {
			return fmt.Errorf("marshal verification details: %w", err)
		}
	}
	var employeeID any
	if check.EmployeeID != nil {
		employeeID = check.EmployeeID.String()
	}
	warnings := check.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	query := `INSERT INTO rtw_checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		check.ID.String(),
		check.TenantID.String(),
		employeeID,
		check.StaffName,
		string(check.DocumentType),
		nullString(check.DocumentNumber),
		nullString(check.Nationality),
		nullString(check.VisaType),
		check.VisaExpiry,
		nullString(check.ShareCode),
		check.ShareCodeVerified,
		check.ShareCodeVerifiedAt,
		string(check.VerificationMethod),
		details,
		check.CheckDate,
		check.NextCheckDate,
		nullString(check.EvidencePath),
		nullString(check.Notes),
		string(check.Status),
		check.RequiresFollowup,
		nullString(check.FollowupReason),
		pq.Array(warnings),
		check.CreatedBy.String(),
		check.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert rtw check: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, checkID id.CheckID) (*models.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM rtw_checks WHERE tenant_id = $1 AND id = $2`
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, tenantID.String(), checkID.String())
	check, err := scanCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rtw check: %w", err)
	}
	return check, nil
}

func (s *PostgresStore) ListBySubject(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*models.Check, error) {
	return s.list(ctx, `WHERE tenant_id = $1 AND employee_id = $2 ORDER BY check_date DESC, created_at DESC`,
		tenantID.String(), employeeID.String())
}

func (s *PostgresStore) ListDueBefore(ctx context.Context, tenantID id.TenantID, cutoff eligibility.Date) ([]*models.Check, error) {
	return s.list(ctx, `WHERE tenant_id = $1 AND next_check_date <= $2 ORDER BY next_check_date ASC`,
		tenantID.String(), cutoff)
}

func (s *PostgresStore) ListRequiringFollowup(ctx context.Context, tenantID id.TenantID) ([]*models.Check, error) {
	return s.list(ctx, `WHERE tenant_id = $1 AND requires_followup ORDER BY next_check_date ASC NULLS LAST`,
		tenantID.String())
}

func (s *PostgresStore) ListByDocumentType(ctx context.Context, tenantID id.TenantID, documentType eligibility.DocumentType) ([]*models.Check, error) {
	return s.list(ctx, `WHERE tenant_id = $1 AND document_type = $2 ORDER BY check_date DESC, created_at DESC`,
		tenantID.String(), string(documentType))
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Check, error) {
	return s.list(ctx, `WHERE tenant_id = $1 ORDER BY check_date DESC, created_at DESC`, tenantID.String())
}

func (s *PostgresStore) list(ctx context.Context, where string, args ...any) ([]*models.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM rtw_checks ` + where
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rtw checks: %w", err)
	}
	defer rows.Close()

	checks := make([]*models.Check, 0)
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rtw check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rtw checks: %w", err)
	}
	return checks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheck(row rowScanner) (*models.Check, error) {
	var (
		c              models.Check
		checkID        uuid.UUID
		tenantID       uuid.UUID
		employeeID     uuid.NullUUID
		createdBy      uuid.UUID
		documentType   string
		documentNumber sql.NullString
		nationality    sql.NullString
		visaType       sql.NullString
		shareCode      sql.NullString
		method         string
		details        []byte
		evidencePath   sql.NullString
		notes          sql.NullString
		status         string
		followupReason sql.NullString
		warnings       pq.StringArray
	)
	err := row.Scan(
		&checkID, &tenantID, &employeeID, &c.StaffName, &documentType, &documentNumber,
		&nationality, &visaType, &c.VisaExpiry, &shareCode, &c.ShareCodeVerified, &c.ShareCodeVerifiedAt,
		&method, &details, &c.CheckDate, &c.NextCheckDate, &evidencePath, &notes,
		&status, &c.RequiresFollowup, &followupReason, &warnings, &createdBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID = id.CheckID(checkID)
	c.TenantID = id.TenantID(tenantID)
	if employeeID.Valid {
		e := id.EmployeeID(employeeID.UUID)
		c.EmployeeID = &e
	}
	c.CreatedBy = id.UserID(createdBy)
	c.DocumentType = eligibility.DocumentType(documentType)
	c.DocumentNumber = documentNumber.String
	c.Nationality = nationality.String
	c.VisaType = visaType.String
	c.ShareCode = shareCode.String
	c.VerificationMethod = models.VerificationMethod(method)
	c.EvidencePath = evidencePath.String
	c.Notes = notes.String
	c.Status = models.Status(status)
	c.FollowupReason = followupReason.String
	c.Warnings = []string(warnings)
	if c.Warnings == nil {
		c.Warnings = []string{}
	}
	if c.ShareCodeVerifiedAt != nil {
		t := c.ShareCodeVerifiedAt.UTC()
		c.ShareCodeVerifiedAt = &t
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if len(details) > 0 {
		var d verification.Details
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("decode verification details: %w", err)
		}
		c.VerificationDetails = &d
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
