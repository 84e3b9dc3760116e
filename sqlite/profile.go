package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/labelmkr"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ labelmkr.ProfileService = (*ProfileService)(nil)

const profileColumns = `id, name, code_selector, code_source, code_attr,
	label_selector, label_source, label_attr, created_at, updated_at`

// ProfileService implements labelmkr.ProfileService using SQLite.
type ProfileService struct {
	db *DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *DB) *ProfileService {
	return &ProfileService{db: db}
}

// CreateProfile creates a new profile. Names are unique.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *labelmkr.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, profile.Name, ""); err != nil {
		return err
	}

	profile.ID = uuid.New().String()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	normalizeRules(&profile.Pairing)

	p := profile.Pairing
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, profile.ID, profile.Name,
		p.CodeLocator, string(p.CodeRule.Source), p.CodeRule.AttrName,
		p.LabelLocator, string(p.LabelRule.Source), p.LabelRule.AttrName,
		formatTime(profile.CreatedAt), formatTime(profile.UpdatedAt))

	return err
}

// FindProfileByID retrieves a profile by ID.
func (s *ProfileService) FindProfileByID(ctx context.Context, id string) (*labelmkr.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)

	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, labelmkr.Errorf(labelmkr.ENOTFOUND, "profile not found")
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// FindProfiles retrieves profiles matching the filter, ordered by name.
func (s *ProfileService) FindProfiles(ctx context.Context, filter labelmkr.ProfileFilter) ([]*labelmkr.Profile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + profileColumns + " FROM profiles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*labelmkr.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpdateProfile updates an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, upd labelmkr.ProfileUpdate) (*labelmkr.Profile, error) {
	profile, err := s.FindProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		profile.Name = *upd.Name
	}
	if upd.Pairing != nil {
		profile.Pairing = *upd.Pairing
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, profile.Name, id); err != nil {
		return nil, err
	}

	profile.UpdatedAt = time.Now().UTC()
	normalizeRules(&profile.Pairing)

	p := profile.Pairing
	_, err = s.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = ?, code_selector = ?, code_source = ?, code_attr = ?,
			label_selector = ?, label_source = ?, label_attr = ?, updated_at = ?
		WHERE id = ?
	`, profile.Name,
		p.CodeLocator, string(p.CodeRule.Source), p.CodeRule.AttrName,
		p.LabelLocator, string(p.LabelRule.Source), p.LabelRule.AttrName,
		formatTime(profile.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile permanently removes a profile. Its results are removed by
// the foreign key cascade.
func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return labelmkr.Errorf(labelmkr.ENOTFOUND, "profile not found")
	}

	return nil
}

// checkNameFree returns EINVALID if a profile other than exceptID already
// uses name.
func (s *ProfileService) checkNameFree(ctx context.Context, name, exceptID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM profiles WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if id != exceptID {
		return labelmkr.Errorf(labelmkr.EINVALID, "profile %q already exists", name)
	}
	return nil
}

// normalizeRules stores an empty source as text.
func normalizeRules(p *labelmkr.Pairing) {
	if p.CodeRule.Source == "" {
		p.CodeRule.Source = labelmkr.SourceText
	}
	if p.LabelRule.Source == "" {
		p.LabelRule.Source = labelmkr.SourceText
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*labelmkr.Profile, error) {
	var profile labelmkr.Profile
	var codeSource, labelSource string
	var createdAt, updatedAt string

	p := &profile.Pairing
	if err := row.Scan(&profile.ID, &profile.Name,
		&p.CodeLocator, &codeSource, &p.CodeRule.AttrName,
		&p.LabelLocator, &labelSource, &p.LabelRule.AttrName,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CodeRule.Source = labelmkr.Source(codeSource)
	p.LabelRule.Source = labelmkr.Source(labelSource)

	var err error
	if profile.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if profile.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &profile, nil
}
