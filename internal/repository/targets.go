package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

const targetSelectColumns = `
	id, campaign_id, name, target_type, organization, title_role, contacts, social_accounts,
	vulnerability_score, vulnerability_factors, notes, created_at, version
`

func scanTarget(target *domain.Target, scan func(dst ...any) error) error {
	var contacts, socialAccounts, vulnerabilityFactors []byte

	dst := []any{
		&target.ID, &target.CampaignID, &target.Name, &target.TargetType,
		&target.Organization, &target.TitleRole, &contacts, &socialAccounts,
		&target.VulnerabilityScore, &vulnerabilityFactors, &target.Notes,
		&target.CreatedAt, &target.Version,
	}
	if err := scan(dst...); err != nil {
		return err
	}

	if err := unmarshalJSONB(contacts, &target.Contacts); err != nil {
		return err
	}
	if err := unmarshalJSONB(socialAccounts, &target.SocialAccounts); err != nil {
		return err
	}
	if err := unmarshalJSONB(vulnerabilityFactors, &target.VulnerabilityFactors); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTargetByID(id int64) (*domain.Target, error) {
	query := `
		SELECT ` + targetSelectColumns + `
		FROM targets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	target := &domain.Target{}
	if err := scanTarget(target, r.dbpool.QueryRowContext(ctx, query, id).Scan); err != nil {
		return nil, err
	}

	return target, nil
}

func (r *Repository) GetTargetsByCampaignID(campaignID int64) ([]*domain.Target, error) {
	query := `
		SELECT ` + targetSelectColumns + `
		FROM targets WHERE campaign_id = $1
		ORDER BY vulnerability_score DESC, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]*domain.Target, 0)
	for rows.Next() {
		target := &domain.Target{}
		if err := scanTarget(target, rows.Scan); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

func (r *Repository) CreateTarget(target *domain.Target) error {
	contacts, err := marshalJSONB(target.Contacts)
	if err != nil {
		return err
	}
	socialAccounts, err := marshalJSONB(target.SocialAccounts)
	if err != nil {
		return err
	}
	vulnerabilityFactors, err := marshalJSONB(target.VulnerabilityFactors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO targets (campaign_id, name, target_type, organization, title_role, contacts, social_accounts, vulnerability_score, vulnerability_factors, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		target.CampaignID, target.Name, target.TargetType, target.Organization, target.TitleRole,
		contacts, socialAccounts, target.VulnerabilityScore, vulnerabilityFactors, target.Notes,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&target.ID, &target.CreatedAt, &target.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTarget(target *domain.Target) error {
	contacts, err := marshalJSONB(target.Contacts)
	if err != nil {
		return err
	}
	socialAccounts, err := marshalJSONB(target.SocialAccounts)
	if err != nil {
		return err
	}
	vulnerabilityFactors, err := marshalJSONB(target.VulnerabilityFactors)
	if err != nil {
		return err
	}

	query := `
		UPDATE targets
		SET
			name = $1,
			target_type = $2,
			organization = $3,
			title_role = $4,
			contacts = $5,
			social_accounts = $6,
			vulnerability_score = $7,
			vulnerability_factors = $8,
			notes = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		target.Name, target.TargetType, target.Organization, target.TitleRole,
		contacts, socialAccounts, target.VulnerabilityScore, vulnerabilityFactors,
		target.Notes, target.ID, target.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&target.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTarget(id int64) error {
	query := `
		DELETE FROM targets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
