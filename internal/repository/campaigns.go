package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func scanCampaignRow(rows *sql.Rows) (*domain.Campaign, *domain.Phase, error) {
	campaign := &domain.Campaign{}

	var channels, tactics, winConditions []byte
	var phaseNumber sql.NullInt32
	var phaseName, phaseWinTrigger sql.NullString
	var phaseWeeks sql.NullInt32
	var phaseTactics []byte

	dst := []any{
		&campaign.ID, &campaign.Name, &campaign.Slug, &campaign.CampaignType,
		&campaign.TargetSummary, &campaign.Goal, &campaign.Status,
		&channels, &tactics, &winConditions,
		&campaign.StartDate, &campaign.Deadline, &campaign.CreatedAt, &campaign.Version,
		&phaseNumber, &phaseName, &phaseWeeks, &phaseTactics, &phaseWinTrigger,
	}
	if err := rows.Scan(dst...); err != nil {
		return nil, nil, err
	}

	if err := unmarshalJSONB(channels, &campaign.Channels); err != nil {
		return nil, nil, err
	}
	if err := unmarshalJSONB(tactics, &campaign.Tactics); err != nil {
		return nil, nil, err
	}
	if err := unmarshalJSONB(winConditions, &campaign.WinConditions); err != nil {
		return nil, nil, err
	}

	// 阶段编号为空说明这个运动还没有阶梯
	if !phaseNumber.Valid {
		return campaign, nil, nil
	}

	phase := &domain.Phase{
		PhaseNumber:   phaseNumber.Int32,
		Name:          phaseName.String,
		DurationWeeks: phaseWeeks.Int32,
		WinTrigger:    phaseWinTrigger.String,
	}
	if err := unmarshalJSONB(phaseTactics, &phase.Tactics); err != nil {
		return nil, nil, err
	}

	return campaign, phase, nil
}

const campaignSelectColumns = `
	c.id, c.name, c.slug, c.campaign_type, c.target_summary, c.goal, c.status,
	c.channels, c.tactics, c.win_conditions, c.start_date, c.deadline, c.created_at, c.version,
	cp.phase_number, cp.name, cp.duration_weeks, cp.tactics, cp.win_trigger
`

func (r *Repository) GetAllCampaigns() ([]*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + campaignSelectColumns + `
		FROM campaigns c
		LEFT JOIN campaign_phases cp ON c.id = cp.campaign_id
		ORDER BY c.id, cp.phase_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaignsMap := make(map[int64]*domain.Campaign)
	order := make([]int64, 0)

	for rows.Next() {
		campaign, phase, err := scanCampaignRow(rows)
		if err != nil {
			return nil, err
		}

		existing, exists := campaignsMap[campaign.ID]
		if !exists {
			campaign.Phases = make([]domain.Phase, 0)
			campaignsMap[campaign.ID] = campaign
			order = append(order, campaign.ID)
			existing = campaign
		}

		if phase != nil {
			existing.Phases = append(existing.Phases, *phase)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(order))
	for _, id := range order {
		campaigns = append(campaigns, campaignsMap[id])
	}

	return campaigns, nil
}

func (r *Repository) GetCampaignByID(id int64) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + campaignSelectColumns + `
		FROM campaigns c
		LEFT JOIN campaign_phases cp ON c.id = cp.campaign_id
		WHERE c.id = $1
		ORDER BY cp.phase_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result *domain.Campaign
	for rows.Next() {
		campaign, phase, err := scanCampaignRow(rows)
		if err != nil {
			return nil, err
		}

		if result == nil {
			campaign.Phases = make([]domain.Phase, 0)
			result = campaign
		}
		if phase != nil {
			result.Phases = append(result.Phases, *phase)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		return nil, sql.ErrNoRows
	}

	return result, nil
}

func (r *Repository) CreateCampaign(campaign *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	channels, err := marshalJSONB(campaign.Channels)
	if err != nil {
		return err
	}
	tactics, err := marshalJSONB(campaign.Tactics)
	if err != nil {
		return err
	}
	winConditions, err := marshalJSONB(campaign.WinConditions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO campaigns (name, slug, campaign_type, target_summary, goal, status, channels, tactics, win_conditions, start_date, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`
	args := []any{
		campaign.Name, campaign.Slug, campaign.CampaignType, campaign.TargetSummary, campaign.Goal,
		campaign.Status, channels, tactics, winConditions, campaign.StartDate, campaign.Deadline,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.Version); err != nil {
		return err
	}

	for i := range campaign.Phases {
		phaseTactics, err := marshalJSONB(campaign.Phases[i].Tactics)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO campaign_phases (campaign_id, phase_number, name, duration_weeks, tactics, win_trigger)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		params := []any{
			campaign.ID, campaign.Phases[i].PhaseNumber, campaign.Phases[i].Name,
			campaign.Phases[i].DurationWeeks, phaseTactics, campaign.Phases[i].WinTrigger,
		}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateCampaign 更新运动的基础字段，阶梯在创建后不允许修改
func (r *Repository) UpdateCampaign(campaign *domain.Campaign) error {
	query := `
		UPDATE campaigns
		SET
			name = $1,
			target_summary = $2,
			goal = $3,
			status = $4,
			start_date = $5,
			deadline = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		campaign.Name, campaign.TargetSummary, campaign.Goal, campaign.Status,
		campaign.StartDate, campaign.Deadline, campaign.ID, campaign.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&campaign.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCampaign(id int64) error {
	query := `
		DELETE FROM campaigns WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
