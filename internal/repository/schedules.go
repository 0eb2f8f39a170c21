package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// ReplaceCampaignSchedule 用新生成的排期整体替换运动旧的排期
func (r *Repository) ReplaceCampaignSchedule(campaignID int64, scheduled []*domain.ScheduledAction) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM scheduled_actions WHERE campaign_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, campaignID); err != nil {
		return err
	}

	query = `
		INSERT INTO scheduled_actions (campaign_id, action_id, action_type, scheduled_start, scheduled_end, priority, batch_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, sa := range scheduled {
		args := []any{
			campaignID, sa.ActionID, sa.ActionType, sa.ScheduledStart, sa.ScheduledEnd,
			sa.Priority, sa.BatchID, sa.Notes,
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCampaignSchedule(campaignID int64) ([]*domain.ScheduledAction, error) {
	query := `
		SELECT action_id, action_type, scheduled_start, scheduled_end, priority, batch_id, notes
		FROM scheduled_actions
		WHERE campaign_id = $1
		ORDER BY scheduled_start, action_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scheduled := make([]*domain.ScheduledAction, 0)
	for rows.Next() {
		sa := &domain.ScheduledAction{}

		dst := []any{
			&sa.ActionID, &sa.ActionType, &sa.ScheduledStart, &sa.ScheduledEnd,
			&sa.Priority, &sa.BatchID, &sa.Notes,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		scheduled = append(scheduled, sa)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scheduled, nil
}
