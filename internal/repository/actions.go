package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

const actionSelectColumns = `
	id, campaign_id, action_type, title, description, template_name, template_vars,
	estimated_minutes, priority, status, deadline, assigned_to, completed_at,
	verification_url, impact_score, created_at, version
`

func scanActionDst(action *domain.Action, templateVars *[]byte) []any {
	return []any{
		&action.ID, &action.CampaignID, &action.ActionType, &action.Title, &action.Description,
		&action.TemplateName, templateVars, &action.EstimatedMinutes, &action.Priority,
		&action.Status, &action.Deadline, &action.AssignedTo, &action.CompletedAt,
		&action.VerificationURL, &action.ImpactScore, &action.CreatedAt, &action.Version,
	}
}

func (r *Repository) GetActionByID(id int64) (*domain.Action, error) {
	query := `
		SELECT ` + actionSelectColumns + `
		FROM actions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	action := &domain.Action{}

	var templateVars []byte
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(scanActionDst(action, &templateVars)...); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(templateVars, &action.TemplateVars); err != nil {
		return nil, err
	}

	return action, nil
}

type ActionFilter struct {
	CampaignID *int64
	Status     *domain.ActionStatus
	ActionType *domain.ActionType
	AssignedTo *int64
}

func (r *Repository) GetActions(filter ActionFilter) ([]*domain.Action, error) {
	query := `
		SELECT ` + actionSelectColumns + `
		FROM actions WHERE 1 = 1
	`

	args := []any{}
	if filter.CampaignID != nil {
		args = append(args, *filter.CampaignID)
		query += ` AND campaign_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.ActionType != nil {
		args = append(args, *filter.ActionType)
		query += ` AND action_type = $` + strconv.Itoa(len(args))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		query += ` AND assigned_to = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY priority, deadline NULLS LAST, id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := make([]*domain.Action, 0)
	for rows.Next() {
		action := &domain.Action{}

		var templateVars []byte
		if err := rows.Scan(scanActionDst(action, &templateVars)...); err != nil {
			return nil, err
		}
		if err := unmarshalJSONB(templateVars, &action.TemplateVars); err != nil {
			return nil, err
		}

		actions = append(actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return actions, nil
}

func (r *Repository) CreateActions(actions []*domain.Action) error {
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
		INSERT INTO actions (campaign_id, action_type, title, description, template_name, template_vars, estimated_minutes, priority, status, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	for _, action := range actions {
		templateVars, err := marshalJSONB(action.TemplateVars)
		if err != nil {
			return err
		}

		args := []any{
			action.CampaignID, action.ActionType, action.Title, action.Description,
			action.TemplateName, templateVars, action.EstimatedMinutes, action.Priority,
			action.Status, action.Deadline,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&action.ID, &action.CreatedAt, &action.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// ClaimAction 把行动认领给志愿者，只有 available 状态的行动才能被认领
func (r *Repository) ClaimAction(action *domain.Action, participantID int64) error {
	query := `
		UPDATE actions
		SET
			status = $1,
			assigned_to = $2,
			version = version + 1
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.ActionClaimed, participantID, action.ID, action.Version, domain.ActionAvailable}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&action.Version); err != nil {
		return err
	}

	action.Status = domain.ActionClaimed
	action.AssignedTo = &participantID

	return nil
}

// CompleteAction 把已认领的行动标记为完成，记录完成时间和凭证链接
func (r *Repository) CompleteAction(action *domain.Action, verificationURL *string, completedAt time.Time) error {
	query := `
		UPDATE actions
		SET
			status = $1,
			completed_at = $2,
			verification_url = $3,
			version = version + 1
		WHERE id = $4 AND version = $5 AND status IN ($6, $7)
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		domain.ActionCompleted, completedAt, verificationURL,
		action.ID, action.Version, domain.ActionClaimed, domain.ActionInProgress,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&action.Version); err != nil {
		return err
	}

	action.Status = domain.ActionCompleted
	action.CompletedAt = &completedAt
	action.VerificationURL = verificationURL

	return nil
}

// VerifyAction 由组织者核实完成的行动并记录影响力分数
func (r *Repository) VerifyAction(action *domain.Action, impactScore float64) error {
	query := `
		UPDATE actions
		SET
			status = $1,
			impact_score = $2,
			version = version + 1
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.ActionVerified, impactScore, action.ID, action.Version, domain.ActionCompleted}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&action.Version); err != nil {
		return err
	}

	action.Status = domain.ActionVerified
	action.ImpactScore = &impactScore

	return nil
}

// ExpireOverdueActions 把已过截止时间且未完成的行动批量标记为过期
func (r *Repository) ExpireOverdueActions(now time.Time) (int64, error) {
	query := `
		UPDATE actions
		SET
			status = $1,
			version = version + 1
		WHERE deadline < $2 AND status IN ($3, $4, $5)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.ActionExpired, now, domain.ActionAvailable, domain.ActionClaimed, domain.ActionInProgress}
	result, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) DeleteAction(id int64) error {
	query := `
		DELETE FROM actions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
