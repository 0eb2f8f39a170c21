package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func (r *Repository) GetParticipantByID(id int64) (*domain.Participant, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, skills, availability_minutes_per_week,
			actions_completed, actions_verified, total_impact_score, is_active, joined_at, last_active, version
		FROM participants WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	participant := &domain.Participant{
		ID: id,
	}

	var skills []byte
	dst := []any{
		&participant.Username, &participant.PasswordHash, &participant.FullName, &participant.Email,
		&participant.Role, &skills, &participant.AvailabilityMinutesPerWeek,
		&participant.ActionsCompleted, &participant.ActionsVerified, &participant.TotalImpactScore,
		&participant.IsActive, &participant.JoinedAt, &participant.LastActive, &participant.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(skills, &participant.Skills); err != nil {
		return nil, err
	}

	return participant, nil
}

func (r *Repository) GetParticipantByUsername(username string) (*domain.Participant, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, skills, availability_minutes_per_week,
			actions_completed, actions_verified, total_impact_score, is_active, joined_at, last_active, version
		FROM participants WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	participant := &domain.Participant{
		Username: username,
	}

	var skills []byte
	dst := []any{
		&participant.ID, &participant.PasswordHash, &participant.FullName, &participant.Email,
		&participant.Role, &skills, &participant.AvailabilityMinutesPerWeek,
		&participant.ActionsCompleted, &participant.ActionsVerified, &participant.TotalImpactScore,
		&participant.IsActive, &participant.JoinedAt, &participant.LastActive, &participant.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(skills, &participant.Skills); err != nil {
		return nil, err
	}

	return participant, nil
}

func (r *Repository) GetAllParticipants() ([]*domain.Participant, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, skills, availability_minutes_per_week,
			actions_completed, actions_verified, total_impact_score, is_active, joined_at, last_active, version
		FROM participants
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		participant := &domain.Participant{}
		var skills []byte
		dst := []any{
			&participant.ID, &participant.Username, &participant.PasswordHash, &participant.FullName,
			&participant.Email, &participant.Role, &skills, &participant.AvailabilityMinutesPerWeek,
			&participant.ActionsCompleted, &participant.ActionsVerified, &participant.TotalImpactScore,
			&participant.IsActive, &participant.JoinedAt, &participant.LastActive, &participant.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := unmarshalJSONB(skills, &participant.Skills); err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *Repository) CreateParticipant(participant *domain.Participant) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO participants (username, password_hash, full_name, email, role, skills, availability_minutes_per_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, joined_at, version
	`

	skills, err := marshalJSONB(participant.Skills)
	if err != nil {
		return err
	}

	args := []any{
		participant.Username, participant.PasswordHash, participant.FullName, participant.Email,
		participant.Role, skills, participant.AvailabilityMinutesPerWeek,
	}
	dst := []any{&participant.ID, &participant.IsActive, &participant.JoinedAt, &participant.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateParticipant(participant *domain.Participant) error {
	query := `
		UPDATE participants
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			skills = $4,
			availability_minutes_per_week = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING username, full_name, joined_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	skills, err := marshalJSONB(participant.Skills)
	if err != nil {
		return err
	}

	args := []any{
		participant.PasswordHash, participant.Email, participant.Role, skills,
		participant.AvailabilityMinutesPerWeek, participant.IsActive, participant.ID, participant.Version,
	}
	dst := []any{&participant.Username, &participant.FullName, &participant.JoinedAt, &participant.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteParticipant(id int64) error {
	query := `
		DELETE FROM participants WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM participants WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

// RecordActionCompleted 在志愿者完成一个行动后累加其统计数据
func (r *Repository) RecordActionCompleted(participantID int64, impactScore float64) error {
	query := `
		UPDATE participants
		SET
			actions_completed = actions_completed + 1,
			total_impact_score = total_impact_score + $1,
			last_active = NOW()
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, impactScore, participantID); err != nil {
		return err
	}

	return nil
}

// RecordActionVerified 在行动被核验后累加志愿者的核验数
func (r *Repository) RecordActionVerified(participantID int64) error {
	query := `
		UPDATE participants
		SET actions_verified = actions_verified + 1
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, participantID); err != nil {
		return err
	}

	return nil
}
