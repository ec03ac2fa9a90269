package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// InsertBeneficiary inserts a new beneficiary record
func (d *DB) InsertBeneficiary(ctx context.Context, b *model.Beneficiary) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO beneficiaries (id, national_id, first_name, last_name, birth_date,
			address, phone, emergency_contact, medical_notes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, b.ID, b.NationalID, b.FirstName, b.LastName, b.BirthDate,
		b.Address, b.Phone, b.EmergencyContact, b.MedicalNotes, b.Active, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "beneficiaries_national_id_key") {
			return &model.ValidationError{Field: "national_id", Reason: "already registered"}
		}
		return fmt.Errorf("failed to insert beneficiary: %w", err)
	}
	return nil
}

// GetBeneficiary retrieves a beneficiary by id
func (d *DB) GetBeneficiary(ctx context.Context, id string) (*model.Beneficiary, error) {
	var b model.Beneficiary
	err := d.pool.QueryRow(ctx, `
		SELECT id, national_id, first_name, last_name, birth_date,
			address, phone, emergency_contact, medical_notes, active, created_at
		FROM beneficiaries
		WHERE id = $1
	`, id).Scan(&b.ID, &b.NationalID, &b.FirstName, &b.LastName, &b.BirthDate,
		&b.Address, &b.Phone, &b.EmergencyContact, &b.MedicalNotes, &b.Active, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("beneficiary %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query beneficiary: %w", err)
	}
	return &b, nil
}

// ListBeneficiaries retrieves all active beneficiaries ordered by name
func (d *DB) ListBeneficiaries(ctx context.Context) ([]model.Beneficiary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, national_id, first_name, last_name, birth_date,
			address, phone, emergency_contact, medical_notes, active, created_at
		FROM beneficiaries
		WHERE active
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries: %w", err)
	}
	defer rows.Close()

	var beneficiaries []model.Beneficiary
	for rows.Next() {
		var b model.Beneficiary
		if err := rows.Scan(&b.ID, &b.NationalID, &b.FirstName, &b.LastName, &b.BirthDate,
			&b.Address, &b.Phone, &b.EmergencyContact, &b.MedicalNotes, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		beneficiaries = append(beneficiaries, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiaries: %w", err)
	}

	return beneficiaries, nil
}
