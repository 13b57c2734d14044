package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgRepo is the PostgreSQL backing store. Scalar demographics live in
// typed columns; the nested structures (address, emergency contact,
// medical info, insurance, documents) are stored as JSONB since they are
// read and written as a unit.
type pgRepo struct {
	pool *pgxpool.Pool
}

// NewPGRepo creates a PostgreSQL-backed patient repository.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const patientCols = `id, first_name, last_name, date_of_birth, gender, email, phone,
	address, emergency_contact, medical_info, insurance, documents,
	created_at, updated_at`

func (r *pgRepo) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY created_at, id`)
	if err != nil {
		return nil, connectionErr("list patients", err)
	}
	defer rows.Close()

	out := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, connectionErr("list patients", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, connectionErr("list patients", err)
	}
	return out, nil
}

func (r *pgRepo) Get(ctx context.Context, id string) (*Patient, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id)
	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get patient %s: %w", id, ErrNotFound)
		}
		return nil, connectionErr("get patient", err)
	}
	return p, nil
}

func (r *pgRepo) Create(ctx context.Context, p *Patient) (*Patient, error) {
	cp := p.Clone()
	cp.ID = uuid.NewString()
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	addr, ec, mi, ins, docs, err := marshalNested(cp)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO patient (
			id, first_name, last_name, date_of_birth, gender, email, phone,
			address, emergency_contact, medical_info, insurance, documents,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		cp.ID, cp.FirstName, cp.LastName, cp.DateOfBirth.Time(), cp.Gender, cp.Email, cp.Phone,
		addr, ec, mi, ins, docs,
		cp.CreatedAt, cp.UpdatedAt,
	)
	if err != nil {
		return nil, connectionErr("create patient", err)
	}
	return cp, nil
}

func (r *pgRepo) Update(ctx context.Context, id string, p *Patient) (*Patient, error) {
	cp := p.Clone()
	cp.ID = id
	cp.UpdatedAt = time.Now().UTC()

	addr, ec, mi, ins, docs, err := marshalNested(cp)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE patient SET
			first_name = $2, last_name = $3, date_of_birth = $4, gender = $5,
			email = $6, phone = $7, address = $8, emergency_contact = $9,
			medical_info = $10, insurance = $11, documents = $12, updated_at = $13
		WHERE id = $1
		RETURNING created_at`,
		id, cp.FirstName, cp.LastName, cp.DateOfBirth.Time(), cp.Gender,
		cp.Email, cp.Phone, addr, ec, mi, ins, docs, cp.UpdatedAt,
	)
	if err := row.Scan(&cp.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update patient %s: %w", id, ErrNotFound)
		}
		return nil, connectionErr("update patient", err)
	}
	return cp, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return connectionErr("delete patient", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete patient %s: %w", id, ErrNotFound)
	}
	return nil
}

func marshalNested(p *Patient) (addr, ec, mi, ins, docs []byte, err error) {
	if addr, err = json.Marshal(p.Address); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode address: %w", err)
	}
	if ec, err = json.Marshal(p.EmergencyContact); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode emergency contact: %w", err)
	}
	if mi, err = json.Marshal(p.MedicalInfo); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode medical info: %w", err)
	}
	if ins, err = json.Marshal(p.Insurance); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode insurance: %w", err)
	}
	if docs, err = json.Marshal(p.Documents); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode documents: %w", err)
	}
	return addr, ec, mi, ins, docs, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var (
		p    Patient
		dob  time.Time
		addr, ec, mi, ins, docs []byte
	)
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &dob, &p.Gender, &p.Email, &p.Phone,
		&addr, &ec, &mi, &ins, &docs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.DateOfBirth = DateOf(dob)

	if err := json.Unmarshal(addr, &p.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if err := json.Unmarshal(ec, &p.EmergencyContact); err != nil {
		return nil, fmt.Errorf("decode emergency contact: %w", err)
	}
	if err := json.Unmarshal(mi, &p.MedicalInfo); err != nil {
		return nil, fmt.Errorf("decode medical info: %w", err)
	}
	if err := json.Unmarshal(ins, &p.Insurance); err != nil {
		return nil, fmt.Errorf("decode insurance: %w", err)
	}
	if err := json.Unmarshal(docs, &p.Documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return &p, nil
}
