package qtype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQL-backed stores. Scoring rules and validation schemas are persisted as
// JSON columns so tier ordering and absent-vs-cleared override fields
// survive round-trips; nullable columns keep "not overridden" distinct from
// an explicit empty value.

type SQLDefinitionStore struct {
	db *sql.DB
}

func NewSQLDefinitionStore(db *sql.DB) *SQLDefinitionStore {
	return &SQLDefinitionStore{db: db}
}

func (s *SQLDefinitionStore) ListAll(ctx context.Context) ([]QuestionTypeDefinition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key,title,description,ui_template,validation_json,scoring_json,is_system,is_active FROM question_types`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []QuestionTypeDefinition
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLDefinitionStore) GetByKey(ctx context.Context, key string) (QuestionTypeDefinition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key,title,description,ui_template,validation_json,scoring_json,is_system,is_active FROM question_types WHERE key=$1`, key)
	d, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return QuestionTypeDefinition{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return d, err
}

func (s *SQLDefinitionStore) Upsert(ctx context.Context, def QuestionTypeDefinition) error {
	sj, err := json.Marshal(def.ScoringRule)
	if err != nil {
		return err
	}
	var vj sql.NullString
	if def.ValidationSchema != nil {
		b, err := json.Marshal(def.ValidationSchema)
		if err != nil {
			return err
		}
		vj = sql.NullString{String: string(b), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_types (key,title,description,ui_template,validation_json,scoring_json,is_system,is_active,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (key) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description,
		   validation_json=EXCLUDED.validation_json, scoring_json=EXCLUDED.scoring_json,
		   is_active=EXCLUDED.is_active, updated_at=EXCLUDED.updated_at`,
		def.Key, def.Title, def.Description, string(def.UITemplate), vj, string(sj),
		def.IsSystem, def.IsActive, time.Now().Unix())
	return err
}

func (s *SQLDefinitionStore) SoftDisable(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE question_types SET is_active=$1, updated_at=$2 WHERE key=$3`,
		false, time.Now().Unix(), key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanDefinition(row rowScanner) (QuestionTypeDefinition, error) {
	var d QuestionTypeDefinition
	var tpl string
	var vj sql.NullString
	var sj string
	if err := row.Scan(&d.Key, &d.Title, &d.Description, &tpl, &vj, &sj, &d.IsSystem, &d.IsActive); err != nil {
		return QuestionTypeDefinition{}, err
	}
	d.UITemplate = UITemplate(tpl)
	if vj.Valid {
		var vs ValidationSchema
		if err := json.Unmarshal([]byte(vj.String), &vs); err != nil {
			return QuestionTypeDefinition{}, err
		}
		d.ValidationSchema = &vs
	}
	if err := json.Unmarshal([]byte(sj), &d.ScoringRule); err != nil {
		return QuestionTypeDefinition{}, err
	}
	return d, nil
}

type SQLOverrideStore struct {
	db *sql.DB
}

func NewSQLOverrideStore(db *sql.DB) *SQLOverrideStore {
	return &SQLOverrideStore{db: db}
}

func (s *SQLOverrideStore) ListForTest(ctx context.Context, testID string) ([]TestQuestionTypeOverride, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT test_id,type_key,title_override,scoring_json,is_disabled FROM test_type_overrides WHERE test_id=$1`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TestQuestionTypeOverride
	for rows.Next() {
		var ov TestQuestionTypeOverride
		var title, sj sql.NullString
		if err := rows.Scan(&ov.TestID, &ov.TypeKey, &title, &sj, &ov.IsDisabled); err != nil {
			return nil, err
		}
		if title.Valid {
			t := title.String
			ov.TitleOverride = &t
		}
		if sj.Valid {
			var rule ScoringRule
			if err := json.Unmarshal([]byte(sj.String), &rule); err != nil {
				return nil, err
			}
			ov.ScoringRuleOverride = &rule
		}
		out = append(out, ov)
	}
	return out, rows.Err()
}

func (s *SQLOverrideStore) Upsert(ctx context.Context, ov TestQuestionTypeOverride) error {
	var title sql.NullString
	if ov.TitleOverride != nil {
		title = sql.NullString{String: *ov.TitleOverride, Valid: true}
	}
	var sj sql.NullString
	if ov.ScoringRuleOverride != nil {
		b, err := json.Marshal(ov.ScoringRuleOverride)
		if err != nil {
			return err
		}
		sj = sql.NullString{String: string(b), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO test_type_overrides (test_id,type_key,title_override,scoring_json,is_disabled,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (test_id,type_key) DO UPDATE SET title_override=EXCLUDED.title_override,
		   scoring_json=EXCLUDED.scoring_json, is_disabled=EXCLUDED.is_disabled, updated_at=EXCLUDED.updated_at`,
		ov.TestID, ov.TypeKey, title, sj, ov.IsDisabled, time.Now().Unix())
	return err
}

func (s *SQLOverrideStore) Delete(ctx context.Context, testID, typeKey string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM test_type_overrides WHERE test_id=$1 AND type_key=$2`, testID, typeKey)
	return err
}
