package classes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/dbx"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// SQLDB is the subset of *sql.DB used by PostgresRepository.
type SQLDB interface {
	dbx.DBTX
	dbx.TxBeginner
	PingContext(ctx context.Context) error
}

// PostgresRepository stores each class as one JSONB document in the
// classes table, files embedded under doc->'files'. Scalar columns id and
// pass_phrase mirror the document for indexed lookups.
type PostgresRepository struct {
	db SQLDB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db SQLDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func connErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrConnection, err)
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %w", common.ErrDeserializeFailed, err)
	}
	return v, nil
}

func encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrSerializeFailed, err)
	}
	return b, nil
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, connErr(err)
	}
	return ok, nil
}

// GetAllClasses projects the files array away before it leaves the server.
func (r *PostgresRepository) GetAllClasses(ctx context.Context) ([]models.ClassSummary, error) {
	query := `SELECT doc - 'files' FROM classes ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, connErr(err)
	}
	defer rows.Close()

	result := []models.ClassSummary{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, connErr(err)
		}
		s, err := decode[models.ClassSummary](raw)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, connErr(err)
	}
	return result, nil
}

func (r *PostgresRepository) SaveNewClass(ctx context.Context, c models.Class) error {
	doc, err := encode(c.Clone())
	if err != nil {
		return err
	}
	query := `INSERT INTO classes (id, pass_phrase, doc) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, c.ID.String(), string(c.PassPhrase), doc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyExists
		}
		return connErr(err)
	}
	return nil
}

func (r *PostgresRepository) getClass(ctx context.Context, query string, arg any) (models.Class, error) {
	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Class{}, common.ErrClassNotFound
		}
		return models.Class{}, connErr(err)
	}
	c, err := decode[models.Class](raw)
	if err != nil {
		return models.Class{}, err
	}
	return c.Clone(), nil
}

func (r *PostgresRepository) GetClassByID(ctx context.Context, id models.ClassID) (models.Class, error) {
	return r.getClass(ctx, `SELECT doc FROM classes WHERE id = $1`, id.String())
}

func (r *PostgresRepository) GetClassByPassPhrase(ctx context.Context, p models.PassPhrase) (models.Class, error) {
	return r.getClass(ctx, `SELECT doc FROM classes WHERE pass_phrase = $1`, string(p))
}

func (r *PostgresRepository) RenameClass(ctx context.Context, id models.ClassID, name string) error {
	query := `UPDATE classes SET doc = jsonb_set(doc, '{name}', to_jsonb($2::text)) WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id.String(), name)
	if err != nil {
		return connErr(err)
	}
	return oneRow(res, common.ErrClassNotFound)
}

func (r *PostgresRepository) DeleteClass(ctx context.Context, id models.ClassID) (models.Class, error) {
	return r.getClass(ctx, `DELETE FROM classes WHERE id = $1 RETURNING doc`, id.String())
}

func (r *PostgresRepository) ClassIDExists(ctx context.Context, id models.ClassID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, id.String())
}

func (r *PostgresRepository) PassPhraseExists(ctx context.Context, p models.PassPhrase) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM classes WHERE pass_phrase = $1)`, string(p))
}

func (r *PostgresRepository) GetFiles(ctx context.Context, id models.ClassID) ([]models.File, error) {
	query := `SELECT COALESCE(doc->'files', '[]'::jsonb) FROM classes WHERE id = $1`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrClassNotFound
		}
		return nil, connErr(err)
	}
	files, err := decode[[]models.File](raw)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

// AddNewFile appends to the embedded array. Exactly one document must be
// updated; zero means the class vanished.
func (r *PostgresRepository) AddNewFile(ctx context.Context, id models.ClassID, f models.File) error {
	doc, err := encode(f)
	if err != nil {
		return err
	}
	query := `UPDATE classes
		SET doc = jsonb_set(doc, '{files}', COALESCE(doc->'files', '[]'::jsonb) || jsonb_build_array($2::jsonb))
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id.String(), doc)
	if err != nil {
		return connErr(err)
	}
	return oneRow(res, common.ErrClassNotFound)
}

func (r *PostgresRepository) GetFileByID(ctx context.Context, id models.FileID) (models.File, error) {
	query := `SELECT f.elem
		FROM classes c, jsonb_array_elements(c.doc->'files') AS f(elem)
		WHERE f.elem->>'id' = $1
		LIMIT 1`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, common.ErrFileNotFound
		}
		return models.File{}, connErr(err)
	}
	return decode[models.File](raw)
}

// DeleteFile locks the owning row, then drops the array element at the
// position found by the unwind.
func (r *PostgresRepository) DeleteFile(ctx context.Context, id models.FileID) (models.File, error) {
	var removed models.File
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `SELECT c.id, f.idx, f.elem
			FROM classes c, jsonb_array_elements(c.doc->'files') WITH ORDINALITY AS f(elem, idx)
			WHERE f.elem->>'id' = $1
			LIMIT 1
			FOR UPDATE OF c`
		var (
			classID string
			idx     int64
			raw     []byte
		)
		if err := tx.QueryRowContext(ctx, query, id.String()).Scan(&classID, &idx, &raw); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrFileNotFound
			}
			return connErr(err)
		}
		f, err := decode[models.File](raw)
		if err != nil {
			return err
		}

		update := `UPDATE classes SET doc = jsonb_set(doc, '{files}', (doc->'files') - $2::int) WHERE id = $1`
		res, err := tx.ExecContext(ctx, update, classID, idx-1)
		if err != nil {
			return connErr(err)
		}
		if err := oneRow(res, common.ErrFileNotFound); err != nil {
			return err
		}
		removed = f
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrFileNotFound) || errors.Is(err, common.ErrConnection) ||
			errors.Is(err, common.ErrDeserializeFailed) {
			return models.File{}, err
		}
		return models.File{}, connErr(err)
	}
	return removed, nil
}

func (r *PostgresRepository) FileIDExists(ctx context.Context, id models.FileID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM classes c, jsonb_array_elements(c.doc->'files') AS f(elem)
		WHERE f.elem->>'id' = $1)`
	return r.exists(ctx, query, id.String())
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return connErr(err)
	}
	return nil
}

// oneRow maps RowsAffected to nil for exactly one row, notFound for zero.
func oneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return connErr(err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return notFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
