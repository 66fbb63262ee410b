package episodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"clipper/transcript"
)

const Schema = `
	create table if not exists clips (
		id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		show_id text not null,
		fingerprint text not null unique,
		start_sec real not null,
		end_sec real not null,
		is_rendered integer default 0,
		video_url text not null default ''
	);

	create table if not exists clip_words (
		clip_id integer not null,
		position integer not null,
		word_index integer not null,
		text text not null,
		heading text not null,
		start_ms integer not null,
		end_ms integer not null,
		primary key (clip_id, position)
	);`

type (
	SQLiteRepo struct {
		db *sql.DB
	}
)

func NewSQLiteRepo(db *sql.DB) SQLiteRepo {
	return SQLiteRepo{db}
}

func (r SQLiteRepo) GetClipByFingerprint(ctx context.Context, fingerprint string) (Clip, error) {
	res := Clip{}
	var isRendered uint8

	err := r.db.
		QueryRowContext(
			ctx,
			"select id, show_id, fingerprint, start_sec, end_sec, is_rendered, video_url from clips where fingerprint = $1",
			fingerprint,
		).
		Scan(&res.ID, &res.ShowID, &res.Fingerprint, &res.StartSec, &res.EndSec, &isRendered, &res.VideoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return res, fmt.Errorf("get clip by fingerprint: %w", ErrClipNotFound)
	}
	if err != nil {
		return res, fmt.Errorf("get clip by fingerprint: %w", err)
	}
	res.IsRendered = isRendered == 1

	res.Words, err = r.getClipWords(ctx, res.ID)
	if err != nil {
		return res, fmt.Errorf("get clip by fingerprint: %w", err)
	}

	return res, nil
}

func (r SQLiteRepo) getClipWords(ctx context.Context, clipID string) ([]transcript.Word, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"select word_index, text, heading, start_ms, end_ms from clip_words where clip_id = $1 order by position",
		clipID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying clip words: %w", err)
	}
	defer rows.Close()

	res := []transcript.Word{}
	for rows.Next() {
		var w transcript.Word
		if err := rows.Scan(&w.Index, &w.Text, &w.Heading, &w.StartMs, &w.EndMs); err != nil {
			return nil, fmt.Errorf("scanning clip word: %w", err)
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clip words: %w", err)
	}

	return res, nil
}

// CreateClip stores sel under its fingerprint. If a clip with the same
// fingerprint exists it is returned unchanged.
func (r SQLiteRepo) CreateClip(ctx context.Context, showID string, sel transcript.Selection) (Clip, error) {
	existing, err := r.GetClipByFingerprint(ctx, sel.Fingerprint)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrClipNotFound) {
		return Clip{}, fmt.Errorf("create clip: %w", err)
	}

	res := Clip{
		ShowID:      showID,
		Fingerprint: sel.Fingerprint,
		StartSec:    sel.StartSec,
		EndSec:      sel.EndSec,
		Words:       sel.Words,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("create clip: begin trx: %w", err)
	}

	err = tx.
		QueryRowContext(
			ctx,
			"insert into clips (show_id, fingerprint, start_sec, end_sec) values ($1, $2, $3, $4) returning id",
			showID,
			sel.Fingerprint,
			sel.StartSec,
			sel.EndSec,
		).
		Scan(&res.ID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return res, fmt.Errorf("rollback insert clip: %w", rbErr)
		}
		return res, fmt.Errorf("persisting clip into sqlite: %w", err)
	}

	err = r.insertClipWords(ctx, tx, res.ID, sel.Words)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return res, fmt.Errorf("rollback insert clip words: %w", rbErr)
		}
		return res, err
	}

	err = tx.Commit()
	if err != nil {
		return res, fmt.Errorf("create clip: commiting: %w", err)
	}
	log.Printf("stored clip %s for show %s (%d words)\n", res.ID, showID, len(res.Words))

	return res, nil
}

func (r SQLiteRepo) insertClipWords(ctx context.Context, tx *sql.Tx, clipID string, words []transcript.Word) error {
	if len(words) == 0 {
		return nil
	}

	var insertWordsQueryBuilder strings.Builder
	_, err := insertWordsQueryBuilder.WriteString(`insert into clip_words (
		clip_id,
		position,
		word_index,
		text,
		heading,
		start_ms,
		end_ms) values `)
	if err != nil {
		return fmt.Errorf("inserting clip words: building query: %w", err)
	}
	insertWordsArgs := make([]any, 7*len(words))
	for n, w := range words {
		prefix := ", "
		if n == 0 {
			prefix = ""
		}
		b := n * 7
		_, err = insertWordsQueryBuilder.WriteString(fmt.Sprintf(`%s(
			$%d, $%d, $%d, $%d, $%d, $%d, $%d
		)`, prefix, b+1, b+2, b+3, b+4, b+5, b+6, b+7))
		if err != nil {
			return fmt.Errorf("inserting clip words: building query: %w", err)
		}

		insertWordsArgs[b] = clipID
		insertWordsArgs[b+1] = n
		insertWordsArgs[b+2] = w.Index
		insertWordsArgs[b+3] = w.Text
		insertWordsArgs[b+4] = w.Heading
		insertWordsArgs[b+5] = w.StartMs
		insertWordsArgs[b+6] = w.EndMs
	}

	_, err = tx.ExecContext(ctx, insertWordsQueryBuilder.String(), insertWordsArgs...)
	if err != nil {
		return fmt.Errorf("inserting clip words: %w", err)
	}

	return nil
}

func (r SQLiteRepo) MarkRendered(ctx context.Context, fingerprint string, videoURL string) error {
	res, err := r.db.ExecContext(ctx, `
		update clips
		set is_rendered = 1, video_url = $1
		where fingerprint = $2
	`, videoURL, fingerprint)
	if err != nil {
		return fmt.Errorf("marking clip rendered: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking clip rendered: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("marking clip rendered: %w", ErrClipNotFound)
	}

	return nil
}
