package storage

import (
	"context"
	"fmt"
)

// IsImported reports whether a file with hash was already imported into
// target ("local" or a server URL).
func (d *DB) IsImported(ctx context.Context, target, hash string) (bool, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM imported_files WHERE target = ? AND hash = ?`,
		target, hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking import ledger: %w", err)
	}
	return count > 0, nil
}

// MarkImported records a successful import of the file with hash.
func (d *DB) MarkImported(ctx context.Context, target, hash, kind, name string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO imported_files (target, hash, kind, name) VALUES (?, ?, ?, ?)`,
		target, hash, kind, name,
	)
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	return nil
}

// ForgetImports clears the ledger for target, e.g. after its data was reset.
func (d *DB) ForgetImports(ctx context.Context, target string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM imported_files WHERE target = ?`, target); err != nil {
		return fmt.Errorf("clearing import ledger: %w", err)
	}
	return nil
}
