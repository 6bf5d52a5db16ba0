package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/pricelens/backend/internal/domain"
)

// Schema is the products table the SQLite store reads. Column names follow
// the back-office export.
const Schema = `CREATE TABLE IF NOT EXISTS products (
	produit      TEXT NOT NULL DEFAULT '',
	designation  TEXT NOT NULL DEFAULT '',
	descriptif   TEXT NOT NULL DEFAULT '',
	marque       TEXT NOT NULL DEFAULT '',
	prix_vente   TEXT NOT NULL DEFAULT '',
	prix_achat   TEXT NOT NULL DEFAULT '',
	lien_externe TEXT NOT NULL DEFAULT '',
	couleur      TEXT NOT NULL DEFAULT '',
	matiere      TEXT NOT NULL DEFAULT '',
	taille       TEXT NOT NULL DEFAULT '',
	dimension    TEXT NOT NULL DEFAULT ''
)`

const selectProducts = `SELECT produit, designation, descriptif, marque, prix_vente, prix_achat,
	lien_externe, couleur, matiere, taille, dimension
FROM products ORDER BY rowid`

// SQLiteStore serves the catalog from a SQLite database. Rows are read into
// a snapshot at open and on Reload; requests never hit the database.
type SQLiteStore struct {
	db      *sql.DB
	current atomic.Pointer[snapshot]
	log     zerolog.Logger
}

// NewSQLiteStore opens the database at path, ensures the products table and
// loads the first snapshot.
func NewSQLiteStore(ctx context.Context, path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure products table: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.Reload(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Reload reads every row and swaps the snapshot. On error the previous
// snapshot stays in place.
func (s *SQLiteStore) Reload(ctx context.Context) error {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var produit, designation, descriptif, marque, prixVente, prixAchat, lien, couleur, matiere, taille, dimension string
		if err := rows.Scan(&produit, &designation, &descriptif, &marque, &prixVente, &prixAchat,
			&lien, &couleur, &matiere, &taille, &dimension); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		r := record{
			Produit:     flexString(produit),
			Designation: flexString(designation),
			Descriptif:  flexString(descriptif),
			Marque:      flexString(marque),
			PrixVente:   flexString(prixVente),
			PrixAchat:   flexString(prixAchat),
			LienExterne: flexString(lien),
			Couleur:     flexString(couleur),
			Matiere:     flexString(matiere),
			Taille:      flexString(taille),
			Dimension:   flexString(dimension),
		}
		items = append(items, r.toItem())
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	s.current.Store(newSnapshot(items))
	s.log.Info().Int("items", len(items)).Dur("duration", time.Since(start)).Msg("catalog loaded")
	return nil
}

// GetAllItems returns the current snapshot in row order.
func (s *SQLiteStore) GetAllItems(ctx context.Context) ([]domain.CatalogItem, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return snap.items, nil
}

// GetByReference returns the first row whose reference equals reference,
// ignoring case and surrounding spaces.
func (s *SQLiteStore) GetByReference(ctx context.Context, reference string) (*domain.CatalogItem, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return snap.get(reference)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
