package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner and quality.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)
var _ quality.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la unidad atómica leer-validar-escribir del libro de
// cantidades (la fila del WorkItem se bloquea dentro de fn).
func (r *TxRunner) Run(ctx context.Context, fn func(
	workItemRepo repository.WorkItemRepository,
	releaseRepo repository.ReleaseRepository,
	inspectionRepo repository.InspectionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	workItemRepo := NewWorkItemRepository(tx)
	releaseRepo := NewReleaseRepository(tx)
	inspectionRepo := NewInspectionRepository(tx)

	if err := fn(workItemRepo, releaseRepo, inspectionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuality inicia una transacción con los repos del guardado de inspección
// (pasos + cabecera + retroalimentación a la liberación, todo-o-nada).
func (r *TxRunner) RunQuality(ctx context.Context, fn func(
	inspectionRepo repository.InspectionRepository,
	releaseRepo repository.ReleaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inspectionRepo := NewInspectionRepository(tx)
	releaseRepo := NewReleaseRepository(tx)

	if err := fn(inspectionRepo, releaseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
