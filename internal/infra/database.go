package infra

import (
	"fmt"

	"australprints/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for every table, then applies the idempotent SQL patches that GORM cannot
// express (text[] defaults, partial index for the retry cron).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() requires pgcrypto on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Insumo{},
		&model.Producto{},
		&model.ProductoCostoAdicional{},
		&model.ProductoInsumo{},
		&model.Pedido{},
		&model.CostoAdicional{},
		&model.PedidoInsumo{},
		&model.Gasto{},
		&model.Etiqueta{},
		&model.MovimientoStock{},
		&model.Recibo{},
		&model.ConfiguracionCotizacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Empty array default for the tag columns so array_replace never
		// sees NULL rows.
		`ALTER TABLE pedidos ALTER COLUMN etiquetas SET DEFAULT '{}'`,
		`ALTER TABLE gastos  ALTER COLUMN etiquetas SET DEFAULT '{}'`,
		`UPDATE pedidos SET etiquetas = '{}' WHERE etiquetas IS NULL`,
		`UPDATE gastos  SET etiquetas = '{}' WHERE etiquetas IS NULL`,
		// Partial index for the recibo retry cron query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_recibos_pending_retry') THEN
		    CREATE INDEX idx_recibos_pending_retry
		        ON recibos (next_retry_at)
		        WHERE estado = 'pendiente' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// GIN indexes speed up etiqueta = ANY(etiquetas) filters and the
		// array_replace rename scan.
		`CREATE INDEX IF NOT EXISTS idx_pedidos_etiquetas ON pedidos USING GIN (etiquetas)`,
		`CREATE INDEX IF NOT EXISTS idx_gastos_etiquetas  ON gastos  USING GIN (etiquetas)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
