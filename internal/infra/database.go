package infra

import (
	"fmt"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// that GORM cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map driver errors to gorm sentinels (gorm.ErrDuplicatedKey et al).
		TranslateError: true,
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

// RunMigrations applies the schema. Also used by integration tests against
// a fresh database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Departamento{},
		&model.Municipio{},
		&model.Distrito{},
		&model.Sucursal{},
		&model.Usuario{},
		&model.Marca{},
		&model.ModeloVehiculo{},
		&model.CategoriaVehiculo{},
		&model.Vehiculo{},
		&model.Cliente{},
		&model.Alquiler{},
		&model.Pago{},
		&model.Factura{},
		&model.Auditoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the vehicle-overlap check: only pending
		// rentals participate in conflicts.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_alquileres_vigentes') THEN
		    CREATE INDEX idx_alquileres_vigentes
		        ON alquileres (vehiculo_id, fecha_inicio, fecha_fin)
		        WHERE estado IN ('Activo', 'Reservado') AND activo;
		  END IF;
		END $$`,
		// Partial index for the overdue sweep.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_alquileres_activos_fecha_fin') THEN
		    CREATE INDEX idx_alquileres_activos_fecha_fin
		        ON alquileres (fecha_fin)
		        WHERE estado = 'Activo' AND activo;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
