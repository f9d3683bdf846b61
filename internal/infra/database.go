package infra

import (
	"fmt"

	"postogestor/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes, extension setup).
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

// RunMigrations applies AutoMigrate plus the schema patches. Also used by
// integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() requires pgcrypto on Postgres < 13; harmless elsewhere.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Combustivel{},
		&model.HistoricoPrecoCombustivel{},
		&model.Bomba{},
		&model.Bico{},
		&model.Frentista{},
		&model.Turno{},
		&model.FormaPagamento{},
		&model.Fechamento{},
		&model.LeituraBico{},
		&model.SessaoFrentista{},
		&model.RecebimentoPagamento{},
		&model.CompraCombustivel{},
		&model.DespesaMensal{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Um único fechamento ativo por (data, turno): cancelados ficam fora
		// da unicidade para permitir reabrir o turno com um registro novo.
		{"partial unique idx fechamentos (data, turno_id)", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_fechamentos_data_turno_ativo') THEN
    CREATE UNIQUE INDEX uni_fechamentos_data_turno_ativo
        ON fechamentos (data, turno_id)
        WHERE status <> 'cancelado';
  END IF;
END $$`},
		// Consulta dominante do histórico: fechados por período.
		{"partial idx fechamentos fechados", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_fechamentos_fechados_data') THEN
    CREATE INDEX idx_fechamentos_fechados_data
        ON fechamentos (data)
        WHERE status = 'fechado';
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
