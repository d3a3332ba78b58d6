package postgresql

import (
	"context"
	"embed"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func ConnectDB(dsn string) *pgxpool.Pool {
	dbpool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Ошибка создания пула соединений к БД: %v", err)
	}

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Не удалось пинговать БД: %v", err)
	}

	log.Println("✅ Подключено к PostgreSQL")
	return dbpool
}

// RunMigrations прогоняет goose-миграции из встроенной файловой системы.
// Goose работает поверх database/sql, поэтому открываем отдельное
// соединение через pgx stdlib-драйвер и закрываем его после прогона.
func RunMigrations(dsn string, migrations embed.FS) error {
	db := stdlib.OpenDB(*mustParseConfig(dsn))
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func mustParseConfig(dsn string) *pgx.ConnConfig {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("Некорректный DSN для миграций: %v", err)
	}
	return cfg
}
