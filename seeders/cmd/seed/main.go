package main

import (
	"flag"
	"log"

	"order-management/migrations"
	"order-management/pkg/config"
	"order-management/pkg/database/postgresql"
	"order-management/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runMigrations := flag.Bool("migrate", true, "Прогнать миграции перед наполнением")
	flag.Parse()

	cfg := config.New()

	if *runMigrations {
		if err := postgresql.RunMigrations(cfg.Postgres.DSN, migrations.FS); err != nil {
			log.Fatalf("❌ Ошибка применения миграций: %v", err)
		}
	}

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	seeders.SeedAll(db)
}
