package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"kindlog/internal/datastore"
	"kindlog/internal/models"
	"kindlog/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandAchievementMigration(),
			commandChallengeMigration(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAction(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableClap(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableChallenge(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAchievement(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: "production"},
				{Key: services.CONFIG_RECORD_ACTION_DAILY_LIMIT, Value: "50"},
				{Key: services.CONFIG_CHALLENGE_SUGGESTION_COUNT, Value: "3"},
				{Key: services.CONFIG_CRONJOB_TIME_RECONCILE, Value: "@every 6h"},
			}

			for _, config := range configs {
				err = datastore.InsertConfig(ctx, db, config)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandAchievementMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-achievements",
		Description: "Seed the achievement catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.SeedAchievementDefinitions(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandChallengeMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-challenges",
		Description: "Seed the starter challenge catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			challenges := []*models.Challenge{
				{Title: "Pick up litter in your neighborhood", Description: "Grab a bag and clear a street or park corner", Category: models.CategoryEnvironment, Active: true},
				{Title: "Thank a local volunteer", Description: "Tell someone who gives their time that it matters", Category: models.CategoryCommunity, Active: true},
				{Title: "Call a family member you miss", Description: "Ten minutes, no agenda", Category: models.CategoryFamily, Active: true},
				{Title: "Pay for a stranger's coffee", Description: "Small surprise, big morning", Category: models.CategoryStrangers, Active: true},
				{Title: "Donate unused clothes", Description: "One bag to a local shelter or drop point", Category: models.CategoryCommunity, Active: true},
				{Title: "Plant something", Description: "A tree, a balcony herb, anything that grows", Category: models.CategoryEnvironment, Active: true},
				{Title: "Cook for your family", Description: "Handle a whole meal start to finish", Category: models.CategoryFamily, Active: true},
				{Title: "Give up your seat", Description: "On the bus or train, to whoever needs it more", Category: models.CategoryStrangers, Active: true},
			}

			for _, challenge := range challenges {
				_, err = datastore.InsertChallenge(ctx, db, challenge)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
