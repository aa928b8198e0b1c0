package main

import (
	"context"
	"flag"
	"time"

	"github.com/escartian/FitByte/internal/config"
	"github.com/escartian/FitByte/internal/logging"
	"github.com/escartian/FitByte/internal/repository/mongo"
	"github.com/escartian/FitByte/internal/seed"
	"github.com/escartian/FitByte/internal/storage"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	exercisesDir := flag.String("exercises", "", "override seed.exercises_dir")
	templatesFile := flag.String("templates", "", "override seed.templates_file")
	uploadImages := flag.Bool("upload-images", false, "upload exercise images to the object store")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}
	logging.Setup(cfg.Log)

	seedCfg := cfg.Seed
	if *exercisesDir != "" {
		seedCfg.ExercisesDir = *exercisesDir
	}
	if *templatesFile != "" {
		seedCfg.TemplatesFile = *templatesFile
	}
	seedCfg.UploadImages = seedCfg.UploadImages || *uploadImages

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(client); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	db := client.Database(cfg.Database.Name)

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("could not create indexes: %s", err)
	}

	images, err := storage.NewImageStorage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("could not initialize image storage: %s", err)
	}

	seeder := seed.NewSeeder(
		mongo.NewMongoExerciseRepository(db, cfg.Database.OpTimeout),
		mongo.NewMongoWorkoutRepository(db, cfg.Database.OpTimeout),
		images,
	)

	report, err := seeder.Run(ctx, seedCfg)
	if err != nil {
		log.Fatalf("seeding failed: %s", err)
	}
	log.WithFields(log.Fields{
		"exercisesInserted": report.ExercisesInserted,
		"exercisesSkipped":  report.ExercisesSkipped,
		"imagesUploaded":    report.ImagesUploaded,
		"templatesInserted": report.TemplatesInserted,
	}).Info("seeding finished")
}
