package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/SLTNKCGZ/Hackathon-2025/db"
	"github.com/SLTNKCGZ/Hackathon-2025/handlers"
	"github.com/SLTNKCGZ/Hackathon-2025/quiz"
	"github.com/SLTNKCGZ/Hackathon-2025/storage"
	"github.com/SLTNKCGZ/Hackathon-2025/utils"
)

func main() {
	log.Println("Starting server")

	r := gin.Default()
	r.Use(cors.Default())

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	utils.LoadEnvs()

	log.Println("Connecting to MongoDB")
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI not found in environment")
	}
	db.ConnectMongo(mongoURI)

	// Uploaded question images go to S3 when a bucket is configured,
	// otherwise to a local directory served at /uploads.
	var store storage.Store
	if utils.AWS_BUCKET_NAME != "" {
		log.Println("Using S3 storage:", utils.AWS_BUCKET_NAME)
		store = storage.NewS3Store(utils.AWS_REGION, utils.AWS_BUCKET_NAME)
	} else {
		diskStore, err := storage.NewDiskStore(utils.UPLOAD_DIR)
		if err != nil {
			log.Fatalf("Error preparing upload directory: %v", err)
		}
		r.Static("/uploads", diskStore.Dir)
		store = diskStore
	}

	handlers.Store = store
	handlers.Pipeline = &quiz.Pipeline{
		Store:  db.Content{},
		Files:  store,
		Engine: quiz.NewTesseractEngine(utils.OCR_LANGUAGE),
		Client: quiz.NewGeminiClient(utils.GOOGLE_API_KEY),
	}

	log.Println("Setting up routes")
	handlers.SetUpRoutes(r)

	r.Run(":8080") // listen and serve on 0.0.0.0:8080
}
