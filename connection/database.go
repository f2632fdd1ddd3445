package connection

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"clubreport/model"
)

// DBConnection opens the relational accounts database. Domain documents live
// in Firestore; only credentials and roles are kept here.
func DBConnection() (*gorm.DB, error) {
	godotenv.Load()

	db, err := gorm.Open(mysql.Open(os.Getenv("DATABASE_DSN")), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.Account{}); err != nil {
		return nil, err
	}
	return db, nil
}

// FBConnection initializes the Firebase app and returns a Firestore client.
func FBConnection() (*firestore.Client, error) {
	godotenv.Load()

	ctx := context.Background()
	var opts []option.ClientOption
	if cred := os.Getenv("FIREBASE_CREDENTIALS"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	return app.Firestore(ctx)
}
