package connection

import (
	"log"

	"clubreport/controller/admin"
	"clubreport/controller/auth"
	"clubreport/controller/contribution"
	"clubreport/controller/member"
	"clubreport/controller/report"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	DB, err := DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	FB, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	auth.AuthController(router, DB, FB)

	admin.AdminController(router, DB, FB)

	report.ReportController(router, DB, FB)

	member.MemberController(router, DB, FB)

	contribution.ContributionController(router, DB, FB)

	router.Run()
}
