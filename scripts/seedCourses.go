package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"
)

// Seeds the course catalog from courses.csv:
// title,description,price,discount,educatorId
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	log.Printf("Total rows to import: %d", len(records)-1)

	inserted := 0
	for _, record := range records[1:] {
		if len(record) < 5 {
			log.Printf("Skipping short row: %v", record)
			continue
		}

		price, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			log.Printf("Skipping row with bad price %q: %v", record[2], err)
			continue
		}
		discount, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			log.Printf("Skipping row with bad discount %q: %v", record[3], err)
			continue
		}

		courseData := courseModels.Course{
			Title:       record[0],
			Description: record[1],
			Price:       price,
			Discount:    discount,
			EducatorID:  record[4],
			IsPublished: true,
		}

		if err := database.Database.Db.Create(&courseData).Error; err != nil {
			log.Printf("Failed to insert course %q: %v", courseData.Title, err)
			continue
		}
		inserted++
	}

	log.Printf("Import complete. Inserted %d course(s).", inserted)
}
