// Command main runs the database seeder for the job portal.
package main

import (
	"flag"
	"log"

	"jobportal/internal/config"
	"jobportal/internal/database"
	"jobportal/internal/seed"
)

func main() {
	numEmployers := flag.Int("employers", 5, "Number of employer accounts to create")
	numSeekers := flag.Int("seekers", 20, "Number of job seeker accounts to create")
	jobsPerEmployer := flag.Int("jobs", 4, "Number of jobs per employer")
	applicationsPerSeeker := flag.Int("applications", 3, "Number of applications per seeker")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d employers, %d seekers, %d jobs each, %d applications each, clean=%v",
		*numEmployers, *numSeekers, *jobsPerEmployer, *applicationsPerSeeker, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(*numEmployers, *numSeekers, *jobsPerEmployer, *applicationsPerSeeker); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
