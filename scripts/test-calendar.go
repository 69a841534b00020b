package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/henley-schedule/internal/calendar"
	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"github.com/pfrederiksen/henley-schedule/internal/race"
)

func main() {
	// Create a sample race
	matches := []filter.Match{
		{Record: race.Record{
			Number:    "42",
			GBTime:    "15:05",
			LocalTime: "10:05",
			Berks:     "Leander Club",
			Bucks:     "Yale University, USA",
			Trophy:    "The Grand Challenge Cup",
			BoatClass: "M8+",
		}},
	}
	raceDay := calendar.ParseRaceDay("Saturday 4th July", time.Now())

	// Generate .ics file
	icsContent, err := calendar.GenerateICS(raceDay, matches, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating calendar: %v\n", err)
		os.Exit(1)
	}

	// Write to file (owner read/write only)
	filename := "test-henley-race.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
