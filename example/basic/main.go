package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tobibamidele/spotter"
	"github.com/tobibamidele/spotter/config"
)

func main() {
	// Create configuration
	cfg := config.NewConfigBuilder().
		WithBaseURL("https://ucam.takeaspot.com").
		WithDatabase(config.SQLite, "spotter.db").
		WithSessionStore("spotter_session.bin", os.Getenv("SPOTTER_PASSPHRASE")).
		Build()

	// Initialize the engine
	engine, err := spotter.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize spotter:", err)
	}
	defer engine.Close()

	ctx := context.Background()

	// A session comes from a browser capture: after the user logs in on
	// the real site, feed the Cookie header and the landing page here.
	if !engine.CheckSession(ctx) {
		log.Println("No session. Capture a login first, e.g.:")
		log.Println(`  engine.ProcessCapturedLogin(ctx, "takeaspot_session=...; XSRF-TOKEN=...", pageHTML)`)
		return
	}

	// Resolve the configured service and show today's availability.
	service, err := engine.LibraryInfo(ctx)
	if err != nil {
		log.Fatal("Failed to fetch service:", err)
	}
	log.Printf("Service %q (id %d, %d tables)", service.Name, service.ID, service.Capacity)

	days, err := engine.Availability(ctx, service.ID)
	if err != nil {
		log.Fatal("Failed to fetch availability:", err)
	}

	today := time.Now().Format("2006-01-02")
	day, ok := days[today]
	if !ok {
		log.Println("No slots published for today")
		return
	}
	for window, tables := range day.TimeSlots {
		free := 0
		for _, t := range tables {
			if t.IsFree {
				free++
			}
		}
		fmt.Printf("%s: %d/%d tables free\n", window, free, len(tables))
	}
}
