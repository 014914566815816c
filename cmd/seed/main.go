// Command seed wipes the catalog and loads demo data: an admin
// account, a few movies with downloaded posters, two halls with their
// seat grids and a week of screenings.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mstepanov/cinema-booking/internal/config"
	"github.com/mstepanov/cinema-booking/internal/database"
	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

type demoMovie struct {
	title       string
	description string
	durationMin uint32
	posterURL   string
}

var demoMovies = []demoMovie{
	{"Midnight Express Run", "A night courier gets tangled in a heist across the sleeping city.", 112, "https://picsum.photos/seed/midnight/400/600"},
	{"The Quiet Harbor", "Two strangers restore an abandoned lighthouse and each other.", 97, "https://picsum.photos/seed/harbor/400/600"},
	{"Orbit Decay", "A salvage crew races a collapsing station's final orbit.", 128, "https://picsum.photos/seed/orbit/400/600"},
	{"Paper Lanterns", "Three generations of a family reunite for one last festival.", 104, "https://picsum.photos/seed/lantern/400/600"},
	{"Checkmate County", "A small-town chess club stumbles into a national scandal.", 89, "https://picsum.photos/seed/chess/400/600"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	halls := repository.NewHallRepo(db)
	seats := repository.NewSeatRepo(db)
	screenings := repository.NewScreeningRepo(db)

	// order matters, screenings reference movies and halls
	if err := screenings.DeleteAll(ctx); err != nil {
		log.Fatalf("clear screenings: %v", err)
	}
	if err := movies.DeleteAll(ctx); err != nil {
		log.Fatalf("clear movies: %v", err)
	}
	if err := halls.DeleteAll(ctx); err != nil {
		log.Fatalf("clear halls: %v", err)
	}

	if _, err := users.Create(ctx, "admin@example.com", "admin123", "ADMIN", cfg.BcryptCost); err != nil {
		if err != repository.ErrEmailExists {
			log.Fatalf("seed admin: %v", err)
		}
		log.Println("admin user already present")
	}

	movieIDs := make([]uint64, 0, len(demoMovies))
	for _, dm := range demoMovies {
		m := &model.Movie{Title: dm.title, Description: dm.description, DurationMin: dm.durationMin}
		if path, err := fetchPoster(ctx, cfg.MediaDir, dm.posterURL); err != nil {
			log.Printf("poster for %q skipped: %v", dm.title, err)
		} else {
			m.PosterPath = &path
		}
		if err := movies.Create(ctx, m); err != nil {
			log.Fatalf("seed movie %q: %v", dm.title, err)
		}
		movieIDs = append(movieIDs, m.ID)
		log.Printf("movie %d: %s", m.ID, m.Title)
	}

	hallSpecs := []model.CinemaHall{
		{Name: "Grand Hall", SeatRows: 10, SeatsPerRow: 14},
		{Name: "Studio 2", SeatRows: 6, SeatsPerRow: 8},
	}
	hallIDs := make([]uint64, 0, len(hallSpecs))
	for i := range hallSpecs {
		h := &hallSpecs[i]
		if err := halls.Create(ctx, h); err != nil {
			log.Fatalf("seed hall %q: %v", h.Name, err)
		}
		grid := make([]model.Seat, 0, h.TotalSeats())
		for row := uint32(1); row <= h.SeatRows; row++ {
			for num := uint32(1); num <= h.SeatsPerRow; num++ {
				grid = append(grid, model.Seat{HallID: h.ID, Row: row, Number: num})
			}
		}
		if err := seats.CreateBulk(ctx, grid); err != nil {
			log.Fatalf("seed seats for %q: %v", h.Name, err)
		}
		hallIDs = append(hallIDs, h.ID)
		log.Printf("hall %d: %s (%d seats)", h.ID, h.Name, h.TotalSeats())
	}

	// a week of evening slots, alternating movies between the halls
	base := time.Now().UTC().Truncate(24 * time.Hour)
	slots := []time.Duration{17 * time.Hour, 20 * time.Hour}
	count := 0
	for day := 0; day < 7; day++ {
		for si, slot := range slots {
			for hi, hallID := range hallIDs {
				dm := demoMovies[(day+si+hi)%len(demoMovies)]
				movieID := movieIDs[(day+si+hi)%len(movieIDs)]
				starts := base.Add(time.Duration(day)*24*time.Hour + slot)
				sc := &model.Screening{
					MovieID:    movieID,
					HallID:     hallID,
					StartsAt:   starts,
					EndsAt:     starts.Add(time.Duration(dm.durationMin) * time.Minute),
					PriceCents: 1250,
				}
				if err := screenings.Create(ctx, sc); err != nil {
					log.Fatalf("seed screening: %v", err)
				}
				count++
			}
		}
	}
	log.Printf("seeded %d movies, %d halls, %d screenings", len(movieIDs), len(hallIDs), count)
}

// fetchPoster downloads a poster image into mediaDir and returns the
// stored path. Network failures are reported to the caller so the
// seeder can continue without a poster.
func fetchPoster(ctx context.Context, mediaDir, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(mediaDir, uuid.NewString()+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
