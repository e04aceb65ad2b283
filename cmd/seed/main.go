// Command seed populates a SQLite record store with sample movie rows for
// local development. Duplicate titles are included on purpose: they exercise
// the entity-level rating invariant across rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/okian/reelo/internal/adapters/store/sqlite"
	"github.com/okian/reelo/internal/domain/model"
)

var samples = []model.Record{
	{Title: "Heat", Director: "Michael Mann", Genres: "Action,Crime,Drama"},
	{Title: "Alien", Director: "Ridley Scott", Genres: "Horror,Sci-Fi"},
	{Title: "Alien", Director: "Ridley Scott", Genres: "Horror,Sci-Fi"}, // rewatch
	{Title: "The Big Lebowski", Director: "Joel Coen", Genres: "Comedy,Crime"},
	{Title: "Spirited Away", Director: "Hayao Miyazaki", Genres: "Animation,Adventure,Fantasy"},
	{Title: "Drive", Director: "Nicolas Winding Refn", Genres: "Action,Drama"},
	{Title: "Paddington 2", Director: "Paul King", Genres: "Adventure,Comedy,Family"},
	{Title: "The Thing", Director: "John Carpenter", Genres: "Horror,Mystery,Sci-Fi"},
	{Title: "Before Sunrise", Director: "Richard Linklater", Genres: "Drama,Romance"},
	{Title: "Heat", Director: "Michael Mann", Genres: "Action,Crime,Drama"}, // rewatch
}

func main() {
	path := flag.String("db", "reelo.db", "path to the SQLite database file")
	flag.Parse()

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	for _, rec := range samples {
		rec.Rating = model.DefaultRating
		if err := st.Insert(ctx, rec); err != nil {
			fmt.Fprintln(os.Stderr, "insert:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded %d rows into %s\n", len(samples), *path)
}
