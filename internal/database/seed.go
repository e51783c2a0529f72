// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// PasswordHasher turns a plaintext password into a stored hash.
type PasswordHasher func(password string) (string, error)

type seedUser struct {
	username, email, name, role, password string
}

var seedUsers = []seedUser{
	{"admin", "admin@marquee.example", "Admin User", models.RoleAdmin, "admin123"},
	{"user1", "user1@marquee.example", "John Doe", models.RoleUser, "user123"},
	{"demo", "demo@marquee.example", "Demo User", models.RoleUser, "demo123"},
}

var seedMovies = []models.Movie{
	{
		Title: "Inception", Genre: "Sci-Fi", Year: models.IntPtr(2010), Rating: models.FloatPtr(8.8),
		Duration: "2h 28m", Director: "Christopher Nolan",
		Synopsis:    "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.",
		Cast:        []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"},
		Trailer:     "https://www.youtube.com/watch?v=YoHD9XEInc0",
		ReleaseDate: "2010-07-16", Language: "English",
	},
	{
		Title: "The Dark Knight", Genre: "Action", Year: models.IntPtr(2008), Rating: models.FloatPtr(9.0),
		Duration: "2h 32m", Director: "Christopher Nolan",
		Synopsis:    "Batman faces the Joker, a criminal mastermind who plunges Gotham City into anarchy.",
		Cast:        []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart"},
		Trailer:     "https://www.youtube.com/watch?v=EXeTwQWrcwY",
		ReleaseDate: "2008-07-18", Language: "English",
	},
	{
		Title: "Interstellar", Genre: "Sci-Fi", Year: models.IntPtr(2014), Rating: models.FloatPtr(8.7),
		Duration: "2h 49m", Director: "Christopher Nolan",
		Synopsis:    "Explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		Cast:        []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
		Trailer:     "https://youtu.be/zSWdZVtXT7E",
		ReleaseDate: "2014-11-07", Language: "English",
	},
	{
		Title: "Parasite", Genre: "Thriller", Year: models.IntPtr(2019), Rating: models.FloatPtr(8.5),
		Duration: "2h 12m", Director: "Bong Joon Ho",
		Synopsis:    "Greed and class discrimination threaten the relationship between a wealthy family and a destitute clan.",
		Cast:        []string{"Song Kang-ho", "Lee Sun-kyun", "Cho Yeo-jeong"},
		ReleaseDate: "2019-05-30", Language: "Korean",
	},
	{
		Title: "Mad Max: Fury Road", Genre: "Action", Year: models.IntPtr(2015), Rating: models.FloatPtr(8.1),
		Duration: "2h", Director: "George Miller",
		Synopsis:    "In a post-apocalyptic wasteland, a woman rebels against a tyrannical ruler in search of her homeland.",
		Cast:        []string{"Tom Hardy", "Charlize Theron", "Nicholas Hoult"},
		ReleaseDate: "2015-05-15", Language: "English",
	},
	{
		Title: "The Grand Budapest Hotel", Genre: "Comedy", Year: models.IntPtr(2014), Rating: models.FloatPtr(8.1),
		Duration: "1h 39m", Director: "Wes Anderson",
		Synopsis:    "A concierge and his lobby boy become embroiled in the theft of a priceless painting.",
		Cast:        []string{"Ralph Fiennes", "Tony Revolori", "Saoirse Ronan"},
		ReleaseDate: "2014-03-28", Language: "English",
	},
	{
		Title: "Arrival", Genre: "Sci-Fi", Year: models.IntPtr(2016), Rating: models.FloatPtr(7.9),
		Duration: "1h 56m", Director: "Denis Villeneuve",
		Synopsis:    "A linguist works with the military to communicate with alien lifeforms after twelve spacecraft appear.",
		Cast:        []string{"Amy Adams", "Jeremy Renner", "Forest Whitaker"},
		ReleaseDate: "2016-11-11", Language: "English",
	},
	{
		Title: "Whiplash", Genre: "Drama", Year: models.IntPtr(2014), Rating: models.FloatPtr(8.5),
		Duration: "1h 46m", Director: "Damien Chazelle",
		Synopsis:    "A promising young drummer enrolls at a cut-throat music conservatory.",
		Cast:        []string{"Miles Teller", "J.K. Simmons"},
		ReleaseDate: "2014-10-10", Language: "English",
	},
	{
		Title: "Spirited Away", Genre: "Animation", Year: models.IntPtr(2001), Rating: models.FloatPtr(8.6),
		Duration: "2h 5m", Director: "Hayao Miyazaki",
		Synopsis:    "A girl wanders into a world ruled by gods, witches and spirits, where humans are changed into beasts.",
		Cast:        []string{"Rumi Hiiragi", "Miyu Irino"},
		ReleaseDate: "2001-07-20", Language: "Japanese",
	},
	{
		Title: "Heat", Genre: "Crime", Year: models.IntPtr(1995), Rating: models.FloatPtr(8.3),
		Duration: "2h 50m", Director: "Michael Mann",
		Synopsis:    "A group of professional bank robbers start to feel the heat from police after a single mistake.",
		Cast:        []string{"Al Pacino", "Robert De Niro", "Val Kilmer"},
		ReleaseDate: "1995-12-15", Language: "English",
	},
}

// SeedIfEmpty loads the demo users and movies into an empty database.
// Tables that already hold rows are left alone.
func (db *DB) SeedIfEmpty(ctx context.Context, hash PasswordHasher) error {
	users, err := db.ListUsers(ctx, UserFilter{})
	if err != nil {
		return err
	}
	if len(users) == 0 {
		for _, su := range seedUsers {
			h, err := hash(su.password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", su.username, err)
			}
			u := models.User{Username: su.username, Email: su.email, Name: su.name, Role: su.role, PasswordHash: h}
			if err := db.CreateUser(ctx, &u); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.username, err)
			}
		}
		logging.Info().Int("count", len(seedUsers)).Msg("Seeded demo users")
	}

	n, err := db.CountMovies(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for i := range seedMovies {
			m := seedMovies[i]
			if err := db.CreateMovie(ctx, &m); err != nil {
				return fmt.Errorf("failed to seed movie %q: %w", m.Title, err)
			}
		}
		logging.Info().Int("count", len(seedMovies)).Msg("Seeded sample movies")
	}
	return nil
}
