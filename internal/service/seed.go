package service

// Demo catalog installed by the seed command and admin reseed. Small on
// purpose: three languages, five genres, and a couple of well known movies
// per language so the browse and recommendation flows have data to show.

var seedLanguages = []string{"English", "Hindi", "Gujarati"}

var seedGenres = []string{"Action", "Comedy", "Sci-Fi", "Drama", "Crime"}

type seedMovie struct {
	Title     string
	Overview  string
	Rating    float64
	Genres    []string
	Languages []string
}

var seedMovies = []seedMovie{
	{
		Title:     "The Dark Knight",
		Overview:  "Batman raises the stakes in his war on crime when the Joker plunges Gotham into anarchy.",
		Rating:    9.0,
		Genres:    []string{"Action", "Drama", "Crime"},
		Languages: []string{"English"},
	},
	{
		Title:     "Inception",
		Overview:  "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.",
		Rating:    8.8,
		Genres:    []string{"Action", "Sci-Fi"},
		Languages: []string{"English"},
	},
	{
		Title:     "3 Idiots",
		Overview:  "Two friends search for their long lost companion while revisiting their college days.",
		Rating:    8.4,
		Genres:    []string{"Comedy", "Drama"},
		Languages: []string{"Hindi"},
	},
	{
		Title:     "Lagaan",
		Overview:  "Villagers stake their future on a cricket match against their ruthless colonial rulers.",
		Rating:    8.1,
		Genres:    []string{"Drama"},
		Languages: []string{"Hindi"},
	},
	{
		Title:     "Chhello Divas",
		Overview:  "Eight friends live out the laughter and chaos of their final days of college.",
		Rating:    8.5,
		Genres:    []string{"Comedy", "Drama"},
		Languages: []string{"Gujarati"},
	},
	{
		Title:     "Hellaro",
		Overview:  "Women of a remote Kutch village find liberation in forbidden dance.",
		Rating:    8.2,
		Genres:    []string{"Drama"},
		Languages: []string{"Gujarati"},
	},
}
