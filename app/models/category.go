package models

// Category is the closed set of topics a hoot can be filed under.
type Category string

const (
	CategoryNews       Category = "News"
	CategorySports     Category = "Sports"
	CategoryGames      Category = "Games"
	CategoryMovies     Category = "Movies"
	CategoryMusic      Category = "Music"
	CategoryTelevision Category = "Television"
)

var categories = []Category{
	CategoryNews,
	CategorySports,
	CategoryGames,
	CategoryMovies,
	CategoryMusic,
	CategoryTelevision,
}

// Categories returns every valid category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s exactly against the known categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string {
	return string(c)
}
