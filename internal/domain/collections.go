package domain

// CollectionName maps canonical collection slugs to display names.
// Slugs here are the post-normalization keys the analytics API uses.
var CollectionName = map[string]string{
	"astroguys":         "Astro Guys",
	"bullsonsei":        "Bulls on SEI",
	"cappys":            "Cappys",
	"cryptomonos":       "CryptoMonos",
	"dob":               "dob",
	"fudfoxes":          "Fud Foxes",
	"ghosty":            "Ghosty",
	"grapesonsei":       "Grapes on Sei",
	"qunks":             "QUNKS",
	"remosworld":        "REMO's World",
	"seimen":            "SEIMEN",
	"seimurai":          "Seimurai",
	"seitoshis":         "Seitoshis",
	"seiyans":           "Seiyans",
	"thecolony":         "The Colony",
	"thecouncil":        "The Council",
	"the_rabbitproject": "The Rabbit Project",
	"theunfrgtn":        "The Unfrgtn",
	"webump":            "WeBump",
	"yakavoyager":       "Yaka Voyager",
}

// CollectionSlugs is the canonical iteration order for the background
// refresher and the bot. Kept explicit so output is deterministic.
var CollectionSlugs = []string{
	"astroguys", "bullsonsei", "cappys", "cryptomonos", "dob",
	"fudfoxes", "ghosty", "grapesonsei", "qunks", "remosworld",
	"seimen", "seimurai", "seitoshis", "seiyans", "thecolony",
	"thecouncil", "the_rabbitproject", "theunfrgtn", "webump",
	"yakavoyager",
}

// slugByName is the reverse of CollectionName, built once at startup.
var slugByName = map[string]string{}

func init() {
	for slug, name := range CollectionName {
		slugByName[name] = slug
	}
}

// DisplayName returns the display name for a slug, falling back to the
// slug itself for collections outside the static table.
func DisplayName(slug string) string {
	if name, ok := CollectionName[slug]; ok {
		return name
	}
	return slug
}

// SlugForName resolves a display name back to its slug.
func SlugForName(name string) (string, bool) {
	slug, ok := slugByName[name]
	return slug, ok
}

// IsTracked reports whether the slug is in the static collection table.
func IsTracked(slug string) bool {
	_, ok := CollectionName[slug]
	return ok
}
