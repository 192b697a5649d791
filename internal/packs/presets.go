package packs

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/listup/listup-server/internal/game"
)

// Pack is a named, ready-made list of things to rank. Pure data; the room
// never sees packs, only the item lists built from them.
type Pack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Items       []string `json:"items"`
}

var CategoryNames = map[string]string{
	"food":          "Food & Drink",
	"entertainment": "Entertainment",
	"lifestyle":     "Lifestyle",
	"sports":        "Sports",
	"misc":          "Misc",
}

var Presets = []Pack{
	{
		ID:          "ice-cream",
		Name:        "Ice Cream Flavors",
		Description: "Classic ice cream flavors",
		Category:    "food",
		Items: []string{
			"Vanilla", "Chocolate", "Strawberry", "Mint Chocolate Chip",
			"Cookie Dough", "Cookies and Cream", "Rocky Road", "Pistachio",
			"Coffee", "Butter Pecan",
		},
	},
	{
		ID:          "fast-food",
		Name:        "Fast Food Chains",
		Description: "Popular fast food restaurants",
		Category:    "food",
		Items: []string{
			"McDonald's", "Burger King", "Wendy's", "Taco Bell", "Chick-fil-A",
			"Subway", "KFC", "Pizza Hut", "Domino's", "Popeyes",
		},
	},
	{
		ID:          "pizza-toppings",
		Name:        "Pizza Toppings",
		Description: "Classic pizza toppings",
		Category:    "food",
		Items: []string{
			"Pepperoni", "Mushrooms", "Sausage", "Onions", "Green Peppers",
			"Olives", "Bacon", "Pineapple", "Jalapeños", "Extra Cheese",
		},
	},
	{
		ID:          "breakfast",
		Name:        "Breakfast Foods",
		Description: "Morning meal favorites",
		Category:    "food",
		Items: []string{
			"Pancakes", "Waffles", "Eggs Benedict", "French Toast", "Bacon",
			"Avocado Toast", "Cereal", "Oatmeal", "Bagel with Cream Cheese",
			"Breakfast Burrito",
		},
	},
	{
		ID:          "social-media",
		Name:        "Social Media Apps",
		Description: "Popular social platforms",
		Category:    "entertainment",
		Items: []string{
			"Instagram", "TikTok", "Twitter/X", "Facebook", "Snapchat",
			"YouTube", "Reddit", "LinkedIn", "Discord", "BeReal",
		},
	},
	{
		ID:          "tv-shows",
		Name:        "TV Shows",
		Description: "Popular television series",
		Category:    "entertainment",
		Items: []string{
			"Breaking Bad", "Game of Thrones", "The Office", "Friends",
			"Stranger Things", "The Simpsons", "Squid Game", "Ted Lasso",
			"Succession", "Wednesday",
		},
	},
	{
		ID:          "video-games",
		Name:        "Video Games",
		Description: "Popular video game titles",
		Category:    "entertainment",
		Items: []string{
			"Minecraft", "Fortnite", "Grand Theft Auto V", "The Legend of Zelda",
			"Call of Duty", "Mario Kart", "FIFA/EA Sports FC", "Elden Ring",
			"Animal Crossing", "Roblox",
		},
	},
	{
		ID:          "superheroes",
		Name:        "Superheroes",
		Description: "Popular comic book heroes",
		Category:    "entertainment",
		Items: []string{
			"Spider-Man", "Batman", "Superman", "Iron Man", "Wonder Woman",
			"Captain America", "Thor", "Wolverine", "The Flash", "Deadpool",
		},
	},
	{
		ID:          "car-brands",
		Name:        "Car Brands",
		Description: "Popular automobile manufacturers",
		Category:    "lifestyle",
		Items: []string{
			"Toyota", "Honda", "Ford", "BMW", "Mercedes-Benz", "Tesla",
			"Audi", "Porsche", "Ferrari", "Lamborghini",
		},
	},
	{
		ID:          "vacation-spots",
		Name:        "Vacation Destinations",
		Description: "Dream travel locations",
		Category:    "lifestyle",
		Items: []string{
			"Hawaii", "Paris", "New York City", "Tokyo", "Cancun", "London",
			"Las Vegas", "Bali", "Rome", "Maldives",
		},
	},
	{
		ID:          "sports",
		Name:        "Sports",
		Description: "Popular sports",
		Category:    "sports",
		Items: []string{
			"Football (American)", "Basketball", "Soccer", "Baseball", "Tennis",
			"Golf", "Hockey", "Swimming", "Boxing", "MMA",
		},
	},
	{
		ID:          "superpowers",
		Name:        "Superpowers",
		Description: "If you could have any power...",
		Category:    "misc",
		Items: []string{
			"Flying", "Invisibility", "Super Strength", "Teleportation",
			"Mind Reading", "Time Travel", "Super Speed", "Shapeshifting",
			"Telekinesis", "Immortality",
		},
	},
}

// ByID returns the preset pack with the given id, or false.
func ByID(id string) (Pack, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Pack{}, false
}

// Categories lists the distinct categories in catalog order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range Presets {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func newItem(text string) game.Item {
	return game.Item{ID: uuid.NewString()[:8], Text: text}
}

// PackItems turns a pack into rankable items with fresh ids.
func PackItems(p Pack) []game.Item {
	out := make([]game.Item, 0, len(p.Items))
	for _, text := range p.Items {
		out = append(out, newItem(text))
	}
	return out
}

// PackItemsSubset returns count random items from a pack.
func PackItemsSubset(p Pack, count int) []game.Item {
	shuffled := shuffle(p.Items)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	out := make([]game.Item, 0, count)
	for _, text := range shuffled[:count] {
		out = append(out, newItem(text))
	}
	return out
}

// MixPacks draws up to total distinct items across several packs.
func MixPacks(list []Pack, total int) []game.Item {
	var all []string
	for _, p := range list {
		all = append(all, p.Items...)
	}
	shuffled := shuffle(all)

	seen := make(map[string]bool)
	out := make([]game.Item, 0, total)
	for _, text := range shuffled {
		if len(out) == total {
			break
		}
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, newItem(text))
	}
	return out
}

// RandomPacks returns count random preset packs.
func RandomPacks(count int) []Pack {
	idx := rand.Perm(len(Presets))
	if count > len(idx) {
		count = len(idx)
	}
	out := make([]Pack, 0, count)
	for _, i := range idx[:count] {
		out = append(out, Presets[i])
	}
	return out
}

// TextToItems splits free text on commas and newlines into items, dropping
// blanks.
func TextToItems(text string) []game.Item {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var out []game.Item
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, newItem(part))
	}
	return out
}

func shuffle(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
