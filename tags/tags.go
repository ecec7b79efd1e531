package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Agent    = donburi.NewTag().SetName("Agent")
	Guard    = donburi.NewTag().SetName("Guard") // Guards and cashiers, anyone a witness can report to
	Customer = donburi.NewTag().SetName("Customer")
	Wall     = donburi.NewTag().SetName("Wall")
	Shelf    = donburi.NewTag().SetName("Shelf")
	Item     = donburi.NewTag().SetName("Item")
)

// Resolv tags for occlusion and navigation
const (
	ResolvSolid  = "solid" // Blocks movement and sight
	ResolvCrowd  = "crowd" // Blocks sight only, set while a bystander loiters
	ResolvShelf  = "shelf"
	ResolvPlayer = "Player"
	ResolvAgent  = "Agent"
	ResolvItem   = "item"
)
