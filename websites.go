package botlists

// Website tags one of the supported listing services.
type Website string

const (
	KoreanBots Website = "koreanbots"
	TopGG      Website = "topgg"
	UniqueBots Website = "uniquebots"
)

// websiteOrder fixes the deterministic fan-out and slot-assembly order.
var websiteOrder = []Website{KoreanBots, TopGG, UniqueBots}

// Websites returns every supported website tag in fan-out order.
func Websites() []Website {
	out := make([]Website, len(websiteOrder))
	copy(out, websiteOrder)
	return out
}
