package scene

import "strings"

// Icon footprint and label styling.
const (
	IconWidth     = 96
	IconHeight    = 64
	IconLabelSize = 14
)

var (
	// IconFallback is the accent for categories missing from the palette.
	IconFallback = MustColor("#6b7280")
	// IconLabelColor is the ink used for icon captions.
	IconLabelColor = MustColor("#111827")
)

// IconCategory is one entry of the component palette.
type IconCategory struct {
	Name   string
	Label  string
	Accent Color
}

// IconCategories lists the system-design components in palette order.
var IconCategories = []IconCategory{
	{"database", "Database", MustColor("#2563eb")},
	{"server", "Server", MustColor("#16a34a")},
	{"cloud", "Cloud", MustColor("#0ea5e9")},
	{"cache", "Cache", MustColor("#f59e0b")},
	{"storage", "Storage", MustColor("#8b5cf6")},
	{"network", "Network", MustColor("#14b8a6")},
	{"security", "Security", MustColor("#dc2626")},
	{"api", "API", MustColor("#db2777")},
	{"service", "Service", MustColor("#4f46e5")},
	{"load-balancer", "Load Balancer", MustColor("#ea580c")},
}

// LookupIcon finds a palette entry by name, case-insensitively.
func LookupIcon(name string) (IconCategory, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range IconCategories {
		if c.Name == name {
			return c, true
		}
	}
	return IconCategory{}, false
}

// IconAccent returns the accent colour for a category name.
func IconAccent(name string) Color {
	if c, ok := LookupIcon(name); ok {
		return c.Accent
	}
	return IconFallback
}

// NewIcon places an icon with its top-left corner at p.
func NewIcon(p Point, category, label string) Object {
	return Object{
		ID:       newID(),
		Kind:     KindIcon,
		Pos:      p,
		W:        IconWidth,
		H:        IconHeight,
		Category: category,
		Text:     label,
		Color:    IconAccent(category),
		FontSize: IconLabelSize,
	}
}
