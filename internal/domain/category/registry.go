package category

// Kind selects which partition family a label resolves into.
type Kind int

const (
	KindVendor Kind = iota
	KindService
)

// Partition handles. A handle is the only value accepted by the storage
// layer as a table selector, so every partition name in SQL originates here.
const (
	AC          = "ac"
	Plumbing    = "plumbing"
	Electrician = "electrician"
	Carpenter   = "carpenter"
	RO          = "ro"
	PestControl = "pest_control"
	HouseMaid   = "house_maid"
	Painting    = "painting"
	SmartLock   = "smart_lock"
	Appliances  = "appliances"
)

// handles is the fixed scatter-gather iteration order.
var handles = []string{
	AC, Plumbing, Electrician, Carpenter, RO,
	PestControl, HouseMaid, Painting, SmartLock, Appliances,
}

// vendorLabels maps a vendor's category label to its partition.
var vendorLabels = map[string]string{
	"AC":          AC,
	"Plumbing":    Plumbing,
	"Electrician": Electrician,
	"Carpenter":   Carpenter,
	"RO":          RO,
	"PestControl": PestControl,
	"HouseMaid":   HouseMaid,
	"Painting":    Painting,
	"SmartLock":   SmartLock,
	"Appliances":  Appliances,
}

// serviceLabels maps the storefront's package labels to service partitions.
// "Installation" is claimed by both plumbing and smart-lock in the
// storefront; smart-lock wins here, matching the behaviour the frontend has
// depended on.
var serviceLabels = map[string]string{
	"Split AC":         AC,
	"Window AC":        AC,
	"Washing Machine":  Appliances,
	"Refrigerator":     Appliances,
	"Microwave":        Appliances,
	"Repair":           Plumbing,
	"Installation":     SmartLock,
	"Repair & Support": SmartLock,
	"General Repair":   Carpenter,
	"New Assembly":     Carpenter,
	"Routine Service":  RO,
	"Repair & Parts":   RO,
	"General Pest":     PestControl,
	"Specialized":      PestControl,
	"One-Time":         HouseMaid,
	"Subscription":     HouseMaid,
	"Full Home":        Painting,
	"Room/Wall":        Painting,
	"Electrician":      Electrician,
}

// Registry is the static label-to-partition lookup table. Pure, no I/O.
type Registry struct {
	defaultVendor  string
	defaultService string
}

// NewRegistry builds the registry with the documented fallback partitions:
// unknown vendor labels map to AC, unknown service labels to the AC service
// partition.
func NewRegistry() *Registry {
	return &Registry{defaultVendor: AC, defaultService: AC}
}

// Resolve maps a category label to a partition handle. The second return
// reports whether the default-fallback policy fired, so callers can log
// unconfigured categories instead of absorbing them silently.
func (r *Registry) Resolve(label string, kind Kind) (handle string, fellBack bool) {
	var table map[string]string
	var def string
	switch kind {
	case KindVendor:
		table, def = vendorLabels, r.defaultVendor
	default:
		table, def = serviceLabels, r.defaultService
	}
	if h, ok := table[label]; ok {
		return h, false
	}
	return def, true
}

// Handles returns every partition handle in the fixed scatter-gather order.
func (r *Registry) Handles() []string {
	out := make([]string, len(handles))
	copy(out, handles)
	return out
}
