package reading

// Source identifies which positioning subsystem produced the primary reading.
// The labels come straight from the device location service and are only
// meaningful for the primary source.
type Source string

const (
	SourceUnknown      Source = ""
	SourceNotAvailable Source = "NOT_AVAILABLE"
	SourceGNSS         Source = "GNSS_RECEIVER"
	SourceWiFi         Source = "WIFI_POSITIONING_SYSTEM"
	SourceFused        Source = "FUSED_LOCATION"
)

// ShortLabel maps a source to the compact text shown next to the status
// icon. Total over all inputs: anything the service reports that we do not
// recognize renders as "Unknown".
func (s Source) ShortLabel() string {
	switch s {
	case SourceNotAvailable:
		return "Not Available"
	case SourceGNSS:
		return "GNSS / GPS"
	case SourceWiFi:
		return "Wi-Fi / WPS"
	case SourceFused:
		return "Fused"
	default:
		return "Unknown"
	}
}

// Reading is the last known location state for one source. Zero values mean
// "nothing received yet"; fields are mutated in place for the lifetime of
// the owning store.
type Reading struct {
	Source             Source  `json:"source,omitempty"`
	Latitude           float64 `json:"latitude"`            // decimal degrees
	Longitude          float64 `json:"longitude"`           // decimal degrees
	HorizontalAccuracy float64 `json:"horizontal_accuracy"` // meters
	Altitude           float64 `json:"altitude"`            // meters
	VerticalAccuracy   float64 `json:"vertical_accuracy"`   // meters
	Heading            float64 `json:"heading"`             // degrees, primary only
}

// HasCoordinates reports whether the reading carries a position. (0,0) is
// the sentinel for "no reading yet"; a legitimate fix exactly at the origin
// is indistinguishable from it and also reads as no data.
func (r Reading) HasCoordinates() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// Fix is one complete position report from the device geolocation service.
// Applying a fix replaces every field of the primary reading except the
// compass heading, which arrives on its own push channel.
type Fix struct {
	Source             Source  `json:"source"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy"`
	Altitude           float64 `json:"altitude"`
	VerticalAccuracy   float64 `json:"vertical_accuracy"`
}

// Update is a sparse field set decoded from one inbound phone message.
// Nil pointers mark fields absent from the payload; applying them leaves
// the current value untouched.
type Update struct {
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	HorizontalAccuracy *float64 `json:"horizontal_accuracy"`
	Altitude           *float64 `json:"altitude"`
	VerticalAccuracy   *float64 `json:"vertical_accuracy"`
}

// Empty reports whether the update carries no fields at all.
func (u Update) Empty() bool {
	return u.Latitude == nil && u.Longitude == nil && u.HorizontalAccuracy == nil &&
		u.Altitude == nil && u.VerticalAccuracy == nil
}

// Apply copies every present field onto the reading. Each field is applied
// independently; absent fields keep their prior value.
func (r *Reading) Apply(u Update) {
	if u.Latitude != nil {
		r.Latitude = *u.Latitude
	}
	if u.Longitude != nil {
		r.Longitude = *u.Longitude
	}
	if u.HorizontalAccuracy != nil {
		r.HorizontalAccuracy = *u.HorizontalAccuracy
	}
	if u.Altitude != nil {
		r.Altitude = *u.Altitude
	}
	if u.VerticalAccuracy != nil {
		r.VerticalAccuracy = *u.VerticalAccuracy
	}
}
