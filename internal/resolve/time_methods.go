package resolve

// DurationConstructor maps a `Duration.<method>(n)` static call to the
// matching Rust `Duration::from_*` constructor text, grounded on the
// trusty-lang original's stdlib/time.rs `map_duration_constructor`.
func DurationConstructor(method, arg string) (string, bool) {
	switch method {
	case "millis":
		return "Duration::from_millis((" + arg + ") as u64)", true
	case "seconds", "secs":
		return "Duration::from_secs((" + arg + ") as u64)", true
	case "minutes":
		return "Duration::from_secs(((" + arg + ") as u64) * 60)", true
	case "nanos":
		return "Duration::from_nanos((" + arg + ") as u64)", true
	case "micros":
		return "Duration::from_micros((" + arg + ") as u64)", true
	default:
		return "", false
	}
}

// timeInstanceMethods maps SRC Duration/Instant instance method names to
// their snake_case Rust equivalents, grounded on the original's
// `map_instance_method`.
var timeInstanceMethods = map[string]string{
	"asMillis":    "as_millis",
	"asSeconds":   "as_secs",
	"asSecs":      "as_secs",
	"asNanos":     "as_nanos",
	"asMicros":    "as_micros",
	"asSecsFloat": "as_secs_f64",
}

// TimeInstanceMethod maps a time-stdlib instance method name to its Rust
// equivalent, if one exists.
func TimeInstanceMethod(name string) (string, bool) {
	m, ok := timeInstanceMethods[name]
	return m, ok
}
