package loader

// Source identifies which resolution strategy produced an executor. It is
// carried for diagnostics only and never changes instantiation behavior.
type Source int

// The three resolution strategies, in precedence order.
const (
	SourceCore Source = iota
	SourcePlugin
	SourceCustomPath
)

func (s Source) String() string {
	switch s {
	case SourceCore:
		return "core"
	case SourcePlugin:
		return "plugin"
	case SourceCustomPath:
		return "custom path"
	default:
		return "unknown"
	}
}
