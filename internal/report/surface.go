package report

import "github.com/altinukshini/truelies-tui/internal/ops"

// Surface renders the viewer's decisions. Implementations never call back
// into the Viewer from these methods.
type Surface interface {
	SetVisible(rowID int, visible bool)
	Reorder(rowIDs []int)
	InsertCounter(text string)
	RenderButtons(buttons []Button)
	Notify(Notice)
}

// StatsDisplay is implemented by surfaces that can show statistics in place.
// Other surfaces receive a one-line summary through Notify.
type StatsDisplay interface {
	ShowStats(ops.Stats)
}

// FilterEditor is implemented by surfaces with an advanced filter form.
type FilterEditor interface {
	EditFilters(current ops.RangeFilter)
}

// DetailsToggler is implemented by surfaces that can expand row details.
type DetailsToggler interface {
	ToggleAllDetails()
}

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}
