package client

import tasksv1 "github.com/dmehra2102/TaskList/api/v1"

type ViewKind int

const (
	ViewNone ViewKind = iota
	ViewLoading
	ViewError
	ViewEmpty
	ViewList
)

const (
	LoadingMessage = "Loading tasks..."
	EmptyMessage   = "No tasks found."
)

// View is what the UI must show for a snapshot. Exactly one kind applies.
type View struct {
	Kind     ViewKind
	Message  string
	Tasks    []tasksv1.Task
	CanRetry bool
}

func Render(s Snapshot) View {
	switch s.State {
	case StateLoading:
		return View{Kind: ViewLoading, Message: LoadingMessage}
	case StateError:
		return View{Kind: ViewError, Message: "Error: " + s.Err, CanRetry: true}
	case StateSuccess:
		if len(s.Tasks) == 0 {
			return View{Kind: ViewEmpty, Message: EmptyMessage}
		}
		return View{Kind: ViewList, Tasks: s.Tasks}
	default:
		return View{Kind: ViewNone}
	}
}
