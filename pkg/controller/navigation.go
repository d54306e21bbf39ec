package controller

import "net/url"

// View identifies one of the three screens of the roadmap flow.
type View string

const (
	// ViewNone means the flow stays where it is, typically after an error.
	ViewNone View = ""
	// ViewEntry collects the user identifier.
	ViewEntry View = "entry"
	// ViewLoading generates a roadmap that does not exist yet.
	ViewLoading View = "loading"
	// ViewRoadmap renders the payload waiting in the handoff slot.
	ViewRoadmap View = "roadmap"
)

// Navigation is the outcome of a controller step: the view to show next and
// the user it concerns.
type Navigation struct {
	View   View
	UserID string
}

// Path returns the relative location of the next view, carrying the user id
// as a query parameter where the view needs one.
func (n Navigation) Path() string {
	switch n.View {
	case ViewEntry:
		return "/"
	case ViewLoading, ViewRoadmap:
		return "/" + string(n.View) + "?" + url.Values{"user_id": {n.UserID}}.Encode()
	default:
		return ""
	}
}

// Moves reports whether the navigation leaves the current view.
func (n Navigation) Moves() bool { return n.View != ViewNone }

func stay() Navigation { return Navigation{} }

func toEntry() Navigation { return Navigation{View: ViewEntry} }

func toLoading(userID string) Navigation { return Navigation{View: ViewLoading, UserID: userID} }

func toRoadmap(userID string) Navigation { return Navigation{View: ViewRoadmap, UserID: userID} }
