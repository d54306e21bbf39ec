package controller

import "testing"

func TestNavigationPath(t *testing.T) {
	tests := []struct {
		nav  Navigation
		want string
	}{
		{Navigation{}, ""},
		{Navigation{View: ViewEntry}, "/"},
		{Navigation{View: ViewLoading, UserID: "u1"}, "/loading?user_id=u1"},
		{Navigation{View: ViewRoadmap, UserID: "jane doe"}, "/roadmap?user_id=jane+doe"},
	}
	for _, tt := range tests {
		if got := tt.nav.Path(); got != tt.want {
			t.Errorf("%+v.Path() = %q, want %q", tt.nav, got, tt.want)
		}
	}
}
