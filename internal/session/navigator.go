package session

// Routes the session manager navigates to on state transitions.
const (
	RouteLogin = "/login"
	RouteHome  = "/"
)

// Navigator is the navigation facility invoked on session transitions.
// The CLI wiring logs the requested route; tests record it.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route string) { f(route) }

// NopNavigator ignores all transitions.
type NopNavigator struct{}

// Navigate implements Navigator.
func (NopNavigator) Navigate(string) {}
